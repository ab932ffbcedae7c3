package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID generates a prefixed, collision-resistant identifier, e.g.
// "task_1f0c…". The prefix keeps stored keys and logs readable; the UUID
// carries the uniqueness.
func NewID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString())
}
