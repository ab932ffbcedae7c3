package models

import (
	"github.com/taskvault/taskvault/internal/storage"
)

type Category struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Name      string           `json:"name"`
	Color     string           `json:"color"`
	Icon      string           `json:"icon"`
	CreatedAt storage.DateTime `json:"createdAt"`
}
