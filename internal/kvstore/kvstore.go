// Package kvstore provides the flat, string-keyed persistence contract the
// rest of the application is built on, together with a sqlite-backed
// implementation and an in-memory one for tests.
package kvstore

// Store is a synchronous string-keyed, string-valued store. Implementations
// are process-wide singletons from the caller's point of view; coordination
// between multiple writers is the caller's responsibility.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) (string, bool, error)

	// Set writes the value for key, overwriting any previous value. A failed
	// Set must not partially persist.
	Set(key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error

	// Clear removes every key.
	Clear() error

	// Keys lists all stored keys.
	Keys() ([]string, error)
}
