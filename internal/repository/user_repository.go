package repository

import (
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/storage"
)

// UserRepository persists the user roster under the "users" key.
type UserRepository interface {
	// All returns every registered user. A missing key yields an empty
	// roster.
	All() ([]models.User, error)

	// Save replaces the whole roster.
	Save(users []models.User) error
}

// StorageUserRepository is the typed-storage implementation of
// UserRepository.
type StorageUserRepository struct {
	storage *storage.Storage
}

// NewUserRepository creates a UserRepository over the given storage.
func NewUserRepository(s *storage.Storage) UserRepository {
	return &StorageUserRepository{storage: s}
}

// All returns every registered user.
func (r *StorageUserRepository) All() ([]models.User, error) {
	var users []models.User
	ok, err := r.storage.Get(keyUsers, &users)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.User{}, nil
	}
	return users, nil
}

// Save replaces the whole roster.
func (r *StorageUserRepository) Save(users []models.User) error {
	return r.storage.Save(keyUsers, users)
}
