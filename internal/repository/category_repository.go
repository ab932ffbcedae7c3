package repository

import (
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/storage"
)

// CategoryRepository persists all users' categories under one "categories"
// key, filtered per user on read.
type CategoryRepository interface {
	// All returns every stored category, across users.
	All() ([]models.Category, error)

	// ForUser returns the categories belonging to userID.
	ForUser(userID string) ([]models.Category, error)

	// SaveForUser replaces userID's categories, leaving other users'
	// records untouched.
	SaveForUser(userID string, categories []models.Category) error

	// DeleteForUser removes all of userID's categories.
	DeleteForUser(userID string) error
}

// StorageCategoryRepository is the typed-storage implementation of
// CategoryRepository.
type StorageCategoryRepository struct {
	storage *storage.Storage
}

// NewCategoryRepository creates a CategoryRepository over the given storage.
func NewCategoryRepository(s *storage.Storage) CategoryRepository {
	return &StorageCategoryRepository{storage: s}
}

// All returns every stored category, across users.
func (r *StorageCategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	ok, err := r.storage.Get(keyCategories, &categories)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Category{}, nil
	}
	return categories, nil
}

// ForUser returns the categories belonging to userID.
func (r *StorageCategoryRepository) ForUser(userID string) ([]models.Category, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	mine := make([]models.Category, 0, len(all))
	for _, c := range all {
		if c.UserID == userID {
			mine = append(mine, c)
		}
	}
	return mine, nil
}

// SaveForUser replaces userID's categories, leaving other users' records
// untouched.
func (r *StorageCategoryRepository) SaveForUser(userID string, categories []models.Category) error {
	all, err := r.All()
	if err != nil {
		return err
	}
	merged := make([]models.Category, 0, len(all)+len(categories))
	for _, c := range all {
		if c.UserID != userID {
			merged = append(merged, c)
		}
	}
	merged = append(merged, categories...)
	return r.storage.Save(keyCategories, merged)
}

// DeleteForUser removes all of userID's categories.
func (r *StorageCategoryRepository) DeleteForUser(userID string) error {
	return r.SaveForUser(userID, nil)
}
