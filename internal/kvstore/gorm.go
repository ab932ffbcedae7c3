package kvstore

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// entry is the single table backing the store.
type entry struct {
	Key   string `gorm:"primarykey;type:varchar(255)"`
	Value string `gorm:"type:text;not null"`
}

func (entry) TableName() string { return "kv_entries" }

// GormStore persists key/value pairs in a sqlite database through GORM.
type GormStore struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite database at path and migrates the
// backing table. Use ":memory:" for an ephemeral store.
func Open(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %q: %w", path, err)
	}

	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	log.Printf("kvstore: opened %s", path)
	return &GormStore{db: db}, nil
}

// NewGormStore wraps an already-opened GORM connection (used for testing
// against a shared in-memory database).
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Get returns the value for key and whether the key exists.
func (s *GormStore) Get(key string) (string, bool, error) {
	var e entry
	if err := s.db.First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return e.Value, true, nil
}

// Set upserts the value for key.
func (s *GormStore) Set(key, value string) error {
	err := s.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&entry{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes the key if present.
func (s *GormStore) Delete(key string) error {
	if err := s.db.Delete(&entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Clear removes every key.
func (s *GormStore) Clear() error {
	if err := s.db.Where("1 = 1").Delete(&entry{}).Error; err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}

// Keys lists all stored keys.
func (s *GormStore) Keys() ([]string, error) {
	var keys []string
	if err := s.db.Model(&entry{}).Pluck("key", &keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}
