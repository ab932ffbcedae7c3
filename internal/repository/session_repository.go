package repository

import (
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/storage"
)

// SessionRepository persists the single authenticated session.
type SessionRepository interface {
	// Get returns the persisted session, if any.
	Get() (*models.Session, bool, error)

	// Set replaces the persisted session.
	Set(session models.Session) error

	// Clear removes the persisted session.
	Clear() error
}

// StorageSessionRepository is the typed-storage implementation of
// SessionRepository.
type StorageSessionRepository struct {
	storage *storage.Storage
}

// NewSessionRepository creates a SessionRepository over the given storage.
func NewSessionRepository(s *storage.Storage) SessionRepository {
	return &StorageSessionRepository{storage: s}
}

// Get returns the persisted session, if any.
func (r *StorageSessionRepository) Get() (*models.Session, bool, error) {
	var session models.Session
	ok, err := r.storage.Get(keySession, &session)
	if err != nil || !ok {
		return nil, false, err
	}
	return &session, true, nil
}

// Set replaces the persisted session.
func (r *StorageSessionRepository) Set(session models.Session) error {
	return r.storage.Save(keySession, session)
}

// Clear removes the persisted session.
func (r *StorageSessionRepository) Clear() error {
	return r.storage.Remove(keySession)
}
