package repository

import (
	"github.com/taskvault/taskvault/internal/storage"
)

// SettingsRepository persists the theme key and the raw-class avatar keys.
type SettingsRepository interface {
	// Theme returns the stored theme, if set.
	Theme() (string, bool, error)

	// SetTheme stores the theme.
	SetTheme(theme string) error

	// Avatar returns userID's stored avatar data URL, if set.
	Avatar(userID string) (string, bool, error)

	// SetAvatar stores userID's avatar data URL.
	SetAvatar(userID, dataURL string) error

	// RemoveAvatar deletes userID's avatar.
	RemoveAvatar(userID string) error
}

// StorageSettingsRepository is the typed-storage implementation of
// SettingsRepository.
type StorageSettingsRepository struct {
	storage *storage.Storage
}

// NewSettingsRepository creates a SettingsRepository over the given storage.
func NewSettingsRepository(s *storage.Storage) SettingsRepository {
	return &StorageSettingsRepository{storage: s}
}

// Theme returns the stored theme, if set.
func (r *StorageSettingsRepository) Theme() (string, bool, error) {
	var theme string
	ok, err := r.storage.Get(keyTheme, &theme)
	if err != nil || !ok {
		return "", false, err
	}
	return theme, true, nil
}

// SetTheme stores the theme.
func (r *StorageSettingsRepository) SetTheme(theme string) error {
	return r.storage.Save(keyTheme, theme)
}

// Avatar returns userID's stored avatar data URL, if set.
func (r *StorageSettingsRepository) Avatar(userID string) (string, bool, error) {
	var data string
	ok, err := r.storage.Get(AvatarKey(userID), &data)
	if err != nil || !ok {
		return "", false, err
	}
	return data, true, nil
}

// SetAvatar stores userID's avatar data URL.
func (r *StorageSettingsRepository) SetAvatar(userID, dataURL string) error {
	return r.storage.Save(AvatarKey(userID), dataURL)
}

// RemoveAvatar deletes userID's avatar.
func (r *StorageSettingsRepository) RemoveAvatar(userID string) error {
	return r.storage.Remove(AvatarKey(userID))
}
