package services

import (
	"strings"

	"github.com/taskvault/taskvault/internal/apperrors"
	"github.com/taskvault/taskvault/internal/events"
	"github.com/taskvault/taskvault/internal/repository"
)

// Avatars are stored as data URLs in the raw key class, so oversized
// payloads are bounded here rather than by the store.
const maxAvatarBytes = 2 << 20

// AvatarService handles per-user avatar images, stored as raw data-URL
// strings outside the JSON envelope.
type AvatarService struct {
	settings repository.SettingsRepository
	bus      *events.Bus
}

// NewAvatarService creates an AvatarService.
func NewAvatarService(settings repository.SettingsRepository, bus *events.Bus) *AvatarService {
	return &AvatarService{settings: settings, bus: bus}
}

// Get returns the user's avatar data URL, if one is stored.
func (s *AvatarService) Get(userID string) (string, bool, error) {
	return s.settings.Avatar(userID)
}

// Set validates and stores the user's avatar data URL.
func (s *AvatarService) Set(userID, dataURL string) error {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return apperrors.Validationf("avatar must be an image data URL")
	}
	if len(dataURL) > maxAvatarBytes {
		return apperrors.Validationf("avatar image is too large")
	}
	if err := s.settings.SetAvatar(userID, dataURL); err != nil {
		return err
	}
	s.bus.Publish(events.AvatarUpdated{UserID: userID})
	return nil
}

// Remove deletes the user's avatar.
func (s *AvatarService) Remove(userID string) error {
	if err := s.settings.RemoveAvatar(userID); err != nil {
		return err
	}
	s.bus.Publish(events.AvatarUpdated{UserID: userID})
	return nil
}
