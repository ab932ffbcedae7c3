package services

import (
	"github.com/taskvault/taskvault/internal/events"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/repository"
	"github.com/taskvault/taskvault/internal/validation"
)

// ThemeService handles the application-wide theme preference.
type ThemeService struct {
	settings     repository.SettingsRepository
	bus          *events.Bus
	defaultTheme string
}

// NewThemeService creates a ThemeService. defaultTheme is returned when no
// theme has ever been stored; an empty value falls back to light.
func NewThemeService(settings repository.SettingsRepository, bus *events.Bus, defaultTheme string) *ThemeService {
	if defaultTheme != models.ThemeLight && defaultTheme != models.ThemeDark {
		defaultTheme = models.ThemeLight
	}
	return &ThemeService{settings: settings, bus: bus, defaultTheme: defaultTheme}
}

// Current returns the stored theme, or the default when none is stored or
// the stored value is unrecognized.
func (s *ThemeService) Current() (string, error) {
	theme, ok, err := s.settings.Theme()
	if err != nil {
		return "", err
	}
	if !ok || (theme != models.ThemeLight && theme != models.ThemeDark) {
		return s.defaultTheme, nil
	}
	return theme, nil
}

// SetTheme stores the theme and announces the change.
func (s *ThemeService) SetTheme(theme string) error {
	if err := validation.Theme(theme); err != nil {
		return err
	}
	if err := s.settings.SetTheme(theme); err != nil {
		return err
	}
	s.bus.Publish(events.ThemeChanged{Theme: theme})
	return nil
}

// Toggle flips between light and dark and returns the new theme.
func (s *ThemeService) Toggle() (string, error) {
	current, err := s.Current()
	if err != nil {
		return "", err
	}
	next := models.ThemeDark
	if current == models.ThemeDark {
		next = models.ThemeLight
	}
	if err := s.SetTheme(next); err != nil {
		return "", err
	}
	return next, nil
}
