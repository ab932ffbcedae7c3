package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/apperrors"
	"github.com/taskvault/taskvault/internal/events"
	"github.com/taskvault/taskvault/internal/models"
)

func TestThemeDefaultsWhenUnset(t *testing.T) {
	repos := newTestRepos()
	svc := NewThemeService(repos.settings, events.NewBus(), models.ThemeDark)

	theme, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, theme)
}

func TestThemeUnknownDefaultFallsBackToLight(t *testing.T) {
	repos := newTestRepos()
	svc := NewThemeService(repos.settings, events.NewBus(), "sepia")

	theme, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, theme)
}

func TestSetThemePersistsAndPublishes(t *testing.T) {
	repos := newTestRepos()
	bus := events.NewBus()
	svc := NewThemeService(repos.settings, bus, models.ThemeLight)

	var published []events.ThemeChanged
	bus.Subscribe(func(event any) {
		if e, ok := event.(events.ThemeChanged); ok {
			published = append(published, e)
		}
	})

	require.NoError(t, svc.SetTheme(models.ThemeDark))

	theme, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, theme)
	require.Len(t, published, 1)
	assert.Equal(t, models.ThemeDark, published[0].Theme)

	err = svc.SetTheme("sepia")
	assert.True(t, apperrors.IsValidation(err))
}

func TestToggleTheme(t *testing.T) {
	repos := newTestRepos()
	svc := NewThemeService(repos.settings, events.NewBus(), models.ThemeLight)

	next, err := svc.Toggle()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, next)

	next, err = svc.Toggle()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, next)
}

func TestStoredGarbageThemeFallsBack(t *testing.T) {
	repos := newTestRepos()
	require.NoError(t, repos.settings.SetTheme("neon"))
	svc := NewThemeService(repos.settings, events.NewBus(), models.ThemeLight)

	theme, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, theme)
}
