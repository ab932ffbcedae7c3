package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/apperrors"
	"github.com/taskvault/taskvault/internal/events"
)

const testAvatar = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg=="

func TestAvatarSetGetRemove(t *testing.T) {
	repos := newTestRepos()
	svc := NewAvatarService(repos.settings, events.NewBus())

	_, ok, err := svc.Get(testUserID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Set(testUserID, testAvatar))

	got, ok, err := svc.Get(testUserID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testAvatar, got)

	// Stored verbatim under the raw key class
	raw, ok, err := repos.storage.Raw(testUserID + "_avatar")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testAvatar, raw)

	require.NoError(t, svc.Remove(testUserID))
	_, ok, err = svc.Get(testUserID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAvatarValidation(t *testing.T) {
	repos := newTestRepos()
	svc := NewAvatarService(repos.settings, events.NewBus())

	err := svc.Set(testUserID, "https://example.com/avatar.png")
	assert.True(t, apperrors.IsValidation(err))

	huge := "data:image/png;base64," + strings.Repeat("A", maxAvatarBytes)
	err = svc.Set(testUserID, huge)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAvatarPublishesEvents(t *testing.T) {
	repos := newTestRepos()
	bus := events.NewBus()
	svc := NewAvatarService(repos.settings, bus)

	var published []events.AvatarUpdated
	bus.Subscribe(func(event any) {
		if e, ok := event.(events.AvatarUpdated); ok {
			published = append(published, e)
		}
	})

	require.NoError(t, svc.Set(testUserID, testAvatar))
	require.NoError(t, svc.Remove(testUserID))

	require.Len(t, published, 2)
	assert.Equal(t, testUserID, published[0].UserID)
}
