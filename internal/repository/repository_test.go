package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/kvstore"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/storage"
)

func newTestStorage() *storage.Storage {
	return storage.New(kvstore.NewMemory())
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, "tasks:user_1", TaskKey("user_1"))
	assert.Equal(t, "user_1_avatar", AvatarKey("user_1"))
}

func TestUserRepositoryRoundTrip(t *testing.T) {
	repo := NewUserRepository(newTestStorage())

	users, err := repo.All()
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, repo.Save([]models.User{{ID: "user_1", Email: "a@b.com"}}))

	users, err = repo.All()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@b.com", users[0].Email)
}

func TestTaskRepositoryDistinguishesAbsentFromEmpty(t *testing.T) {
	repo := NewTaskRepository(newTestStorage())

	tasks, existed, err := repo.Load("user_1")
	require.NoError(t, err)
	assert.False(t, existed)
	assert.Empty(t, tasks)

	require.NoError(t, repo.Save("user_1", []models.Task{}))

	tasks, existed, err = repo.Load("user_1")
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Empty(t, tasks)

	require.NoError(t, repo.Delete("user_1"))
	_, existed, err = repo.Load("user_1")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestTaskRepositoryScopesByUser(t *testing.T) {
	repo := NewTaskRepository(newTestStorage())

	require.NoError(t, repo.Save("user_1", []models.Task{{ID: "t1", UserID: "user_1"}}))
	require.NoError(t, repo.Save("user_2", []models.Task{{ID: "t2", UserID: "user_2"}}))

	tasks, _, err := repo.Load("user_1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].ID)
}

func TestCategoryRepositoryMergePreservesOtherUsers(t *testing.T) {
	repo := NewCategoryRepository(newTestStorage())

	require.NoError(t, repo.SaveForUser("user_1", []models.Category{{ID: "c1", UserID: "user_1", Name: "Work"}}))
	require.NoError(t, repo.SaveForUser("user_2", []models.Category{{ID: "c2", UserID: "user_2", Name: "Home"}}))

	// Rewriting one user's set leaves the other's in place
	require.NoError(t, repo.SaveForUser("user_1", []models.Category{{ID: "c3", UserID: "user_1", Name: "Play"}}))

	mine, err := repo.ForUser("user_1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "c3", mine[0].ID)

	theirs, err := repo.ForUser("user_2")
	require.NoError(t, err)
	require.Len(t, theirs, 1)

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.DeleteForUser("user_1"))
	mine, err = repo.ForUser("user_1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(newTestStorage())

	_, ok, err := repo.Get()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(models.Session{ID: "user_1", Username: "alice"}))

	session, ok, err := repo.Get()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", session.Username)

	require.NoError(t, repo.Clear())
	_, ok, err = repo.Get()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSettingsRepository(t *testing.T) {
	repo := NewSettingsRepository(newTestStorage())

	_, ok, err := repo.Theme()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetTheme("dark"))
	theme, ok, err := repo.Theme()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dark", theme)

	dataURL := "data:image/png;base64,AAAA"
	require.NoError(t, repo.SetAvatar("user_1", dataURL))
	avatar, ok, err := repo.Avatar("user_1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, dataURL, avatar)

	require.NoError(t, repo.RemoveAvatar("user_1"))
	_, ok, err = repo.Avatar("user_1")
	require.NoError(t, err)
	assert.False(t, ok)
}
