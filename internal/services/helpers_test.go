package services

import (
	"errors"
	"time"

	"github.com/taskvault/taskvault/internal/kvstore"
	"github.com/taskvault/taskvault/internal/repository"
	"github.com/taskvault/taskvault/internal/storage"
)

var fixedNow = time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

// failingStore wraps a real store and fails writes on demand, for
// exercising the rollback paths. allowWrites, when non-negative, permits
// that many writes before failing the rest.
type failingStore struct {
	kvstore.Store
	failWrites  bool
	allowWrites int
}

func newFailingStore() *failingStore {
	return &failingStore{Store: kvstore.NewMemory(), allowWrites: -1}
}

func (s *failingStore) write(commit func() error) error {
	if s.failWrites || s.allowWrites == 0 {
		return errors.New("store unavailable")
	}
	if s.allowWrites > 0 {
		s.allowWrites--
	}
	return commit()
}

func (s *failingStore) Set(key, value string) error {
	return s.write(func() error { return s.Store.Set(key, value) })
}

func (s *failingStore) Delete(key string) error {
	return s.write(func() error { return s.Store.Delete(key) })
}

// testRepos bundles every repository over one backing store.
type testRepos struct {
	store    *failingStore
	storage  *storage.Storage
	users    repository.UserRepository
	sessions repository.SessionRepository
	tasks    repository.TaskRepository
	cats     repository.CategoryRepository
	settings repository.SettingsRepository
}

func newTestRepos() *testRepos {
	store := newFailingStore()
	st := storage.New(store)
	return &testRepos{
		store:    store,
		storage:  st,
		users:    repository.NewUserRepository(st),
		sessions: repository.NewSessionRepository(st),
		tasks:    repository.NewTaskRepository(st),
		cats:     repository.NewCategoryRepository(st),
		settings: repository.NewSettingsRepository(st),
	}
}
