// Package app wires the storage layer, repositories and services into one
// ready-to-use application object.
package app

import (
	"github.com/taskvault/taskvault/internal/config"
	"github.com/taskvault/taskvault/internal/events"
	"github.com/taskvault/taskvault/internal/kvstore"
	"github.com/taskvault/taskvault/internal/repository"
	"github.com/taskvault/taskvault/internal/services"
	"github.com/taskvault/taskvault/internal/storage"
)

// App bundles the shared infrastructure and the session-scoped services.
// Task and category services are per-user and constructed on demand
// through TaskService and CategoryService.
type App struct {
	Store   kvstore.Store
	Storage *storage.Storage
	Bus     *events.Bus

	Auth   *services.AuthService
	Theme  *services.ThemeService
	Avatar *services.AvatarService
	Export *services.ExportService

	cfg      *config.Config
	tasks    repository.TaskRepository
	cats     repository.CategoryRepository
	users    repository.UserRepository
	sessions repository.SessionRepository
	settings repository.SettingsRepository
}

// New opens the database at cfg.DBPath and wires the application.
func New(cfg *config.Config) (*App, error) {
	store, err := kvstore.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return NewWithStore(cfg, store)
}

// NewWithStore wires the application over an existing store. Tests use
// this with an in-memory store.
func NewWithStore(cfg *config.Config, store kvstore.Store) (*App, error) {
	st := storage.New(store)
	bus := events.NewBus()

	users := repository.NewUserRepository(st)
	sessions := repository.NewSessionRepository(st)
	tasks := repository.NewTaskRepository(st)
	cats := repository.NewCategoryRepository(st)
	settings := repository.NewSettingsRepository(st)

	auth, err := services.NewAuthService(users, sessions, tasks, cats, settings, bus)
	if err != nil {
		return nil, err
	}

	return &App{
		Store:    store,
		Storage:  st,
		Bus:      bus,
		Auth:     auth,
		Theme:    services.NewThemeService(settings, bus, cfg.DefaultTheme),
		Avatar:   services.NewAvatarService(settings, bus),
		Export:   services.NewExportService(tasks, cats, st),
		cfg:      cfg,
		tasks:    tasks,
		cats:     cats,
		users:    users,
		sessions: sessions,
		settings: settings,
	}, nil
}

// TaskService constructs the task service for a user, seeding the sample
// tasks on first run when configured to.
func (a *App) TaskService(userID string) (*services.TaskService, error) {
	svc, err := services.NewTaskService(a.tasks, a.Bus, userID)
	if err != nil {
		return nil, err
	}
	if a.cfg.SeedSamples {
		if err := svc.EnsureSampleTasks(); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// CategoryService constructs the category service for a user, creating the
// default category set on first run.
func (a *App) CategoryService(userID string) (*services.CategoryService, error) {
	svc, err := services.NewCategoryService(a.cats, userID)
	if err != nil {
		return nil, err
	}
	if err := svc.InitializeDefaults(); err != nil {
		return nil, err
	}
	return svc, nil
}
