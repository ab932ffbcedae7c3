package repository

import (
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/storage"
)

// TaskRepository persists one user's task list under "tasks:{userId}".
type TaskRepository interface {
	// Load returns the stored tasks for userID, along with whether the key
	// existed at all. Absent and empty are distinguished so first-run
	// seeding can tell a new user from one who deleted everything.
	Load(userID string) ([]models.Task, bool, error)

	// Save replaces the stored tasks for userID.
	Save(userID string, tasks []models.Task) error

	// Delete removes the user's task key entirely.
	Delete(userID string) error
}

// StorageTaskRepository is the typed-storage implementation of
// TaskRepository.
type StorageTaskRepository struct {
	storage *storage.Storage
}

// NewTaskRepository creates a TaskRepository over the given storage.
func NewTaskRepository(s *storage.Storage) TaskRepository {
	return &StorageTaskRepository{storage: s}
}

// Load returns the stored tasks for userID.
func (r *StorageTaskRepository) Load(userID string) ([]models.Task, bool, error) {
	var tasks []models.Task
	ok, err := r.storage.Get(TaskKey(userID), &tasks)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return []models.Task{}, false, nil
	}
	return tasks, true, nil
}

// Save replaces the stored tasks for userID.
func (r *StorageTaskRepository) Save(userID string, tasks []models.Task) error {
	return r.storage.Save(TaskKey(userID), tasks)
}

// Delete removes the user's task key entirely.
func (r *StorageTaskRepository) Delete(userID string) error {
	return r.storage.Remove(TaskKey(userID))
}
