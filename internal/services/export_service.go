package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/taskvault/taskvault/internal/apperrors"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/repository"
	"github.com/taskvault/taskvault/internal/storage"
	"github.com/taskvault/taskvault/internal/utils"
)

// ExportVersion is the current export payload format version.
const ExportVersion = "1.0.0"

// ExportData is the user-owned content of an export.
type ExportData struct {
	Tasks      []models.Task     `json:"tasks"`
	Categories []models.Category `json:"categories"`
}

// ExportMetadata summarizes what the payload contains.
type ExportMetadata struct {
	TaskCount     int `json:"taskCount"`
	CategoryCount int `json:"categoryCount"`
}

// ExportPayload is the versioned envelope written by Export and read by
// Import.
type ExportPayload struct {
	Version    string           `json:"version"`
	ExportedAt storage.DateTime `json:"exportedAt"`
	UserID     string           `json:"userId"`
	Metadata   ExportMetadata   `json:"metadata"`
	Data       ExportData       `json:"data"`
}

// ImportResult reports what an import added.
type ImportResult struct {
	Tasks      int
	Categories int
}

// ExportService handles export, import, backup and restore of user data.
type ExportService struct {
	tasks   repository.TaskRepository
	cats    repository.CategoryRepository
	storage *storage.Storage
	now     func() time.Time
}

// NewExportService creates an ExportService. storage is only needed for
// whole-store backup and restore; export and import go through the
// repositories.
func NewExportService(tasks repository.TaskRepository, cats repository.CategoryRepository, st *storage.Storage) *ExportService {
	return &ExportService{tasks: tasks, cats: cats, storage: st, now: time.Now}
}

// Export collects the user's tasks and categories into a versioned
// payload.
func (s *ExportService) Export(userID string) (*ExportPayload, error) {
	tasks, _, err := s.tasks.Load(userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.cats.ForUser(userID)
	if err != nil {
		return nil, err
	}

	return &ExportPayload{
		Version:    ExportVersion,
		ExportedAt: storage.NewDateTime(s.now()),
		UserID:     userID,
		Metadata: ExportMetadata{
			TaskCount:     len(tasks),
			CategoryCount: len(categories),
		},
		Data: ExportData{
			Tasks:      tasks,
			Categories: categories,
		},
	}, nil
}

// ExportJSON returns the export payload as indented JSON.
func (s *ExportService) ExportJSON(userID string) ([]byte, error) {
	payload, err := s.Export(userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(payload, "", "  ")
}

// Import merges a payload into the user's existing data. Imported records
// get fresh ids and are rebound to userID, so importing the same payload
// twice duplicates its content rather than overwriting anything. Category
// references inside imported tasks follow the re-identified categories.
func (s *ExportService) Import(userID string, payload ExportPayload) (*ImportResult, error) {
	if !strings.HasPrefix(payload.Version, "1.") {
		return nil, apperrors.Validationf("unsupported export version %q", payload.Version)
	}

	existingCats, err := s.cats.ForUser(userID)
	if err != nil {
		return nil, err
	}
	existingTasks, _, err := s.tasks.Load(userID)
	if err != nil {
		return nil, err
	}

	catIDs := make(map[string]string, len(payload.Data.Categories))
	newCats := make([]models.Category, 0, len(payload.Data.Categories))
	for _, c := range payload.Data.Categories {
		imported := c
		imported.ID = utils.NewID("cat")
		imported.UserID = userID
		catIDs[c.ID] = imported.ID
		newCats = append(newCats, imported)
	}

	newTasks := make([]models.Task, 0, len(payload.Data.Tasks))
	for _, t := range payload.Data.Tasks {
		imported := t.Clone()
		imported.ID = utils.NewID("task")
		imported.UserID = userID
		if mapped, ok := catIDs[imported.CategoryID]; ok {
			imported.CategoryID = mapped
		}
		newTasks = append(newTasks, imported)
	}

	if err := s.cats.SaveForUser(userID, append(existingCats, newCats...)); err != nil {
		return nil, err
	}
	if err := s.tasks.Save(userID, append(existingTasks, newTasks...)); err != nil {
		// Put the categories back so a half-applied import does not leave
		// orphaned records behind. The task write failure stays the root
		// cause either way.
		if rollbackErr := s.cats.SaveForUser(userID, existingCats); rollbackErr != nil {
			return nil, fmt.Errorf("%w; category rollback failed: %v", err, rollbackErr)
		}
		return nil, err
	}

	return &ImportResult{Tasks: len(newTasks), Categories: len(newCats)}, nil
}

// ImportJSON parses and imports a JSON export payload.
func (s *ExportService) ImportJSON(userID string, data []byte) (*ImportResult, error) {
	var payload ExportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, apperrors.Wrap(apperrors.KindDeserialization, "invalid import payload", err)
	}
	return s.Import(userID, payload)
}

// Backup snapshots the entire store, raw values included, as a JSON
// key/value map.
func (s *ExportService) Backup() ([]byte, error) {
	keys, err := s.storage.Keys()
	if err != nil {
		return nil, err
	}

	snapshot := make(map[string]string, len(keys))
	for _, key := range keys {
		value, ok, err := s.storage.Raw(key)
		if err != nil {
			return nil, err
		}
		if ok {
			snapshot[key] = value
		}
	}
	return json.Marshal(snapshot)
}

// Restore replaces the entire store with a snapshot produced by Backup.
func (s *ExportService) Restore(data []byte) error {
	var snapshot map[string]string
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return apperrors.Wrap(apperrors.KindDeserialization, "invalid backup payload", err)
	}

	if err := s.storage.Clear(); err != nil {
		return err
	}
	for key, value := range snapshot {
		if err := s.storage.SetRaw(key, value); err != nil {
			return err
		}
	}
	return nil
}
