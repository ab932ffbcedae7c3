package services

import (
	"strings"
	"time"

	"github.com/taskvault/taskvault/internal/apperrors"
	"github.com/taskvault/taskvault/internal/events"
	"github.com/taskvault/taskvault/internal/filter"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/repository"
	"github.com/taskvault/taskvault/internal/stats"
	"github.com/taskvault/taskvault/internal/storage"
	"github.com/taskvault/taskvault/internal/utils"
	"github.com/taskvault/taskvault/internal/validation"
)

// TaskService handles task business logic for a single user. The in-memory
// list is authoritative; every mutation copies, persists and rolls back on
// write failure, then announces the change on the bus.
type TaskService struct {
	repo   repository.TaskRepository
	bus    *events.Bus
	userID string

	tasks  []models.Task
	seeded bool
	now    func() time.Time
}

// NewTaskService creates a TaskService and eagerly loads the user's tasks.
// Records with unknown enum values are normalized rather than dropped so
// one bad write never hides the rest of the list.
func NewTaskService(repo repository.TaskRepository, bus *events.Bus, userID string) (*TaskService, error) {
	tasks, existed, err := repo.Load(userID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		normalizeTask(&tasks[i], userID)
	}

	return &TaskService{
		repo:   repo,
		bus:    bus,
		userID: userID,
		tasks:  tasks,
		seeded: existed,
		now:    time.Now,
	}, nil
}

func normalizeTask(t *models.Task, userID string) {
	if !t.Priority.Valid() {
		t.Priority = models.PriorityMedium
	}
	if !t.Status.Valid() {
		t.Status = models.StatusTodo
	}
	if t.UserID == "" {
		t.UserID = userID
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
}

// EnsureSampleTasks seeds a small starter list for a user whose task key
// has never been written. It is idempotent: once the key exists, even as
// an empty list, nothing is added.
func (s *TaskService) EnsureSampleTasks() error {
	if s.seeded {
		return nil
	}

	now := s.now()
	samples := []models.Task{
		{
			Title:       "Welcome to TaskVault",
			Description: "This is your task list. Create, complete and organize tasks here.",
			Priority:    models.PriorityMedium,
			Tags:        []string{"getting-started"},
		},
		{
			Title:       "Try completing a task",
			Description: "Toggle this task to mark it as done.",
			Priority:    models.PriorityLow,
			Tags:        []string{"getting-started"},
			DueDate:     storage.NewDateTimePtr(now.AddDate(0, 0, 1)),
		},
		{
			Title:       "Organize with categories",
			Description: "Assign tasks to categories to group related work.",
			Priority:    models.PriorityHigh,
			Tags:        []string{"getting-started", "organize"},
			DueDate:     storage.NewDateTimePtr(now.AddDate(0, 0, 3)),
		},
	}
	for i := range samples {
		samples[i].ID = utils.NewID("task")
		samples[i].UserID = s.userID
		samples[i].Status = models.StatusTodo
		samples[i].CreatedAt = storage.NewDateTime(now)
		samples[i].UpdatedAt = storage.NewDateTime(now)
	}

	prev := s.tasks
	s.tasks = samples
	if err := s.repo.Save(s.userID, s.tasks); err != nil {
		s.tasks = prev
		return err
	}
	s.seeded = true
	s.publishChanged()
	return nil
}

// CreateTaskInput represents the fields accepted when creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	DueDate     *time.Time
	CategoryID  string
	Tags        []string
	Metadata    models.TaskMetadata
}

// CreateTask validates the input, applies defaults and appends the new
// task.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if err := validation.TaskTitle(title); err != nil {
		return nil, err
	}
	if err := validation.TaskDescription(input.Description); err != nil {
		return nil, err
	}
	if err := validation.Tags(input.Tags); err != nil {
		return nil, err
	}
	if err := validation.Recurring(input.Metadata.Recurring); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if err := validation.Priority(priority); err != nil {
		return nil, err
	}

	now := storage.NewDateTime(s.now())
	task := models.Task{
		ID:          utils.NewID("task"),
		UserID:      s.userID,
		Title:       title,
		Description: input.Description,
		Priority:    priority,
		Status:      models.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
		CategoryID:  input.CategoryID,
		Tags:        append([]string{}, input.Tags...),
		Metadata:    input.Metadata,
	}
	if input.DueDate != nil {
		task.DueDate = storage.NewDateTimePtr(*input.DueDate)
	}

	prev := s.tasks
	s.tasks = append(models.CloneTasks(s.tasks), task)
	if err := s.repo.Save(s.userID, s.tasks); err != nil {
		s.tasks = prev
		return nil, err
	}

	s.publishChanged()
	out := task.Clone()
	return &out, nil
}

// UpdateTaskInput carries a partial update. Nil fields stay untouched; the
// Clear flags distinguish "unset this" from "leave it alone".
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Priority      *models.TaskPriority
	Status        *models.TaskStatus
	DueDate       *time.Time
	ClearDueDate  bool
	CategoryID    *string
	Tags          *[]string
	Metadata      *models.TaskMetadata
	ClearMetadata bool
}

// UpdateTask applies a partial update to the task with the given id. The
// completion timestamp is managed here and only here: entering the
// completed status stamps it, leaving the status clears it.
func (s *TaskService) UpdateTask(id string, input UpdateTaskInput) (*models.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperrors.NotFoundf("task %s not found", id)
	}

	updated := s.tasks[idx].Clone()

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if err := validation.TaskTitle(title); err != nil {
			return nil, err
		}
		updated.Title = title
	}
	if input.Description != nil {
		if err := validation.TaskDescription(*input.Description); err != nil {
			return nil, err
		}
		updated.Description = *input.Description
	}
	if input.Priority != nil {
		if err := validation.Priority(*input.Priority); err != nil {
			return nil, err
		}
		updated.Priority = *input.Priority
	}
	if input.Status != nil {
		if err := validation.Status(*input.Status); err != nil {
			return nil, err
		}
		updated.Status = *input.Status
	}
	if input.ClearDueDate {
		updated.DueDate = nil
	} else if input.DueDate != nil {
		updated.DueDate = storage.NewDateTimePtr(*input.DueDate)
	}
	if input.CategoryID != nil {
		updated.CategoryID = *input.CategoryID
	}
	if input.Tags != nil {
		if err := validation.Tags(*input.Tags); err != nil {
			return nil, err
		}
		updated.Tags = append([]string{}, (*input.Tags)...)
	}
	if input.ClearMetadata {
		updated.Metadata = models.TaskMetadata{}
	} else if input.Metadata != nil {
		if err := validation.Recurring(input.Metadata.Recurring); err != nil {
			return nil, err
		}
		updated.Metadata = *input.Metadata
	}

	now := s.now()
	switch {
	case updated.IsCompleted() && updated.CompletedAt == nil:
		updated.CompletedAt = storage.NewDateTimePtr(now)
	case !updated.IsCompleted():
		updated.CompletedAt = nil
	}
	updated.UpdatedAt = storage.NewDateTime(now)

	prev := s.tasks
	next := models.CloneTasks(s.tasks)
	next[idx] = updated
	s.tasks = next
	if err := s.repo.Save(s.userID, s.tasks); err != nil {
		s.tasks = prev
		return nil, err
	}

	s.publishChanged()
	out := updated.Clone()
	return &out, nil
}

// DeleteTask removes the task with the given id.
func (s *TaskService) DeleteTask(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return apperrors.NotFoundf("task %s not found", id)
	}

	prev := s.tasks
	next := make([]models.Task, 0, len(s.tasks)-1)
	for i, t := range models.CloneTasks(s.tasks) {
		if i != idx {
			next = append(next, t)
		}
	}
	s.tasks = next
	if err := s.repo.Save(s.userID, s.tasks); err != nil {
		s.tasks = prev
		return err
	}

	s.publishChanged()
	return nil
}

// ToggleTaskCompletion flips a task between completed and todo. Any
// uncompleted status toggles to completed; completed toggles back to todo.
func (s *TaskService) ToggleTaskCompletion(id string) (*models.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperrors.NotFoundf("task %s not found", id)
	}

	next := models.StatusCompleted
	if s.tasks[idx].IsCompleted() {
		next = models.StatusTodo
	}
	return s.UpdateTask(id, UpdateTaskInput{Status: &next})
}

// GetByID returns a copy of the task with the given id.
func (s *TaskService) GetByID(id string) (*models.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperrors.NotFoundf("task %s not found", id)
	}
	out := s.tasks[idx].Clone()
	return &out, nil
}

// All returns a deep copy of the task list in insertion order.
func (s *TaskService) All() []models.Task {
	return models.CloneTasks(s.tasks)
}

// Count returns the number of tasks.
func (s *TaskService) Count() int {
	return len(s.tasks)
}

// Filter applies a filter combination to the current list.
func (s *TaskService) Filter(f filter.Filters) []models.Task {
	return filter.Apply(s.All(), f)
}

// Search returns tasks matching the query in title, description or tags.
func (s *TaskService) Search(query string) []models.Task {
	return filter.Search(s.All(), query)
}

// ByStatus returns tasks with the given status.
func (s *TaskService) ByStatus(status models.TaskStatus) []models.Task {
	return filter.ByStatus(s.All(), status)
}

// ByPriority returns tasks with the given priority.
func (s *TaskService) ByPriority(priority models.TaskPriority) []models.Task {
	return filter.ByPriority(s.All(), priority)
}

// ByCategory returns tasks in the given category.
func (s *TaskService) ByCategory(categoryID string) []models.Task {
	return filter.ByCategory(s.All(), categoryID)
}

// ByTag returns tasks carrying the given tag.
func (s *TaskService) ByTag(tag string) []models.Task {
	return filter.ByTag(s.All(), tag)
}

// Overdue returns uncompleted tasks whose due date has passed.
func (s *TaskService) Overdue() []models.Task {
	return filter.Overdue(s.All(), s.now())
}

// DueToday returns tasks due today.
func (s *TaskService) DueToday() []models.Task {
	return filter.DueToday(s.All(), s.now())
}

// Upcoming returns tasks due within the next days days.
func (s *TaskService) Upcoming(days int) []models.Task {
	return filter.Upcoming(s.All(), s.now(), days)
}

// Sorted returns the task list in the given order.
func (s *TaskService) Sorted(by filter.SortOption) []models.Task {
	return filter.Sort(s.All(), by)
}

// GroupedByDueDate buckets the list by due-date horizon.
func (s *TaskService) GroupedByDueDate() map[string][]models.Task {
	return filter.GroupByDueDate(s.All(), s.now())
}

// CompletionStats summarizes the status breakdown.
func (s *TaskService) CompletionStats() stats.CompletionStats {
	return stats.Completion(s.tasks)
}

// ProductivityTrend returns the per-day completion trend for the last
// days days.
func (s *TaskService) ProductivityTrend(days int) []stats.TrendEntry {
	return stats.ProductivityTrend(s.tasks, days, s.now())
}

// Streaks returns the current and longest completion streaks.
func (s *TaskService) Streaks() stats.StreakStats {
	return stats.Streaks(s.tasks, s.now())
}

func (s *TaskService) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskService) publishChanged() {
	s.bus.Publish(events.TasksChanged{
		UserID:    s.userID,
		Timestamp: s.now().UnixMilli(),
		TaskCount: len(s.tasks),
	})
}
