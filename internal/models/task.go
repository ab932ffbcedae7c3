package models

import (
	"github.com/taskvault/taskvault/internal/storage"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Weight maps priorities onto productivity points: high=3, medium=2, low=1.
func (p TaskPriority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// RecurringPattern describes how a task repeats. It is stored as data only;
// no scheduler interprets it.
type RecurringPattern struct {
	Frequency Frequency         `json:"frequency"`
	Interval  int               `json:"interval"`
	EndDate   *storage.DateTime `json:"endDate,omitempty"`
	Count     int               `json:"count,omitempty"`
}

// TaskMetadata carries optional planning data attached to a task. Times are
// in minutes.
type TaskMetadata struct {
	EstimatedTime int               `json:"estimatedTime,omitempty"`
	ActualTime    int               `json:"actualTime,omitempty"`
	Attachments   []string          `json:"attachments,omitempty"`
	Recurring     *RecurringPattern `json:"recurring,omitempty"`
}

type Task struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Priority    TaskPriority      `json:"priority"`
	Status      TaskStatus        `json:"status"`
	DueDate     *storage.DateTime `json:"dueDate"`
	CreatedAt   storage.DateTime  `json:"createdAt"`
	UpdatedAt   storage.DateTime  `json:"updatedAt"`
	CompletedAt *storage.DateTime `json:"completedAt"`
	CategoryID  string            `json:"categoryId,omitempty"`
	Tags        []string          `json:"tags"`
	Metadata    TaskMetadata      `json:"metadata"`
}

// Clone returns a deep copy so callers can hand out tasks without exposing
// internal state to mutation.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	if t.CompletedAt != nil {
		done := *t.CompletedAt
		c.CompletedAt = &done
	}
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.Metadata.Attachments != nil {
		c.Metadata.Attachments = append([]string(nil), t.Metadata.Attachments...)
	}
	if t.Metadata.Recurring != nil {
		r := *t.Metadata.Recurring
		if r.EndDate != nil {
			end := *r.EndDate
			r.EndDate = &end
		}
		c.Metadata.Recurring = &r
	}
	return c
}

// CloneTasks deep-copies a task slice.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// IsCompleted reports whether the task is in the completed status.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// HasTag reports whether the task carries the given tag.
func (t Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}
