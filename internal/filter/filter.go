// Package filter derives read-only views over a task collection snapshot:
// conjunctive filtering, stable sorting and fixed-bucket grouping. Nothing
// here mutates or persists; callers pass copies and the current time.
package filter

import (
	"strings"
	"time"

	"github.com/taskvault/taskvault/internal/models"
)

// Filters combines zero or more predicates; a task must satisfy all of
// them. Zero values mean "no constraint".
type Filters struct {
	Search     string
	Status     models.TaskStatus
	Priority   models.TaskPriority
	CategoryID string
	DueFrom    *time.Time
	DueTo      *time.Time
	Tags       []string
}

// Apply returns the tasks matching every set predicate, preserving order.
func Apply(tasks []models.Task, f Filters) []models.Task {
	matched := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, f) {
			matched = append(matched, t)
		}
	}
	return matched
}

func matches(t models.Task, f Filters) bool {
	if f.Search != "" && !matchesSearch(t, f.Search) {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.CategoryID != "" && t.CategoryID != f.CategoryID {
		return false
	}
	if f.DueFrom != nil || f.DueTo != nil {
		// A task with no due date never matches a dated range.
		if t.DueDate == nil {
			return false
		}
		due := t.DueDate.Time
		if f.DueFrom != nil && due.Before(*f.DueFrom) {
			return false
		}
		if f.DueTo != nil && due.After(*f.DueTo) {
			return false
		}
	}
	for _, tag := range f.Tags {
		if !t.HasTag(tag) {
			return false
		}
	}
	return true
}

func matchesSearch(t models.Task, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Search returns tasks whose title, description or any tag contains the
// query, case-insensitively.
func Search(tasks []models.Task, query string) []models.Task {
	if strings.TrimSpace(query) == "" {
		return append([]models.Task(nil), tasks...)
	}
	return Apply(tasks, Filters{Search: query})
}

// ByStatus returns tasks with the given status.
func ByStatus(tasks []models.Task, status models.TaskStatus) []models.Task {
	return Apply(tasks, Filters{Status: status})
}

// ByPriority returns tasks with the given priority.
func ByPriority(tasks []models.Task, priority models.TaskPriority) []models.Task {
	return Apply(tasks, Filters{Priority: priority})
}

// ByCategory returns tasks in the given category.
func ByCategory(tasks []models.Task, categoryID string) []models.Task {
	return Apply(tasks, Filters{CategoryID: categoryID})
}

// ByTag returns tasks carrying the given tag.
func ByTag(tasks []models.Task, tag string) []models.Task {
	return Apply(tasks, Filters{Tags: []string{tag}})
}

// Overdue returns uncompleted tasks whose due date is in the past.
func Overdue(tasks []models.Task, now time.Time) []models.Task {
	out := make([]models.Task, 0)
	for _, t := range tasks {
		if t.DueDate != nil && t.DueDate.Before(now) && !t.IsCompleted() {
			out = append(out, t)
		}
	}
	return out
}

// DueToday returns tasks due within [start of today, start of tomorrow).
func DueToday(tasks []models.Task, now time.Time) []models.Task {
	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	out := make([]models.Task, 0)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		due := t.DueDate.Time
		if !due.Before(today) && due.Before(tomorrow) {
			out = append(out, t)
		}
	}
	return out
}

// Upcoming returns tasks due within (now, now+days].
func Upcoming(tasks []models.Task, now time.Time, days int) []models.Task {
	future := now.AddDate(0, 0, days)

	out := make([]models.Task, 0)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		due := t.DueDate.Time
		if due.After(now) && !due.After(future) {
			out = append(out, t)
		}
	}
	return out
}

// Summary counts a filtered view by status and priority.
type Summary struct {
	Total      int
	Filtered   int
	ByStatus   map[models.TaskStatus]int
	ByPriority map[models.TaskPriority]int
}

// Summarize applies f and tallies the matches.
func Summarize(tasks []models.Task, f Filters) Summary {
	filtered := Apply(tasks, f)
	s := Summary{
		Total:      len(tasks),
		Filtered:   len(filtered),
		ByStatus:   make(map[models.TaskStatus]int),
		ByPriority: make(map[models.TaskPriority]int),
	}
	for _, t := range filtered {
		s.ByStatus[t.Status]++
		s.ByPriority[t.Priority]++
	}
	return s
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
