package filter

import (
	"sort"

	"github.com/taskvault/taskvault/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption selects a task ordering.
type SortOption string

const (
	SortByDueDate   SortOption = "dueDate"
	SortByPriority  SortOption = "priority"
	SortByTitle     SortOption = "title"
	SortByCreatedAt SortOption = "createdAt"
	SortByUpdatedAt SortOption = "updatedAt"
)

// titleCollator orders titles the way a user would expect rather than by
// raw byte value.
var titleCollator = collate.New(language.English, collate.Loose)

// Sort returns a sorted copy of tasks. Sorting is stable, so chained sorts
// preserve prior order among equal elements. Unknown options return the
// input order unchanged.
//
//	dueDate    ascending, tasks without a due date last
//	priority   high before medium before low
//	title      locale-aware ascending
//	createdAt  most recent first
//	updatedAt  most recent first
func Sort(tasks []models.Task, by SortOption) []models.Task {
	sorted := append([]models.Task(nil), tasks...)

	var less func(a, b models.Task) bool
	switch by {
	case SortByDueDate:
		less = func(a, b models.Task) bool { return compareDueDates(a, b) < 0 }
	case SortByPriority:
		less = func(a, b models.Task) bool { return a.Priority.Weight() > b.Priority.Weight() }
	case SortByTitle:
		less = func(a, b models.Task) bool { return titleCollator.CompareString(a.Title, b.Title) < 0 }
	case SortByCreatedAt:
		less = func(a, b models.Task) bool { return a.CreatedAt.After(b.CreatedAt.Time) }
	case SortByUpdatedAt:
		less = func(a, b models.Task) bool { return a.UpdatedAt.After(b.UpdatedAt.Time) }
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

func compareDueDates(a, b models.Task) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	case a.DueDate.Before(b.DueDate.Time):
		return -1
	case a.DueDate.After(b.DueDate.Time):
		return 1
	}
	return 0
}
