package filter

import (
	"time"

	"github.com/taskvault/taskvault/internal/models"
)

// Fixed bucket names for GroupByDueDate and GroupByCategory.
const (
	BucketOverdue       = "overdue"
	BucketToday         = "today"
	BucketTomorrow      = "tomorrow"
	BucketThisWeek      = "this-week"
	BucketNextWeek      = "next-week"
	BucketFuture        = "future"
	BucketNoDate        = "no-date"
	BucketUncategorized = "uncategorized"
)

// GroupByStatus partitions tasks into the three status buckets. Every
// bucket is present even when empty.
func GroupByStatus(tasks []models.Task) map[models.TaskStatus][]models.Task {
	groups := map[models.TaskStatus][]models.Task{
		models.StatusTodo:       {},
		models.StatusInProgress: {},
		models.StatusCompleted:  {},
	}
	for _, t := range tasks {
		if _, ok := groups[t.Status]; ok {
			groups[t.Status] = append(groups[t.Status], t)
		}
	}
	return groups
}

// GroupByPriority partitions tasks into the three priority buckets.
func GroupByPriority(tasks []models.Task) map[models.TaskPriority][]models.Task {
	groups := map[models.TaskPriority][]models.Task{
		models.PriorityHigh:   {},
		models.PriorityMedium: {},
		models.PriorityLow:    {},
	}
	for _, t := range tasks {
		if _, ok := groups[t.Priority]; ok {
			groups[t.Priority] = append(groups[t.Priority], t)
		}
	}
	return groups
}

// GroupByCategory partitions tasks by category id, with an explicit
// uncategorized bucket. Tasks referencing a category not in categories
// land in the uncategorized bucket too.
func GroupByCategory(tasks []models.Task, categories []models.Category) map[string][]models.Task {
	groups := map[string][]models.Task{
		BucketUncategorized: {},
	}
	for _, c := range categories {
		groups[c.ID] = []models.Task{}
	}
	for _, t := range tasks {
		if _, ok := groups[t.CategoryID]; t.CategoryID != "" && ok {
			groups[t.CategoryID] = append(groups[t.CategoryID], t)
		} else {
			groups[BucketUncategorized] = append(groups[BucketUncategorized], t)
		}
	}
	return groups
}

// GroupByDueDate partitions tasks into due-date horizon buckets. Overdue
// takes precedence over every other bucket for any uncompleted task whose
// due date has passed.
func GroupByDueDate(tasks []models.Task, now time.Time) map[string][]models.Task {
	groups := map[string][]models.Task{
		BucketOverdue:  {},
		BucketToday:    {},
		BucketTomorrow: {},
		BucketThisWeek: {},
		BucketNextWeek: {},
		BucketFuture:   {},
		BucketNoDate:   {},
	}

	today := startOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	dayAfterTomorrow := today.AddDate(0, 0, 2)
	nextWeek := today.AddDate(0, 0, 7)
	twoWeeks := today.AddDate(0, 0, 14)

	for _, t := range tasks {
		if t.DueDate == nil {
			groups[BucketNoDate] = append(groups[BucketNoDate], t)
			continue
		}
		due := t.DueDate.Time

		switch {
		case due.Before(now) && !t.IsCompleted():
			groups[BucketOverdue] = append(groups[BucketOverdue], t)
		case !due.Before(today) && due.Before(tomorrow):
			groups[BucketToday] = append(groups[BucketToday], t)
		case !due.Before(tomorrow) && due.Before(dayAfterTomorrow):
			groups[BucketTomorrow] = append(groups[BucketTomorrow], t)
		case !due.Before(dayAfterTomorrow) && due.Before(nextWeek):
			groups[BucketThisWeek] = append(groups[BucketThisWeek], t)
		case !due.Before(nextWeek) && due.Before(twoWeeks):
			groups[BucketNextWeek] = append(groups[BucketNextWeek], t)
		default:
			groups[BucketFuture] = append(groups[BucketFuture], t)
		}
	}
	return groups
}
