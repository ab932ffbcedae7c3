package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/storage"
)

var statsNow = time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)

func task(status models.TaskStatus, priority models.TaskPriority, mutate ...func(*models.Task)) models.Task {
	t := models.Task{
		ID:        "task_x",
		Status:    status,
		Priority:  priority,
		CreatedAt: storage.NewDateTime(statsNow.Add(-48 * time.Hour)),
	}
	for _, m := range mutate {
		m(&t)
	}
	return t
}

func completedAt(t time.Time) func(*models.Task) {
	return func(task *models.Task) {
		task.Status = models.StatusCompleted
		task.CompletedAt = storage.NewDateTimePtr(t)
	}
}

func TestCompletionEmpty(t *testing.T) {
	s := Completion(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.CompletionRate)
}

func TestCompletionRateRounds(t *testing.T) {
	tasks := []models.Task{
		task(models.StatusCompleted, models.PriorityLow),
		task(models.StatusTodo, models.PriorityLow),
		task(models.StatusInProgress, models.PriorityLow),
	}

	s := Completion(tasks)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 1, s.Todo)
	// 1/3 = 33.33 rounds to 33
	assert.Equal(t, 33, s.CompletionRate)

	s = Completion(tasks[:2])
	assert.Equal(t, 50, s.CompletionRate)
}

func TestPriorityDistributionAlwaysHasAllLevels(t *testing.T) {
	dist := PriorityDistribution([]models.Task{
		task(models.StatusTodo, models.PriorityHigh),
		task(models.StatusTodo, models.PriorityHigh),
		task(models.StatusTodo, models.PriorityLow),
	})

	assert.Equal(t, 2, dist[models.PriorityHigh])
	assert.Equal(t, 0, dist[models.PriorityMedium])
	assert.Equal(t, 1, dist[models.PriorityLow])
}

func TestProductivityTrendWeightsByPriority(t *testing.T) {
	yesterday := statsNow.AddDate(0, 0, -1)
	tasks := []models.Task{
		task(models.StatusCompleted, models.PriorityHigh, completedAt(yesterday)),
		task(models.StatusCompleted, models.PriorityLow, completedAt(yesterday)),
		task(models.StatusCompleted, models.PriorityMedium, completedAt(statsNow)),
		task(models.StatusTodo, models.PriorityHigh),
	}

	trend := ProductivityTrend(tasks, 3, statsNow)
	require.Len(t, trend, 3)

	// Oldest first
	assert.Equal(t, statsNow.AddDate(0, 0, -2).Format("2006-01-02"), trend[0].Date)
	assert.Equal(t, 0, trend[0].Completed)

	assert.Equal(t, 2, trend[1].Completed)
	assert.Equal(t, 4, trend[1].Points) // high 3 + low 1

	assert.Equal(t, 1, trend[2].Completed)
	assert.Equal(t, 2, trend[2].Points)
}

func TestTrendAndStreaksBucketDaysInCallersZone(t *testing.T) {
	// 14:00 local on May 15 in UTC-11 is 01:00 UTC on May 16, so a
	// completion stamped "now" lands on the wrong calendar day if the
	// stored UTC instant is formatted directly.
	zone := time.FixedZone("UTC-11", -11*3600)
	localNow := time.Date(2025, 5, 15, 14, 0, 0, 0, zone)

	tasks := []models.Task{
		task(models.StatusCompleted, models.PriorityMedium, completedAt(localNow)),
	}

	trend := ProductivityTrend(tasks, 1, localNow)
	require.Len(t, trend, 1)
	assert.Equal(t, "2025-05-15", trend[0].Date)
	assert.Equal(t, 1, trend[0].Completed)
	assert.Equal(t, 2, trend[0].Points)

	s := Streaks(tasks, localNow)
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 1, s.Longest)
}

func TestAverageCompletionHours(t *testing.T) {
	created := statsNow.Add(-10 * time.Hour)
	tasks := []models.Task{
		{
			CreatedAt:   storage.NewDateTime(created),
			CompletedAt: storage.NewDateTimePtr(created.Add(4 * time.Hour)),
			Status:      models.StatusCompleted,
		},
		{
			CreatedAt:   storage.NewDateTime(created),
			CompletedAt: storage.NewDateTimePtr(created.Add(5 * time.Hour)),
			Status:      models.StatusCompleted,
		},
		{CreatedAt: storage.NewDateTime(created), Status: models.StatusTodo},
	}

	assert.Equal(t, 4.5, AverageCompletionHours(tasks))
	assert.Equal(t, 0.0, AverageCompletionHours(nil))
}

func TestMostProductiveDay(t *testing.T) {
	// 2025-05-15 is a Thursday, 2025-05-16 a Friday.
	thursday := statsNow
	friday := statsNow.AddDate(0, 0, 1)
	tasks := []models.Task{
		task(models.StatusCompleted, models.PriorityLow, completedAt(friday)),
		task(models.StatusCompleted, models.PriorityLow, completedAt(friday)),
		task(models.StatusCompleted, models.PriorityLow, completedAt(thursday)),
	}

	day, ok := MostProductiveDay(tasks)
	require.True(t, ok)
	assert.Equal(t, "Friday", day)

	_, ok = MostProductiveDay([]models.Task{task(models.StatusTodo, models.PriorityLow)})
	assert.False(t, ok)
}

func TestStreaksCurrentAndLongest(t *testing.T) {
	day := func(offset int) time.Time { return statsNow.AddDate(0, 0, offset) }

	tasks := []models.Task{
		// A three-day run ending yesterday
		task(models.StatusCompleted, models.PriorityLow, completedAt(day(-1))),
		task(models.StatusCompleted, models.PriorityLow, completedAt(day(-2))),
		task(models.StatusCompleted, models.PriorityLow, completedAt(day(-3))),
		// Duplicate completions on one day count once
		task(models.StatusCompleted, models.PriorityLow, completedAt(day(-2))),
		// An older, longer run
		task(models.StatusCompleted, models.PriorityLow, completedAt(day(-10))),
		task(models.StatusCompleted, models.PriorityLow, completedAt(day(-11))),
		task(models.StatusCompleted, models.PriorityLow, completedAt(day(-12))),
		task(models.StatusCompleted, models.PriorityLow, completedAt(day(-13))),
	}

	s := Streaks(tasks, statsNow)
	assert.Equal(t, 3, s.Current)
	assert.Equal(t, 4, s.Longest)
}

func TestStreaksBrokenRunHasNoCurrent(t *testing.T) {
	tasks := []models.Task{
		task(models.StatusCompleted, models.PriorityLow, completedAt(statsNow.AddDate(0, 0, -5))),
	}

	s := Streaks(tasks, statsNow)
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, 1, s.Longest)
}

func TestStreaksEmpty(t *testing.T) {
	assert.Equal(t, StreakStats{}, Streaks(nil, statsNow))
}

func TestByCategoryPercentages(t *testing.T) {
	categories := []models.Category{
		{ID: "cat_work", Name: "Work"},
		{ID: "cat_home", Name: "Home"},
	}
	tasks := []models.Task{
		task(models.StatusCompleted, models.PriorityLow, func(x *models.Task) { x.CategoryID = "cat_work" }),
		task(models.StatusTodo, models.PriorityLow, func(x *models.Task) { x.CategoryID = "cat_work" }),
		task(models.StatusTodo, models.PriorityLow),
	}

	got := ByCategory(tasks, categories)
	require.Len(t, got, 3)

	assert.Equal(t, "Work", got[0].Name)
	assert.Equal(t, 2, got[0].Total)
	assert.Equal(t, 1, got[0].Completed)
	assert.InDelta(t, 66.7, got[0].Percentage, 0.01)

	assert.Equal(t, "Home", got[1].Name)
	assert.Equal(t, 0, got[1].Total)

	assert.Equal(t, "Uncategorized", got[2].Name)
	assert.Equal(t, 1, got[2].Total)
}

func TestTagCounts(t *testing.T) {
	tasks := []models.Task{
		task(models.StatusTodo, models.PriorityLow, func(x *models.Task) { x.Tags = []string{"a", "b"} }),
		task(models.StatusTodo, models.PriorityLow, func(x *models.Task) { x.Tags = []string{"a"} }),
	}

	counts := TagCounts(tasks)
	assert.Equal(t, 2, counts["a"])
	assert.Equal(t, 1, counts["b"])
}

func TestEstimatedVsActualSkipsIncompleteRecords(t *testing.T) {
	tasks := []models.Task{
		task(models.StatusCompleted, models.PriorityLow, func(x *models.Task) {
			x.Metadata = models.TaskMetadata{EstimatedTime: 30, ActualTime: 45}
		}),
		task(models.StatusCompleted, models.PriorityLow, func(x *models.Task) {
			x.Metadata = models.TaskMetadata{EstimatedTime: 60}
		}),
	}

	acc := EstimatedVsActual(tasks)
	assert.Equal(t, 1, acc.Tasks)
	assert.Equal(t, 30, acc.EstimatedMinutes)
	assert.Equal(t, 45, acc.ActualMinutes)
}
