// Package stats computes aggregate metrics over a task snapshot. All
// functions are pure; time-dependent ones take the reference instant as a
// parameter so callers control "today".
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/taskvault/taskvault/internal/models"
)

const dayFormat = "2006-01-02"

// CompletionStats summarizes the status breakdown of a task collection.
type CompletionStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	InProgress     int `json:"inProgress"`
	Todo           int `json:"todo"`
	CompletionRate int `json:"completionRate"`
}

// Completion tallies tasks by status. CompletionRate is the percentage of
// completed tasks, rounded to the nearest integer, and 0 for an empty
// collection.
func Completion(tasks []models.Task) CompletionStats {
	s := CompletionStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusTodo:
			s.Todo++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// PriorityDistribution counts tasks per priority level.
func PriorityDistribution(tasks []models.Task) map[models.TaskPriority]int {
	dist := map[models.TaskPriority]int{
		models.PriorityHigh:   0,
		models.PriorityMedium: 0,
		models.PriorityLow:    0,
	}
	for _, t := range tasks {
		if _, ok := dist[t.Priority]; ok {
			dist[t.Priority]++
		}
	}
	return dist
}

// TrendEntry is one day of the productivity trend.
type TrendEntry struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Points    int    `json:"points"`
}

// ProductivityTrend returns one entry per day for the last days days ending
// at now, oldest first. Completed counts tasks whose completion fell on
// that day; points weight them by priority (high 3, medium 2, low 1).
// Calendar days follow now's location; stored timestamps are UTC and are
// converted before bucketing.
func ProductivityTrend(tasks []models.Task, days int, now time.Time) []TrendEntry {
	trend := make([]TrendEntry, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(dayFormat)
		entry := TrendEntry{Date: day}
		for _, t := range tasks {
			if t.CompletedAt == nil || t.CompletedAt.In(now.Location()).Format(dayFormat) != day {
				continue
			}
			entry.Completed++
			entry.Points += t.Priority.Weight()
		}
		trend = append(trend, entry)
	}
	return trend
}

// AverageCompletionHours returns the mean time from creation to completion
// in hours, rounded to one decimal place. Tasks without a completion
// timestamp are ignored; with none at all the result is 0.
func AverageCompletionHours(tasks []models.Task) float64 {
	var total float64
	var count int
	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		total += t.CompletedAt.Sub(t.CreatedAt.Time).Hours()
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Round(total/float64(count)*10) / 10
}

// MostProductiveDay returns the weekday name with the most completions,
// and false when nothing has been completed. Ties go to the earlier
// weekday, Sunday first.
func MostProductiveDay(tasks []models.Task) (string, bool) {
	var counts [7]int
	for _, t := range tasks {
		if t.CompletedAt != nil {
			counts[int(t.CompletedAt.Weekday())]++
		}
	}
	best := 0
	for i := 1; i < 7; i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	if counts[best] == 0 {
		return "", false
	}
	return time.Weekday(best).String(), true
}

// StreakStats describes runs of consecutive days with at least one
// completion.
type StreakStats struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Streaks computes the current and longest completion streaks. A day
// counts once no matter how many tasks were completed on it. The current
// streak survives until a full day is missed, so a run ending yesterday
// still counts today. Calendar days follow now's location.
func Streaks(tasks []models.Task, now time.Time) StreakStats {
	seen := make(map[string]bool)
	for _, t := range tasks {
		if t.CompletedAt != nil {
			seen[t.CompletedAt.In(now.Location()).Format(dayFormat)] = true
		}
	}
	if len(seen) == 0 {
		return StreakStats{}
	}

	days := make([]string, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Strings(days)

	var stats StreakStats
	run := 1
	for i := 1; i < len(days); i++ {
		if consecutive(days[i-1], days[i]) {
			run++
		} else {
			run = 1
		}
		if run > stats.Longest {
			stats.Longest = run
		}
	}
	if stats.Longest == 0 {
		stats.Longest = 1
	}

	today := now.Format(dayFormat)
	yesterday := now.AddDate(0, 0, -1).Format(dayFormat)
	last := days[len(days)-1]
	if last == today || last == yesterday {
		stats.Current = 1
		for i := len(days) - 1; i > 0; i-- {
			if !consecutive(days[i-1], days[i]) {
				break
			}
			stats.Current++
		}
	}
	return stats
}

func consecutive(a, b string) bool {
	ta, err := time.Parse(dayFormat, a)
	if err != nil {
		return false
	}
	return ta.AddDate(0, 0, 1).Format(dayFormat) == b
}

// CategoryStat is the per-category slice of the workload.
type CategoryStat struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
}

// ByCategory breaks the collection down per category, with an entry for
// uncategorized tasks last. Percentage is each category's share of all
// tasks, rounded to one decimal place.
func ByCategory(tasks []models.Task, categories []models.Category) []CategoryStat {
	stats := make([]CategoryStat, 0, len(categories)+1)
	index := make(map[string]int, len(categories))
	for _, c := range categories {
		index[c.ID] = len(stats)
		stats = append(stats, CategoryStat{CategoryID: c.ID, Name: c.Name})
	}
	index[""] = len(stats)
	stats = append(stats, CategoryStat{Name: "Uncategorized"})

	for _, t := range tasks {
		i, ok := index[t.CategoryID]
		if !ok {
			i = index[""]
		}
		stats[i].Total++
		if t.IsCompleted() {
			stats[i].Completed++
		}
	}

	if len(tasks) > 0 {
		for i := range stats {
			share := float64(stats[i].Total) / float64(len(tasks)) * 100
			stats[i].Percentage = math.Round(share*10) / 10
		}
	}
	return stats
}

// TagCounts returns how many tasks carry each tag.
func TagCounts(tasks []models.Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		for _, tag := range t.Tags {
			counts[tag]++
		}
	}
	return counts
}

// TimeAccuracy compares estimated against actual minutes across tasks
// that recorded both.
type TimeAccuracy struct {
	Tasks            int `json:"tasks"`
	EstimatedMinutes int `json:"estimatedMinutes"`
	ActualMinutes    int `json:"actualMinutes"`
}

// EstimatedVsActual sums estimation metadata over tasks carrying both an
// estimate and an actual duration.
func EstimatedVsActual(tasks []models.Task) TimeAccuracy {
	var acc TimeAccuracy
	for _, t := range tasks {
		if t.Metadata.EstimatedTime <= 0 || t.Metadata.ActualTime <= 0 {
			continue
		}
		acc.Tasks++
		acc.EstimatedMinutes += t.Metadata.EstimatedTime
		acc.ActualMinutes += t.Metadata.ActualTime
	}
	return acc
}
