package service

import (
	"slices"
	"time"

	"todo-app/internal/model"
)

// averageWindowDays is both the look-back window and the divisor for AverageTasksPerDay.
const averageWindowDays = 30

// PriorityCounts holds one counter per priority level.
type PriorityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func (c *PriorityCounts) add(p model.Priority) {
	switch p {
	case model.PriorityHigh:
		c.High++
	case model.PriorityMedium:
		c.Medium++
	case model.PriorityLow:
		c.Low++
	}
}

// Get returns the counter for p.
func (c PriorityCounts) Get(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return c.High
	case model.PriorityMedium:
		return c.Medium
	case model.PriorityLow:
		return c.Low
	default:
		return 0
	}
}

// Statistics is the dashboard report over the full, unfiltered task list.
type Statistics struct {
	TotalTasks          int            `json:"totalTasks"`
	CompletedTasks      int            `json:"completedTasks"`
	ActiveTasks         int            `json:"activeTasks"`
	CompletionRate      float64        `json:"completionRate"`
	PriorityBreakdown   PriorityCounts `json:"priorityBreakdown"`
	CompletedByPriority PriorityCounts `json:"completedByPriority"`
	CategoryBreakdown   map[string]int `json:"categoryBreakdown"`
	TasksCreatedToday   int            `json:"tasksCreatedToday"`
	TasksCompletedToday int            `json:"tasksCompletedToday"`
	AverageTasksPerDay  float64        `json:"averageTasksPerDay"`
	LongestStreak       int            `json:"longestStreak"`
	CurrentStreak       int            `json:"currentStreak"`
	OverdueTasksCount   int            `json:"overdueTasksCount"`
	DueTodayCount       int            `json:"dueTodayCount"`
	DueThisWeekCount    int            `json:"dueThisWeekCount"`
	TasksWithoutDueDate int            `json:"tasksWithoutDueDate"`
}

// civilDate is a calendar day with no time or zone attached.
type civilDate struct {
	year  int
	month time.Month
	day   int
}

func civilOf(t time.Time, loc *time.Location) civilDate {
	y, m, d := t.In(loc).Date()
	return civilDate{y, m, d}
}

func (d civilDate) addDays(n int) civilDate {
	t := time.Date(d.year, d.month, d.day+n, 0, 0, 0, 0, time.UTC)
	return civilDate{t.Year(), t.Month(), t.Day()}
}

func (d civilDate) compare(o civilDate) int {
	switch {
	case d.year != o.year:
		return d.year - o.year
	case d.month != o.month:
		return int(d.month) - int(o.month)
	default:
		return d.day - o.day
	}
}

// ComputeStatistics derives the report for tasks as seen at now. "Today"
// starts at midnight in now's location.
func ComputeStatistics(tasks []model.Task, now time.Time) Statistics {
	loc := now.Location()
	startOfToday := model.DateOnly(now)
	windowStart := startOfToday.AddDate(0, 0, -averageWindowDays)
	today := civilOf(now, loc)
	weekEnd := today.addDays(7)

	stats := Statistics{CategoryBreakdown: map[string]int{}}
	completionDays := make(map[civilDate]struct{})
	recent := 0

	for _, task := range tasks {
		stats.TotalTasks++
		stats.PriorityBreakdown.add(task.Priority)
		if task.HasCategory() {
			stats.CategoryBreakdown[task.Category]++
		}
		if !task.CreatedAt.Before(startOfToday) {
			stats.TasksCreatedToday++
		}
		if !task.CreatedAt.Before(windowStart) {
			recent++
		}

		if task.Completed {
			stats.CompletedTasks++
			stats.CompletedByPriority.add(task.Priority)
			if !task.UpdatedAt.Before(startOfToday) {
				stats.TasksCompletedToday++
			}
			completionDays[civilOf(task.UpdatedAt, loc)] = struct{}{}
			continue
		}

		if task.DueDate == nil {
			stats.TasksWithoutDueDate++
			continue
		}
		due := civilOf(*task.DueDate, loc)
		c := due.compare(today)
		if c < 0 {
			stats.OverdueTasksCount++
		}
		if c == 0 {
			stats.DueTodayCount++
		}
		if c >= 0 && due.compare(weekEnd) <= 0 {
			stats.DueThisWeekCount++
		}
	}

	stats.ActiveTasks = stats.TotalTasks - stats.CompletedTasks
	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
	}
	stats.AverageTasksPerDay = float64(recent) / averageWindowDays
	stats.CurrentStreak = currentStreak(completionDays, today)
	stats.LongestStreak = longestStreak(completionDays)
	return stats
}

// currentStreak counts consecutive completion days ending today.
func currentStreak(days map[civilDate]struct{}, today civilDate) int {
	n := 0
	for d := today; ; d = d.addDays(-1) {
		if _, ok := days[d]; !ok {
			return n
		}
		n++
	}
}

// longestStreak finds the longest run of consecutive completion days.
func longestStreak(days map[civilDate]struct{}) int {
	if len(days) == 0 {
		return 0
	}
	sorted := make([]civilDate, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	slices.SortFunc(sorted, civilDate.compare)

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].addDays(1) == sorted[i] {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}
