package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"todo-app/internal/model"
)

func TestComputeStatistics_Empty(t *testing.T) {
	stats := ComputeStatistics(nil, refNow)

	assert.Equal(t, Statistics{CategoryBreakdown: map[string]int{}}, stats)
}

func TestComputeStatistics_Counts(t *testing.T) {
	tasks := []model.Task{
		mk("a", withPriority(model.PriorityHigh), done(refNow), withCategory("work")),
		mk("b", withPriority(model.PriorityHigh), withCategory("work")),
		mk("c", withPriority(model.PriorityLow), withCategory("home")),
		mk("d"),
	}

	stats := ComputeStatistics(tasks, refNow)

	assert.Equal(t, 4, stats.TotalTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, 3, stats.ActiveTasks)
	assert.InDelta(t, 25.0, stats.CompletionRate, 1e-9)
	assert.Equal(t, PriorityCounts{High: 2, Medium: 1, Low: 1}, stats.PriorityBreakdown)
	assert.Equal(t, PriorityCounts{High: 1}, stats.CompletedByPriority)
	assert.Equal(t, map[string]int{"work": 2, "home": 1}, stats.CategoryBreakdown)
	assert.Equal(t, 3, stats.TasksWithoutDueDate)
}

func TestComputeStatistics_Today(t *testing.T) {
	startOfToday := model.DateOnly(refNow)
	tasks := []model.Task{
		mk("created-today", created(startOfToday)),
		mk("created-yesterday", created(startOfToday.Add(-time.Second))),
		mk("done-today", done(startOfToday.Add(time.Hour))),
		mk("done-yesterday", done(startOfToday.Add(-time.Hour))),
	}

	stats := ComputeStatistics(tasks, refNow)

	assert.Equal(t, 1, stats.TasksCreatedToday)
	assert.Equal(t, 1, stats.TasksCompletedToday)
}

func TestComputeStatistics_AverageUsesFixedThirtyDayDivisor(t *testing.T) {
	var tasks []model.Task
	for i := 0; i < 6; i++ {
		tasks = append(tasks, mk(string(rune('a'+i)), created(daysFromRef(-i))))
	}
	tasks = append(tasks, mk("ancient", created(daysFromRef(-45))))

	stats := ComputeStatistics(tasks, refNow)

	assert.InDelta(t, 6.0/30.0, stats.AverageTasksPerDay, 1e-9)
}

func TestComputeStatistics_Streaks(t *testing.T) {
	tasks := []model.Task{
		mk("d0", done(daysFromRef(0))),
		mk("d0b", done(daysFromRef(0).Add(-2*time.Hour))),
		mk("d1", done(daysFromRef(-1))),
		mk("d2", done(daysFromRef(-2))),
		mk("d4", done(daysFromRef(-4))),
	}

	stats := ComputeStatistics(tasks, refNow)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.LongestStreak)

	for i := 10; i < 14; i++ {
		tasks = append(tasks, mk("old", done(daysFromRef(-i))))
	}
	stats = ComputeStatistics(tasks, refNow)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 4, stats.LongestStreak)
}

func TestComputeStatistics_CurrentStreakZeroWithoutCompletionToday(t *testing.T) {
	tasks := []model.Task{
		mk("d1", done(daysFromRef(-1))),
		mk("d2", done(daysFromRef(-2))),
		mk("open-today", created(daysFromRef(0))),
	}

	stats := ComputeStatistics(tasks, refNow)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)
}

func TestComputeStatistics_StreakAcrossMonthBoundary(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		mk("mar1", done(now)),
		mk("feb29", done(time.Date(2024, 2, 29, 20, 0, 0, 0, time.UTC))),
		mk("feb28", done(time.Date(2024, 2, 28, 8, 0, 0, 0, time.UTC))),
	}

	stats := ComputeStatistics(tasks, now)
	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.LongestStreak)
}

func TestComputeStatistics_DueBuckets(t *testing.T) {
	tasks := []model.Task{
		mk("overdue", withDue(daysFromRef(-1))),
		mk("overdue-done", withDue(daysFromRef(-1)), done(refNow)),
		mk("today-early", withDue(model.DateOnly(refNow))),
		mk("today-late", withDue(refNow.Add(6*time.Hour))),
		mk("in7", withDue(daysFromRef(7))),
		mk("in8", withDue(daysFromRef(8))),
		mk("nodue"),
		mk("nodue-done", done(refNow)),
	}

	stats := ComputeStatistics(tasks, refNow)

	assert.Equal(t, 1, stats.OverdueTasksCount)
	assert.Equal(t, 2, stats.DueTodayCount)
	assert.Equal(t, 3, stats.DueThisWeekCount)
	assert.Equal(t, 1, stats.TasksWithoutDueDate)
}

func TestComputeStatistics_UsesLocationOfNow(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, 6, 15, 8, 0, 0, 0, tokyo)
	// 2024-06-14 23:30 UTC is already June 15 in Tokyo.
	completedAt := time.Date(2024, 6, 14, 23, 30, 0, 0, time.UTC)

	stats := ComputeStatistics([]model.Task{mk("a", done(completedAt))}, now)
	assert.Equal(t, 1, stats.TasksCompletedToday)
	assert.Equal(t, 1, stats.CurrentStreak)
}

func TestPriorityCounts_Get(t *testing.T) {
	c := PriorityCounts{High: 1, Medium: 2, Low: 3}
	assert.Equal(t, 1, c.Get(model.PriorityHigh))
	assert.Equal(t, 2, c.Get(model.PriorityMedium))
	assert.Equal(t, 3, c.Get(model.PriorityLow))
	assert.Equal(t, 0, c.Get("urgent"))
}
