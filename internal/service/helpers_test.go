package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pgregory.net/rapid"

	"todo-app/internal/model"
)

// refNow is a fixed "now" shared by the engine tests: Saturday 2024-06-15 12:00 UTC.
var refNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func daysFromRef(n int) time.Time {
	return refNow.AddDate(0, 0, n)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func mk(id string, mods ...func(*model.Task)) model.Task {
	t := model.Task{
		ID:        id,
		Text:      "task " + id,
		Priority:  model.PriorityMedium,
		CreatedAt: daysFromRef(-10),
		UpdatedAt: daysFromRef(-10),
	}
	for _, m := range mods {
		m(&t)
	}
	return t
}

func done(at time.Time) func(*model.Task) {
	return func(t *model.Task) {
		t.Completed = true
		t.UpdatedAt = at
	}
}

func withPriority(p model.Priority) func(*model.Task) {
	return func(t *model.Task) { t.Priority = p }
}

func withDue(at time.Time) func(*model.Task) {
	return func(t *model.Task) { t.DueDate = ptrTime(at) }
}

func withCategory(c string) func(*model.Task) {
	return func(t *model.Task) { t.Category = c }
}

func withTags(tags ...string) func(*model.Task) {
	return func(t *model.Task) { t.Tags = tags }
}

func withText(s string) func(*model.Task) {
	return func(t *model.Task) { t.Text = s }
}

func created(at time.Time) func(*model.Task) {
	return func(t *model.Task) {
		t.CreatedAt = at
		if t.UpdatedAt.Before(at) {
			t.UpdatedAt = at
		}
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

// memStorage records every save.
type memStorage struct {
	mu    sync.Mutex
	tasks []model.Task
	saves int
}

func (m *memStorage) Load(context.Context) []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

func (m *memStorage) Save(_ context.Context, tasks []model.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = tasks
	m.saves++
}

func (m *memStorage) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func genTask(t *rapid.T) model.Task {
	n := rapid.IntRange(0, 1<<20).Draw(t, "id")
	createdAt := daysFromRef(-rapid.IntRange(0, 60).Draw(t, "createdDaysAgo"))
	task := model.Task{
		ID:        fmt.Sprintf("t%d", n),
		Text:      rapid.SampledFrom([]string{"Buy milk", "write report", "りんごを買う", "Call Bob", "レポート", "", "apple"}).Draw(t, "text"),
		Completed: rapid.Bool().Draw(t, "completed"),
		Priority:  rapid.SampledFrom(model.Priorities).Draw(t, "priority"),
		Category:  rapid.SampledFrom([]string{"", "work", "home"}).Draw(t, "category"),
		CreatedAt: createdAt,
		UpdatedAt: createdAt.Add(time.Duration(rapid.IntRange(0, 72).Draw(t, "updatedHours")) * time.Hour),
	}
	if rapid.Bool().Draw(t, "hasTags") {
		task.Tags = rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "c"}), 1, 3).Draw(t, "tags")
	}
	if rapid.Bool().Draw(t, "hasDue") {
		task.DueDate = ptrTime(daysFromRef(rapid.IntRange(-10, 14).Draw(t, "dueDays")))
	}
	return task
}

func genFilter(t *rapid.T) Filter {
	f := Filter{
		Status:     rapid.SampledFrom([]Status{StatusAll, StatusActive, StatusCompleted}).Draw(t, "status"),
		Priority:   rapid.SampledFrom([]model.Priority{"", model.PriorityLow, model.PriorityMedium, model.PriorityHigh}).Draw(t, "fPriority"),
		Category:   rapid.SampledFrom([]string{"", "work", "home"}).Draw(t, "fCategory"),
		SearchText: rapid.SampledFrom([]string{"", "b", "REPORT", "りんご"}).Draw(t, "search"),
		Due:        rapid.SampledFrom([]DueFilter{"", DueOverdue, DueToday, DueThisWeek}).Draw(t, "due"),
	}
	if rapid.Bool().Draw(t, "fHasTags") {
		f.Tags = rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "c"}), 1, 2).Draw(t, "fTags")
	}
	return f
}
