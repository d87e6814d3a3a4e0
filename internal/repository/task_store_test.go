package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"todo-app/internal/config"
	"todo-app/internal/model"
)

type mapKV map[string]string

func (m mapKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapKV) Put(_ context.Context, key, value string) error {
	m[key] = value
	return nil
}

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (brokenKV) Put(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func sampleTasks() []model.Task {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	due := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	return []model.Task{
		{
			ID: "a", Text: "write report", CreatedAt: created, UpdatedAt: created.Add(time.Hour),
			Priority: model.PriorityHigh, Category: "work", Tags: []string{"q1", "docs"}, DueDate: &due,
		},
		{
			ID: "b", Text: "buy milk", Completed: true, CreatedAt: created, UpdatedAt: created,
			Priority: model.PriorityLow,
		},
	}
}

func assertSameTasks(t *testing.T, want, got []model.Task) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		w, g := want[i], got[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.Text, g.Text)
		assert.Equal(t, w.Completed, g.Completed)
		assert.Equal(t, w.Priority, g.Priority)
		assert.Equal(t, w.Category, g.Category)
		assert.Equal(t, w.Tags, g.Tags)
		assert.True(t, w.CreatedAt.Equal(g.CreatedAt), "createdAt %v != %v", w.CreatedAt, g.CreatedAt)
		assert.True(t, w.UpdatedAt.Equal(g.UpdatedAt), "updatedAt %v != %v", w.UpdatedAt, g.UpdatedAt)
		if w.DueDate == nil {
			assert.Nil(t, g.DueDate)
		} else {
			require.NotNil(t, g.DueDate)
			assert.True(t, w.DueDate.Equal(*g.DueDate))
		}
	}
}

func TestTaskStore_RoundTripSQLite(t *testing.T) {
	ctx := context.Background()
	store := NewTaskStore(NewKVRepository(newTestDB(t)), config.DefaultStorageKey, nil)

	tasks := sampleTasks()
	store.Save(ctx, tasks)

	assertSameTasks(t, tasks, store.Load(ctx))
}

func TestTaskStore_SerializedDatesAreISO(t *testing.T) {
	kv := mapKV{}
	store := NewTaskStore(kv, "key", nil)
	store.Save(context.Background(), sampleTasks())

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(kv["key"]), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-01T09:30:00Z", records[0]["createdAt"])
	assert.Equal(t, "2024-03-05T00:00:00Z", records[0]["dueDate"])
	assert.NotContains(t, records[1], "dueDate")
	assert.NotContains(t, records[1], "category")
}

func TestTaskStore_LoadAbsentIsEmpty(t *testing.T) {
	store := NewTaskStore(mapKV{}, "key", nil)

	tasks := store.Load(context.Background())
	require.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskStore_LoadCorruptIsEmpty(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":     "{{{",
		"wrong shape":  `{"id":"x"}`,
		"bad date":     `[{"id":"x","text":"t","createdAt":"yesterday","updatedAt":"2024-01-01T00:00:00Z","priority":"low"}]`,
		"bad due date": `[{"id":"x","text":"t","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z","priority":"low","dueDate":"soon"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			store := NewTaskStore(mapKV{"key": raw}, "key", nil)
			assert.Empty(t, store.Load(context.Background()))
		})
	}
}

func TestTaskStore_AcceptsBrowserTimestamps(t *testing.T) {
	raw := `[{"id":"x","text":"t","completed":false,"createdAt":"2024-01-01T10:00:00.000Z","updatedAt":"2024-01-02T10:00:00.123Z","priority":"medium","dueDate":"2024-01-10"}]`
	store := NewTaskStore(mapKV{"key": raw}, "key", nil)

	tasks := store.Load(context.Background())
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].CreatedAt.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, 123*time.Millisecond, time.Duration(tasks[0].UpdatedAt.Nanosecond()))
	require.NotNil(t, tasks[0].DueDate)
	y, m, d := tasks[0].DueDate.Date()
	assert.Equal(t, []int{2024, 1, 10}, []int{y, int(m), d})
}

func TestTaskStore_FailuresAreSwallowed(t *testing.T) {
	store := NewTaskStore(brokenKV{}, "key", nil)

	assert.NotPanics(t, func() { store.Save(context.Background(), sampleTasks()) })
	assert.Empty(t, store.Load(context.Background()))
}

func genTask(t *rapid.T) model.Task {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	created := base.Add(time.Duration(rapid.Int64Range(0, 1<<40).Draw(t, "createdOffset")))
	updated := created.Add(time.Duration(rapid.Int64Range(0, 1<<40).Draw(t, "updatedOffset")))
	task := model.Task{
		ID:        fmt.Sprintf("id-%d", rapid.IntRange(0, 1<<20).Draw(t, "id")),
		Text:      rapid.String().Draw(t, "text"),
		Completed: rapid.Bool().Draw(t, "completed"),
		CreatedAt: created,
		UpdatedAt: updated,
		Priority:  rapid.SampledFrom(model.Priorities).Draw(t, "priority"),
		Category:  rapid.SampledFrom([]string{"", "work", "home", "買い物"}).Draw(t, "category"),
	}
	if n := rapid.IntRange(0, 3).Draw(t, "nTags"); n > 0 {
		task.Tags = rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,6}`), n, n).Draw(t, "tags")
	}
	if rapid.Bool().Draw(t, "hasDue") {
		due := base.AddDate(0, 0, rapid.IntRange(-30, 60).Draw(t, "dueDays"))
		task.DueDate = &due
	}
	return task
}

func TestTaskStore_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tasks := rapid.SliceOfN(rapid.Custom(genTask), 0, 15).Draw(rt, "tasks")

		store := NewTaskStore(mapKV{}, "key", nil)
		store.Save(context.Background(), tasks)
		loaded := store.Load(context.Background())

		if len(loaded) != len(tasks) {
			rt.Fatalf("expected %d tasks, got %d", len(tasks), len(loaded))
		}
		for i := range tasks {
			want, got := tasks[i], loaded[i]
			if want.ID != got.ID || want.Text != got.Text || want.Completed != got.Completed ||
				want.Priority != got.Priority || want.Category != got.Category {
				rt.Fatalf("task %d mismatch: %+v vs %+v", i, want, got)
			}
			if !want.CreatedAt.Equal(got.CreatedAt) || !want.UpdatedAt.Equal(got.UpdatedAt) {
				rt.Fatalf("task %d timestamps mismatch", i)
			}
			if (want.DueDate == nil) != (got.DueDate == nil) {
				rt.Fatalf("task %d due date presence mismatch", i)
			}
			if want.DueDate != nil && !want.DueDate.Equal(*got.DueDate) {
				rt.Fatalf("task %d due date mismatch", i)
			}
			if len(want.Tags) != len(got.Tags) {
				rt.Fatalf("task %d tags mismatch: %v vs %v", i, want.Tags, got.Tags)
			}
		}
	})
}
