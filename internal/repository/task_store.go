package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"todo-app/internal/logger"
	"todo-app/internal/model"
)

// KeyValueStore is the minimal storage a TaskStore needs.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// TaskStore persists the whole task list as a JSON array under one key.
// It never reports failures to callers: Load degrades to an empty list and
// Save becomes a no-op, with the cause logged.
type TaskStore struct {
	kv  KeyValueStore
	key string
	log *logger.Logger
}

func NewTaskStore(kv KeyValueStore, key string, log *logger.Logger) *TaskStore {
	if log == nil {
		log = logger.Nop()
	}
	return &TaskStore{kv: kv, key: key, log: log.WithComponent("task_store")}
}

// taskRecord mirrors the serialized form: dates travel as ISO-8601 strings.
type taskRecord struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Completed bool           `json:"completed"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
	Priority  model.Priority `json:"priority"`
	Category  string         `json:"category,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	DueDate   string         `json:"dueDate,omitempty"`
}

// Save writes tasks. Failures are logged and swallowed.
func (s *TaskStore) Save(ctx context.Context, tasks []model.Task) {
	raw, err := EncodeTasks(tasks)
	if err != nil {
		s.log.Warnw("encode tasks", "error", err)
		return
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		s.log.Warnw("save tasks", "key", s.key, "error", err)
	}
}

// Load reads tasks back. Absent, unreadable or corrupt data yields an empty list.
func (s *TaskStore) Load(ctx context.Context) []model.Task {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.Warnw("load tasks", "key", s.key, "error", err)
		return []model.Task{}
	}
	if !ok || raw == "" {
		return []model.Task{}
	}
	tasks, err := DecodeTasks(raw)
	if err != nil {
		s.log.Warnw("discarding corrupt task data", "key", s.key, "error", err)
		return []model.Task{}
	}
	return tasks
}

// EncodeTasks renders tasks as a JSON array.
func EncodeTasks(tasks []model.Task) (string, error) {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		rec := taskRecord{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: formatTime(t.CreatedAt),
			UpdatedAt: formatTime(t.UpdatedAt),
			Priority:  t.Priority,
			Category:  t.Category,
			Tags:      t.Tags,
		}
		if t.DueDate != nil {
			rec.DueDate = formatTime(*t.DueDate)
		}
		records = append(records, rec)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal tasks: %w", err)
	}
	return string(data), nil
}

// DecodeTasks parses a JSON array produced by EncodeTasks.
func DecodeTasks(raw string) ([]model.Task, error) {
	var records []taskRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("unmarshal tasks: %w", err)
	}

	tasks := make([]model.Task, 0, len(records))
	for i, rec := range records {
		createdAt, err := parseTime(rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("task %d createdAt: %w", i, err)
		}
		updatedAt, err := parseTime(rec.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("task %d updatedAt: %w", i, err)
		}
		task := model.Task{
			ID:        rec.ID,
			Text:      rec.Text,
			Completed: rec.Completed,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
			Priority:  rec.Priority,
			Category:  rec.Category,
			Tags:      rec.Tags,
		}
		if rec.DueDate != "" {
			due, err := parseTime(rec.DueDate)
			if err != nil {
				return nil, fmt.Errorf("task %d dueDate: %w", i, err)
			}
			task.DueDate = &due
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t.In(time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
