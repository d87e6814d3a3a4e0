package model

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the allowed priority values from highest to lowest.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Weight orders priorities: high=3, medium=2, low=1. Unknown values weigh 0.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	return p.Weight() > 0
}

// ParsePriority accepts a priority name in any case.
func ParsePriority(raw string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	return p, p.Valid()
}

// Task is a single to-do item.
type Task struct {
	ID        string     `json:"id"`
	Text      string     `json:"text" validate:"notblank"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Priority  Priority   `json:"priority" validate:"oneof=low medium high"`
	Category  string     `json:"category,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

// HasCategory reports whether the task carries a category label.
func (t Task) HasCategory() bool {
	return t.Category != ""
}

// TaskOptions holds the optional fields accepted by CreateTask.
// Zero values mean "not set"; an empty Priority falls back to medium.
type TaskOptions struct {
	Priority Priority
	Category string
	Tags     []string
	DueDate  *time.Time
}

// TaskUpdate is a partial set of editable fields. Nil fields are left untouched.
// A non-nil empty Tags slice clears the tags; ClearDueDate removes the deadline.
type TaskUpdate struct {
	Text         *string
	Priority     *Priority
	Category     *string
	Tags         []string
	DueDate      *time.Time
	ClearDueDate bool
}

// NewTaskID returns a random opaque identifier.
func NewTaskID() string {
	return uuid.NewString()
}

// CreateTask builds a new incomplete task. Text is stored as given; callers
// decide whether to reject blank input.
func CreateTask(text string, opts TaskOptions, now time.Time) Task {
	priority := opts.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	return Task{
		ID:        NewTaskID(),
		Text:      text,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
		Priority:  priority,
		Category:  opts.Category,
		Tags:      cloneTags(opts.Tags),
		DueDate:   cloneTime(opts.DueDate),
	}
}

// ToggleTaskComplete returns a copy of task with Completed flipped.
func ToggleTaskComplete(task Task, now time.Time) Task {
	out := task.Clone()
	out.Completed = !task.Completed
	out.UpdatedAt = touched(task, now)
	return out
}

// UpdateTask returns a copy of task with the fields present in upd applied.
func UpdateTask(task Task, upd TaskUpdate, now time.Time) Task {
	out := task.Clone()
	if upd.Text != nil {
		out.Text = *upd.Text
	}
	if upd.Priority != nil {
		out.Priority = *upd.Priority
	}
	if upd.Category != nil {
		out.Category = *upd.Category
	}
	if upd.Tags != nil {
		out.Tags = cloneTags(upd.Tags)
	}
	switch {
	case upd.ClearDueDate:
		out.DueDate = nil
	case upd.DueDate != nil:
		out.DueDate = cloneTime(upd.DueDate)
	}
	out.UpdatedAt = touched(task, now)
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// ValidateTask reports whether task has non-blank text and a known priority.
func ValidateTask(task Task) bool {
	return validate.Struct(task) == nil
}

// Clone returns a deep copy that shares no slices or pointers with t.
func (t Task) Clone() Task {
	out := t
	out.Tags = cloneTags(t.Tags)
	out.DueDate = cloneTime(t.DueDate)
	return out
}

// touched keeps UpdatedAt from ever falling behind CreatedAt.
func touched(task Task, now time.Time) time.Time {
	if now.Before(task.CreatedAt) {
		return task.CreatedAt
	}
	return now
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// DateOnly truncates t to local midnight in t's location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
