package service

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"todo-app/internal/model"
)

// Status selects tasks by completion.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// DueFilter selects tasks by deadline relative to the current day.
type DueFilter string

const (
	DueOverdue  DueFilter = "overdue"
	DueToday    DueFilter = "today"
	DueThisWeek DueFilter = "thisWeek"
)

// ParseStatus accepts one of all, active, completed.
func ParseStatus(raw string) (Status, bool) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case "", StatusAll:
		return StatusAll, true
	case StatusActive, StatusCompleted:
		return s, true
	default:
		return "", false
	}
}

// ParseDueFilter accepts overdue, today or thisWeek (case-insensitive). Empty means no filter.
func ParseDueFilter(raw string) (DueFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", true
	case "overdue":
		return DueOverdue, true
	case "today":
		return DueToday, true
	case "thisweek", "this-week", "week":
		return DueThisWeek, true
	default:
		return "", false
	}
}

// Filter narrows a task list. Zero values mean the criterion is not applied;
// active criteria are ANDed together, Tags match when any tag is shared.
type Filter struct {
	Status     Status
	Priority   model.Priority
	Category   string
	SearchText string
	Tags       []string
	Due        DueFilter
}

// IsEmpty reports whether the filter lets every task through.
func (f Filter) IsEmpty() bool {
	return (f.Status == "" || f.Status == StatusAll) &&
		f.Priority == "" && f.Category == "" && f.SearchText == "" &&
		len(f.Tags) == 0 && f.Due == ""
}

// FilterTasks returns the tasks matching f, in input order. Deadline
// criteria are evaluated against the calendar day of now.
func FilterTasks(tasks []model.Task, f Filter, now time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	if f.IsEmpty() {
		return append(out, tasks...)
	}

	var needle string
	fold := cases.Fold()
	if f.SearchText != "" {
		needle = fold.String(f.SearchText)
	}
	today := model.DateOnly(now)

	for _, task := range tasks {
		if matches(task, f, needle, fold, today) {
			out = append(out, task)
		}
	}
	return out
}

func matches(task model.Task, f Filter, needle string, fold cases.Caser, today time.Time) bool {
	switch f.Status {
	case StatusActive:
		if task.Completed {
			return false
		}
	case StatusCompleted:
		if !task.Completed {
			return false
		}
	}

	if f.Priority != "" && task.Priority != f.Priority {
		return false
	}
	if f.Category != "" && task.Category != f.Category {
		return false
	}
	if needle != "" && !strings.Contains(fold.String(task.Text), needle) {
		return false
	}
	if len(f.Tags) > 0 && !sharesTag(task.Tags, f.Tags) {
		return false
	}
	if f.Due != "" {
		if task.DueDate == nil {
			return false
		}
		return matchesDue(task, f.Due, today)
	}
	return true
}

func matchesDue(task model.Task, due DueFilter, today time.Time) bool {
	day := model.DateOnly(task.DueDate.In(today.Location()))
	switch due {
	case DueOverdue:
		return day.Before(today) && !task.Completed
	case DueToday:
		// Anything due today or earlier, completed or not.
		return !day.After(today)
	case DueThisWeek:
		return !day.Before(today) && !day.After(today.AddDate(0, 0, 7)) && !task.Completed
	default:
		return true
	}
}

func sharesTag(taskTags, wanted []string) bool {
	for _, w := range wanted {
		for _, t := range taskTags {
			if t == w {
				return true
			}
		}
	}
	return false
}
