package service

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"todo-app/internal/model"
)

// SortKey names the field tasks are ordered by.
type SortKey string

const (
	SortCreatedAt    SortKey = "createdAt"
	SortUpdatedAt    SortKey = "updatedAt"
	SortPriority     SortKey = "priority"
	SortDueDate      SortKey = "dueDate"
	SortAlphabetical SortKey = "alphabetical"
)

// SortKeys lists every supported key.
var SortKeys = []SortKey{SortCreatedAt, SortUpdatedAt, SortPriority, SortDueDate, SortAlphabetical}

// Direction is ascending or descending.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseSortKey matches a key name case-insensitively.
func ParseSortKey(raw string) (SortKey, bool) {
	raw = strings.TrimSpace(raw)
	for _, k := range SortKeys {
		if strings.EqualFold(string(k), raw) {
			return k, true
		}
	}
	return "", false
}

// ParseDirection accepts asc or desc.
func ParseDirection(raw string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case Asc:
		return Asc, true
	case Desc:
		return Desc, true
	default:
		return "", false
	}
}

// DefaultDirection is the direction a key starts with when first selected.
func DefaultDirection(key SortKey) Direction {
	if key == SortAlphabetical {
		return Asc
	}
	return Desc
}

// sortCollation orders mixed kana/kanji/latin text deterministically.
var sortCollation = language.Japanese

// SortTasks returns a sorted copy of tasks. Incomplete tasks always precede
// completed ones, and tasks without a due date always trail under SortDueDate;
// neither rule is flipped by dir. Ties keep input order.
func SortTasks(tasks []model.Task, key SortKey, dir Direction) []model.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []model.Task{}
	}

	var col *collate.Collator
	if key == SortAlphabetical {
		col = collate.New(sortCollation)
	}

	slices.SortStableFunc(out, func(a, b model.Task) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}

		if key == SortDueDate && (a.DueDate == nil || b.DueDate == nil) {
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return 0
			case a.DueDate == nil:
				return 1
			default:
				return -1
			}
		}

		c := compareByKey(a, b, key, col)
		if dir == Desc {
			return -c
		}
		return c
	})
	return out
}

func compareByKey(a, b model.Task, key SortKey, col *collate.Collator) int {
	switch key {
	case SortCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case SortPriority:
		return a.Priority.Weight() - b.Priority.Weight()
	case SortDueDate:
		return a.DueDate.Compare(*b.DueDate)
	case SortAlphabetical:
		return col.CompareString(a.Text, b.Text)
	default:
		return 0
	}
}
