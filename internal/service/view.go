package service

import (
	"time"

	"todo-app/internal/model"
)

// View is the display configuration applied to the raw task list.
// Manual switches from sorting to the stored drag order.
type View struct {
	Filter    Filter
	SortKey   SortKey
	Direction Direction
	Manual    bool
}

// DefaultView shows everything, newest first.
func DefaultView() View {
	return View{
		Filter:    Filter{Status: StatusAll},
		SortKey:   SortCreatedAt,
		Direction: Desc,
	}
}

// ToggleSort selects key. Re-selecting the current key flips the direction;
// a new key starts from its default direction.
func (v *View) ToggleSort(key SortKey) {
	v.Manual = false
	if v.SortKey == key {
		if v.Direction == Asc {
			v.Direction = Desc
		} else {
			v.Direction = Asc
		}
		return
	}
	v.SortKey = key
	v.Direction = DefaultDirection(key)
}

// Apply filters tasks and then orders them.
func (v View) Apply(tasks []model.Task, now time.Time) []model.Task {
	filtered := FilterTasks(tasks, v.Filter, now)
	if v.Manual {
		return filtered
	}
	return SortTasks(filtered, v.SortKey, v.Direction)
}
