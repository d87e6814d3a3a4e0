package service

import (
	"slices"

	"todo-app/internal/model"
)

// Reorder moves the task movedID into the slot held by targetID, shifting
// the tasks in between. It always returns a fresh slice; changed is false
// when the order is left as is (same id, empty target, or an unknown id).
func Reorder(tasks []model.Task, movedID, targetID string) (out []model.Task, changed bool) {
	out = slices.Clone(tasks)
	if out == nil {
		out = []model.Task{}
	}
	if movedID == "" || targetID == "" || movedID == targetID {
		return out, false
	}

	from := indexOf(out, movedID)
	to := indexOf(out, targetID)
	if from < 0 || to < 0 {
		return out, false
	}

	moved := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, moved)
	return out, true
}

func indexOf(tasks []model.Task, id string) int {
	return slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID == id })
}

// DragSession tracks a single drag gesture over a task list.
type DragSession struct {
	active string

	// OnReorder, when set, receives the new order after a drop that moved something.
	OnReorder func([]model.Task)
}

// Start records id as the task being dragged.
func (d *DragSession) Start(id string) {
	d.active = id
}

// ActiveID is the task being dragged, or "" when idle.
func (d *DragSession) ActiveID() string {
	return d.active
}

// Dragging reports whether a drag is in progress.
func (d *DragSession) Dragging() bool {
	return d.active != ""
}

// End drops the dragged task onto overID. The active id is cleared whether
// or not anything moved; an empty overID means the drop landed nowhere.
func (d *DragSession) End(tasks []model.Task, overID string) ([]model.Task, bool) {
	moved := d.active
	d.active = ""

	out, changed := Reorder(tasks, moved, overID)
	if changed && d.OnReorder != nil {
		d.OnReorder(out)
	}
	return out, changed
}

// Cancel abandons the drag without touching any list.
func (d *DragSession) Cancel() {
	d.active = ""
}
