package service

import "strings"

// EditSession holds the transient state of an inline text edit.
type EditSession struct {
	taskID string
	text   string
}

// Start begins editing taskID with its current text.
func (e *EditSession) Start(taskID, text string) {
	e.taskID = taskID
	e.text = text
}

// SetText replaces the draft text.
func (e *EditSession) SetText(text string) {
	e.text = text
}

// Text is the current draft.
func (e *EditSession) Text() string {
	return e.text
}

// TaskID is the task under edit, or "".
func (e *EditSession) TaskID() string {
	return e.taskID
}

// IsEditing reports whether any task is being edited.
func (e *EditSession) IsEditing() bool {
	return e.taskID != ""
}

// IsEditingTask reports whether taskID is the one being edited.
func (e *EditSession) IsEditingTask(taskID string) bool {
	return e.taskID != "" && e.taskID == taskID
}

// Cancel drops the draft.
func (e *EditSession) Cancel() {
	e.taskID = ""
	e.text = ""
}

// Save hands the trimmed draft to onSave and closes the session. A blank
// draft is rejected and the session stays open for correction.
func (e *EditSession) Save(onSave func(taskID, text string)) bool {
	text := strings.TrimSpace(e.text)
	if e.taskID == "" || text == "" {
		return false
	}
	onSave(e.taskID, text)
	e.Cancel()
	return true
}
