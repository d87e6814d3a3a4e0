package service

import "errors"

var (
	// ErrTaskNotFound is returned for ids that are not in the list.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidTask is returned when a change would leave a task failing validation.
	ErrInvalidTask = errors.New("invalid task")
)
