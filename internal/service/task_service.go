package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"todo-app/internal/logger"
	"todo-app/internal/model"
)

// Storage persists the whole task list. Implementations absorb their own
// failures: Load falls back to an empty list and Save may silently drop data.
type Storage interface {
	Load(ctx context.Context) []model.Task
	Save(ctx context.Context, tasks []model.Task)
}

// Clock returns the current time.
type Clock func() time.Time

// TaskInput represents data required to create a task.
type TaskInput struct {
	Text     string
	Priority model.Priority
	Category string
	Tags     []string
	DueDate  *time.Time
}

// TaskCounts are the per-status totals shown next to the status filter.
type TaskCounts struct {
	All       int
	Active    int
	Completed int
}

// TaskService owns the in-memory task list and writes it back after every change.
// Each mutation replaces the list instead of editing it in place.
type TaskService struct {
	store Storage
	clock Clock
	log   *logger.Logger

	mu    sync.Mutex
	tasks []model.Task
}

func NewTaskService(store Storage, clock Clock, log *logger.Logger) *TaskService {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &TaskService{
		store: store,
		clock: clock,
		log:   log.WithComponent("task_service"),
		tasks: []model.Task{},
	}
}

// Now reads the service clock.
func (s *TaskService) Now() time.Time {
	return s.clock()
}

// Load replaces the in-memory list with the stored one.
func (s *TaskService) Load(ctx context.Context) {
	loaded := s.store.Load(ctx)
	if loaded == nil {
		loaded = []model.Task{}
	}
	s.mu.Lock()
	s.tasks = loaded
	s.mu.Unlock()
	s.log.Debugw("tasks loaded", "count", len(loaded))
}

// Tasks returns a copy of the list in stored order.
func (s *TaskService) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Get looks a task up by id.
func (s *TaskService) Get(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.tasks, id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("get %s: %w", id, ErrTaskNotFound)
	}
	return s.tasks[i], nil
}

// Add creates a task from input and appends it. Blank text is rejected.
func (s *TaskService) Add(ctx context.Context, input TaskInput) (model.Task, error) {
	task := model.CreateTask(strings.TrimSpace(input.Text), model.TaskOptions{
		Priority: input.Priority,
		Category: strings.TrimSpace(input.Category),
		Tags:     input.Tags,
		DueDate:  input.DueDate,
	}, s.clock())
	if !model.ValidateTask(task) {
		return model.Task{}, fmt.Errorf("add task: %w", ErrInvalidTask)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(slices.Clone(s.tasks), task)
	s.commit(ctx, next)
	s.log.Debugw("task added", "id", task.ID)
	return task, nil
}

// Toggle flips the completion state of id.
func (s *TaskService) Toggle(ctx context.Context, id string) (model.Task, error) {
	return s.replace(ctx, id, func(t model.Task, now time.Time) (model.Task, error) {
		return model.ToggleTaskComplete(t, now), nil
	})
}

// Update applies a partial change to id. The result must still validate.
func (s *TaskService) Update(ctx context.Context, id string, upd model.TaskUpdate) (model.Task, error) {
	if upd.Text != nil {
		trimmed := strings.TrimSpace(*upd.Text)
		upd.Text = &trimmed
	}
	if upd.Category != nil {
		trimmed := strings.TrimSpace(*upd.Category)
		upd.Category = &trimmed
	}
	return s.replace(ctx, id, func(t model.Task, now time.Time) (model.Task, error) {
		updated := model.UpdateTask(t, upd, now)
		if !model.ValidateTask(updated) {
			return model.Task{}, ErrInvalidTask
		}
		return updated, nil
	})
}

// EditText replaces the text of id.
func (s *TaskService) EditText(ctx context.Context, id, text string) (model.Task, error) {
	return s.Update(ctx, id, model.TaskUpdate{Text: &text})
}

// Delete removes id from the list.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.tasks, id)
	if i < 0 {
		return fmt.Errorf("delete %s: %w", id, ErrTaskNotFound)
	}
	next := slices.Delete(slices.Clone(s.tasks), i, i+1)
	s.commit(ctx, next)
	s.log.Debugw("task deleted", "id", id)
	return nil
}

// Move drags movedID onto targetID in the stored order. Unknown ids and
// self-drops leave everything untouched and report false.
func (s *TaskService) Move(ctx context.Context, movedID, targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, changed := Reorder(s.tasks, movedID, targetID)
	if !changed {
		return false
	}
	s.commit(ctx, next)
	s.log.Debugw("task moved", "id", movedID, "target", targetID)
	return true
}

// ReplaceOrder stores a list produced by a drag session. Tasks must be the
// same set as the current list; anything else is ignored.
func (s *TaskService) ReplaceOrder(ctx context.Context, ordered []model.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !sameIDs(s.tasks, ordered) {
		s.log.Warnw("ignoring reorder of a stale list", "have", len(s.tasks), "got", len(ordered))
		return false
	}
	s.commit(ctx, slices.Clone(ordered))
	return true
}

// Visible is the list the UI shows for view at now.
func (s *TaskService) Visible(view View, now time.Time) []model.Task {
	return view.Apply(s.Tasks(), now)
}

// Counts returns totals for the status filter tabs.
func (s *TaskService) Counts() TaskCounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := TaskCounts{All: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			c.Completed++
		}
	}
	c.Active = c.All - c.Completed
	return c
}

// Categories lists distinct categories in first-seen order.
func (s *TaskService) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	out := []string{}
	for _, t := range s.tasks {
		if !t.HasCategory() {
			continue
		}
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}

// Statistics computes the dashboard report over every stored task.
func (s *TaskService) Statistics(now time.Time) Statistics {
	return ComputeStatistics(s.Tasks(), now)
}

func (s *TaskService) replace(ctx context.Context, id string, fn func(model.Task, time.Time) (model.Task, error)) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.tasks, id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("update %s: %w", id, ErrTaskNotFound)
	}
	updated, err := fn(s.tasks[i], s.clock())
	if err != nil {
		return model.Task{}, fmt.Errorf("update %s: %w", id, err)
	}
	next := slices.Clone(s.tasks)
	next[i] = updated
	s.commit(ctx, next)
	return updated, nil
}

// commit swaps in next and writes it back. Caller holds mu.
func (s *TaskService) commit(ctx context.Context, next []model.Task) {
	s.tasks = next
	s.store.Save(ctx, slices.Clone(next))
}

func sameIDs(a, b []model.Task) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]int, len(a))
	for _, t := range a {
		ids[t.ID]++
	}
	for _, t := range b {
		if ids[t.ID] == 0 {
			return false
		}
		ids[t.ID]--
	}
	return true
}
