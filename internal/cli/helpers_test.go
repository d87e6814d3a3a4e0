package cli

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"todo-app/internal/config"
	"todo-app/internal/model"
	"todo-app/internal/service"
)

var cliNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// memStore implements service.Storage in memory.
type memStore struct {
	tasks []model.Task
	saves int
}

func (s *memStore) Load(context.Context) []model.Task { return slices.Clone(s.tasks) }

func (s *memStore) Save(_ context.Context, tasks []model.Task) {
	s.tasks = slices.Clone(tasks)
	s.saves++
}

// setupCLI points the package globals at a fresh in-memory service and
// restores the previous values when the test ends.
func setupCLI(t *testing.T, seed ...model.Task) *memStore {
	t.Helper()
	origTasks, origDigest, origNotifier := TaskSvc, DigestSvc, Notifier
	origLoc, origCfg := Location, AppConfig
	t.Cleanup(func() {
		TaskSvc, DigestSvc, Notifier = origTasks, origDigest, origNotifier
		Location, AppConfig = origLoc, origCfg
	})

	store := &memStore{tasks: seed}
	clock := cliNow
	TaskSvc = service.NewTaskService(store, func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}, nil)
	TaskSvc.Load(context.Background())
	DigestSvc = service.NewDigestService(TaskSvc)
	Notifier = nil
	Location = time.UTC
	AppConfig = config.Config{}
	return store
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func addTask(t *testing.T, text string, input service.TaskInput) model.Task {
	t.Helper()
	input.Text = text
	task, err := TaskSvc.Add(context.Background(), input)
	if err != nil {
		t.Fatalf("add %q: %v", text, err)
	}
	return task
}

func texts(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Text
	}
	return out
}

// lineOrder returns the output line index of each needle, -1 when missing.
func lineOrder(out string, needles ...string) []int {
	lines := strings.Split(out, "\n")
	idx := make([]int, len(needles))
	for i, n := range needles {
		idx[i] = slices.IndexFunc(lines, func(l string) bool { return strings.Contains(l, n) })
	}
	return idx
}
