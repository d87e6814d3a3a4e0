package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"todo-app/internal/model"
	"todo-app/internal/service"
)

const dateLayout = "2006-01-02"

var errNotInitialized = errors.New("task service not initialized")

func requireTasks() error {
	if TaskSvc == nil {
		return errNotInitialized
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func now() time.Time {
	return TaskSvc.Now().In(Location)
}

// resolveID accepts a full id or any unambiguous prefix of one.
func resolveID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty task id")
	}
	var matches []string
	for _, t := range TaskSvc.Tasks() {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task %q: %w", ref, service.ErrTaskNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func parsePriorityFlag(raw string) (model.Priority, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	p, ok := model.ParsePriority(raw)
	if !ok {
		return "", fmt.Errorf("unknown priority %q (want low, medium or high)", raw)
	}
	return p, nil
}

// parseDueFlag reads a YYYY-MM-DD date at local midnight.
func parseDueFlag(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	due, err := time.ParseInLocation(dateLayout, raw, Location)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q, expected YYYY-MM-DD", raw)
	}
	return &due, nil
}

// parseTags splits a comma separated list, dropping blanks.
func parseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
