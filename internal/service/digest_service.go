package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"todo-app/internal/model"
)

const (
	iconDefault = "🟢"
	iconDue     = "⏳"
	iconOverdue = "⚠️"
	iconDone    = "✅"
)

// Digest is a point-in-time summary of the task list.
type Digest struct {
	At      time.Time
	Stats   Statistics
	Pending []model.Task
}

// DigestService builds human-readable summaries for daily notifications.
type DigestService struct {
	tasks *TaskService
}

func NewDigestService(tasks *TaskService) *DigestService {
	return &DigestService{tasks: tasks}
}

// Build reloads the stored list and summarizes it as of now.
func (s *DigestService) Build(ctx context.Context, now time.Time) Digest {
	s.tasks.Load(ctx)
	return NewDigest(s.tasks.Tasks(), now)
}

// NewDigest summarizes tasks. Pending tasks are ordered by due date with
// undated ones last, newest first among those.
func NewDigest(tasks []model.Task, now time.Time) Digest {
	active := FilterTasks(tasks, Filter{Status: StatusActive}, now)
	byNewest := SortTasks(active, SortCreatedAt, Desc)
	return Digest{
		At:      now,
		Stats:   ComputeStatistics(tasks, now),
		Pending: SortTasks(byNewest, SortDueDate, Asc),
	}
}

// HTML renders the digest for Telegram's HTML parse mode.
func (d Digest) HTML() string {
	return d.render(markup{
		bold:   func(s string) string { return "<b>" + s + "</b>" },
		escape: html.EscapeString,
	})
}

// Text renders the digest for a terminal.
func (d Digest) Text() string {
	return d.render(markup{
		bold:   func(s string) string { return s },
		escape: func(s string) string { return s },
	})
}

type markup struct {
	bold   func(string) string
	escape func(string) string
}

func (d Digest) render(m markup) string {
	var b strings.Builder
	st := d.Stats

	b.WriteString(fmt.Sprintf("📋 %s\n", m.bold("Daily digest")))
	b.WriteString(fmt.Sprintf("🗓 %s\n\n", d.At.Format("2006-01-02")))

	b.WriteString(fmt.Sprintf("%s %d/%d done (%.0f%%)\n", iconDone, st.CompletedTasks, st.TotalTasks, st.CompletionRate))
	b.WriteString(fmt.Sprintf("🔥 streak %d day(s), best %d\n", st.CurrentStreak, st.LongestStreak))
	b.WriteString(fmt.Sprintf("📥 today: %d created, %d completed\n", st.TasksCreatedToday, st.TasksCompletedToday))
	b.WriteString(fmt.Sprintf("%s overdue %d · due today %d · this week %d\n\n",
		iconOverdue, st.OverdueTasksCount, st.DueTodayCount, st.DueThisWeekCount))

	b.WriteString(fmt.Sprintf("🔥 %s\n", m.bold("Open tasks")))
	if len(d.Pending) == 0 {
		b.WriteString("— nothing open\n")
	}
	for _, task := range d.Pending {
		b.WriteString(formatPending(task, d.At, m))
	}
	return strings.TrimSpace(b.String())
}

func formatPending(task model.Task, now time.Time, m markup) string {
	var sb strings.Builder
	today := model.DateOnly(now)

	icon := iconDefault
	var due time.Time
	if task.DueDate != nil {
		due = model.DateOnly(task.DueDate.In(now.Location()))
		switch {
		case due.Before(today):
			icon = iconOverdue
		case !due.After(today.AddDate(0, 0, 1)):
			icon = iconDue
		}
	}

	sb.WriteString(fmt.Sprintf("%s %s", icon, m.escape(strings.TrimSpace(task.Text))))
	if task.Priority == model.PriorityHigh {
		sb.WriteString(" ‼️")
	}
	if task.HasCategory() {
		sb.WriteString(fmt.Sprintf(" (%s)", m.escape(task.Category)))
	}

	if task.DueDate != nil {
		if due.Before(today) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s — %s", due.Format("2006-01-02"), m.bold("overdue")))
		} else {
			daysLeft := int(due.Sub(today).Hours()/24 + 0.5)
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · %d day(s) left", due.Format("2006-01-02"), daysLeft))
		}
	}

	sb.WriteByte('\n')
	return sb.String()
}
