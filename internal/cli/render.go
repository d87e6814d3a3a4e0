package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"todo-app/internal/model"
	"todo-app/internal/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dueSoonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	priorityHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	priorityMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	priorityLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func styleForPriority(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return priorityHigh
	case model.PriorityMedium:
		return priorityMedium
	case model.PriorityLow:
		return priorityLow
	default:
		return lipgloss.NewStyle()
	}
}

// renderTask formats one task as a single list line.
func renderTask(task model.Task, now time.Time) string {
	check := "[ ]"
	text := task.Text
	if task.Completed {
		check = "[x]"
		text = doneStyle.Render(text)
	}

	parts := []string{
		check,
		shortID(task.ID),
		styleForPriority(task.Priority).Render(fmt.Sprintf("%-6s", task.Priority)),
		text,
	}
	if task.HasCategory() {
		parts = append(parts, "@"+task.Category)
	}
	for _, tag := range task.Tags {
		parts = append(parts, tagStyle.Render("#"+tag))
	}
	if task.DueDate != nil {
		parts = append(parts, renderDue(*task.DueDate, task.Completed, now))
	}
	return strings.Join(parts, " ")
}

func renderDue(due time.Time, completed bool, now time.Time) string {
	day := model.DateOnly(due.In(now.Location()))
	today := model.DateOnly(now)
	label := "due " + day.Format(dateLayout)
	switch {
	case completed:
		return label
	case day.Before(today):
		return overdueStyle.Render(label + " (overdue)")
	case !day.After(today.AddDate(0, 0, 1)):
		return dueSoonStyle.Render(label)
	default:
		return label
	}
}

// renderStats lays the statistics report out as two bordered panels.
func renderStats(st service.Statistics) string {
	var overview strings.Builder
	overview.WriteString(headerStyle.Render("Overview"))
	overview.WriteString("\n")
	overview.WriteString(fmt.Sprintf("Total      %d\n", st.TotalTasks))
	overview.WriteString(fmt.Sprintf("Active     %d\n", st.ActiveTasks))
	overview.WriteString(fmt.Sprintf("Completed  %d (%.0f%%)\n", st.CompletedTasks, st.CompletionRate))
	overview.WriteString(fmt.Sprintf("Today      +%d / ✓%d\n", st.TasksCreatedToday, st.TasksCompletedToday))
	overview.WriteString(fmt.Sprintf("Per day    %.1f (30d)\n", st.AverageTasksPerDay))
	overview.WriteString(fmt.Sprintf("Streak     %d (best %d)", st.CurrentStreak, st.LongestStreak))

	var deadlines strings.Builder
	deadlines.WriteString(headerStyle.Render("Deadlines"))
	deadlines.WriteString("\n")
	deadlines.WriteString(fmt.Sprintf("Overdue    %d\n", st.OverdueTasksCount))
	deadlines.WriteString(fmt.Sprintf("Due today  %d\n", st.DueTodayCount))
	deadlines.WriteString(fmt.Sprintf("This week  %d\n", st.DueThisWeekCount))
	deadlines.WriteString(fmt.Sprintf("No date    %d\n\n", st.TasksWithoutDueDate))
	deadlines.WriteString(headerStyle.Render("Priority"))
	for _, p := range []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		deadlines.WriteString(fmt.Sprintf("\n%s %d/%d done",
			styleForPriority(p).Render(fmt.Sprintf("%-9s", p)),
			st.CompletedByPriority.Get(p), st.PriorityBreakdown.Get(p)))
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(overview.String()),
		panelStyle.Render(deadlines.String()))

	if len(st.CategoryBreakdown) == 0 {
		return panels
	}
	names := make([]string, 0, len(st.CategoryBreakdown))
	for name := range st.CategoryBreakdown {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := st.CategoryBreakdown[names[i]], st.CategoryBreakdown[names[j]]
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	var cats strings.Builder
	cats.WriteString(headerStyle.Render("Categories"))
	for _, name := range names {
		cats.WriteString(fmt.Sprintf("\n%-12s %d", name, st.CategoryBreakdown[name]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels, panelStyle.Render(cats.String()))
}
