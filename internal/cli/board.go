package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"todo-app/internal/model"
	"todo-app/internal/service"
)

// boardModel shows the stored task order and lets the user rearrange it by
// picking a task up and dropping it on another one.
type boardModel struct {
	ctx    context.Context
	svc    *service.TaskService
	tasks  []model.Task
	cursor int
	drag   service.DragSession
	edit   service.EditSession
	status string
}

func newBoardModel(ctx context.Context, svc *service.TaskService) boardModel {
	m := boardModel{ctx: ctx, svc: svc, tasks: svc.Tasks()}
	m.drag.OnReorder = func(tasks []model.Task) {
		svc.ReplaceOrder(ctx, tasks)
	}
	return m
}

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) current() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *boardModel) refresh() {
	m.tasks = m.svc.Tasks()
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.edit.IsEditing() {
		return m.updateEditing(key), nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case " ":
		if m.drag.Dragging() {
			return m.drop(), nil
		}
		if task, ok := m.current(); ok {
			m.drag.Start(task.ID)
			m.status = fmt.Sprintf("moving %q, choose a slot and press enter", task.Text)
		}
	case "enter":
		if m.drag.Dragging() {
			return m.drop(), nil
		}
	case "esc":
		if m.drag.Dragging() {
			m.drag.Cancel()
			m.status = "move cancelled"
		}
	case "x":
		if task, ok := m.current(); ok && !m.drag.Dragging() {
			if _, err := m.svc.Toggle(m.ctx, task.ID); err != nil {
				m.status = err.Error()
			}
			m.refresh()
		}
	case "e":
		if task, ok := m.current(); ok && !m.drag.Dragging() {
			m.edit.Start(task.ID, task.Text)
			m.status = "editing, enter to save, esc to cancel"
		}
	}
	return m, nil
}

func (m boardModel) drop() boardModel {
	target, ok := m.current()
	if !ok {
		m.drag.Cancel()
		return m
	}
	moved := m.drag.ActiveID()
	tasks, changed := m.drag.End(m.tasks, target.ID)
	if !changed {
		m.status = "nothing moved"
		return m
	}
	m.tasks = tasks
	m.cursor = slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID == moved })
	m.status = "moved"
	return m
}

func (m boardModel) updateEditing(key tea.KeyMsg) boardModel {
	switch key.Type {
	case tea.KeyEnter:
		var saveErr error
		saved := m.edit.Save(func(id, text string) {
			_, saveErr = m.svc.EditText(m.ctx, id, text)
		})
		switch {
		case !saved:
			m.status = "text must not be blank"
		case saveErr != nil:
			m.status = saveErr.Error()
		default:
			m.status = "saved"
		}
		m.refresh()
	case tea.KeyEsc:
		m.edit.Cancel()
		m.status = "edit cancelled"
	case tea.KeyBackspace:
		runes := []rune(m.edit.Text())
		if len(runes) > 0 {
			m.edit.SetText(string(runes[:len(runes)-1]))
		}
	case tea.KeySpace:
		m.edit.SetText(m.edit.Text() + " ")
	case tea.KeyRunes:
		m.edit.SetText(m.edit.Text() + string(key.Runes))
	}
	return m
}

func (m boardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Tasks "))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString("  No tasks. Add one with 'todo add'.\n")
	}
	at := now()
	for i, task := range m.tasks {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		if task.ID == m.drag.ActiveID() {
			marker = "⇅ "
		}
		line := renderTask(task, at)
		if m.edit.IsEditingTask(task.ID) {
			line = fmt.Sprintf("[ ] %s %s▏", shortID(task.ID), m.edit.Text())
		}
		b.WriteString(marker + line + "\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ select · space pick up · enter drop · esc cancel · x toggle · e edit · q quit"))
	return b.String()
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive board for reordering and editing tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTasks(); err != nil {
			return err
		}
		ctx := cmdContext(cmd)
		p := tea.NewProgram(newBoardModel(ctx, TaskSvc), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
