package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"todo-app/internal/model"
	"todo-app/internal/service"
)

var editFlags struct {
	priority string
	category string
	tags     string
	due      string
}

var editCmd = &cobra.Command{
	Use:   "edit <task-id> [new text...]",
	Short: "Change a task's text or attributes",
	Long: `Change a task. Any words after the id replace its text; blank text is
rejected and leaves the task untouched. Use --due none to clear a due date
and --tags "" to clear tags.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTasks(); err != nil {
			return err
		}
		id, err := resolveID(args[0])
		if err != nil {
			return err
		}
		upd, err := updateFromFlags(cmd)
		if err != nil {
			return err
		}
		if len(args) > 1 {
			text := strings.Join(args[1:], " ")
			upd.Text = &text
		}
		if isEmptyUpdate(upd) {
			return fmt.Errorf("nothing to change")
		}

		ctx := cmdContext(cmd)
		if upd.Text != nil {
			current, err := TaskSvc.Get(id)
			if err != nil {
				return err
			}
			var session service.EditSession
			session.Start(current.ID, current.Text)
			session.SetText(*upd.Text)
			var saveErr error
			if !session.Save(func(taskID, text string) {
				_, saveErr = TaskSvc.EditText(ctx, taskID, text)
			}) {
				return fmt.Errorf("task text must not be blank")
			}
			if saveErr != nil {
				return saveErr
			}
			upd.Text = nil
		}

		task, err := TaskSvc.Get(id)
		if !isEmptyUpdate(upd) {
			task, err = TaskSvc.Update(ctx, id, upd)
		}
		if errors.Is(err, service.ErrInvalidTask) {
			return fmt.Errorf("update rejected: %w", err)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTask(task, now()))
		return nil
	},
}

func updateFromFlags(cmd *cobra.Command) (model.TaskUpdate, error) {
	var upd model.TaskUpdate
	flags := cmd.Flags()
	if flags.Changed("priority") {
		p, ok := model.ParsePriority(editFlags.priority)
		if !ok {
			return upd, fmt.Errorf("unknown priority %q (want low, medium or high)", editFlags.priority)
		}
		upd.Priority = &p
	}
	if flags.Changed("category") {
		category := editFlags.category
		upd.Category = &category
	}
	if flags.Changed("tags") {
		upd.Tags = parseTags(editFlags.tags)
	}
	if flags.Changed("due") {
		if strings.EqualFold(strings.TrimSpace(editFlags.due), "none") || strings.TrimSpace(editFlags.due) == "" {
			upd.ClearDueDate = true
		} else {
			due, err := parseDueFlag(editFlags.due)
			if err != nil {
				return upd, err
			}
			upd.DueDate = due
		}
	}
	return upd, nil
}

func isEmptyUpdate(upd model.TaskUpdate) bool {
	return upd.Text == nil && upd.Priority == nil && upd.Category == nil &&
		upd.Tags == nil && upd.DueDate == nil && !upd.ClearDueDate
}

func init() {
	editCmd.Flags().StringVarP(&editFlags.priority, "priority", "p", "", "new priority")
	editCmd.Flags().StringVarP(&editFlags.category, "category", "c", "", "new category, empty to clear")
	editCmd.Flags().StringVarP(&editFlags.tags, "tags", "t", "", "replace tags, comma separated")
	editCmd.Flags().StringVarP(&editFlags.due, "due", "d", "", "new due date (YYYY-MM-DD) or none")
	rootCmd.AddCommand(editCmd)
}
