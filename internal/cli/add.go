package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"todo-app/internal/service"
)

var addFlags struct {
	priority string
	category string
	tags     string
	due      string
}

var addCmd = &cobra.Command{
	Use:   "add <text...>",
	Short: "Add a task",
	Long: `Add a task to the end of the list.

Examples:
  todo add Buy milk
  todo add -p high -c home -t errand,weekly --due 2024-06-20 Pay rent`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTasks(); err != nil {
			return err
		}
		priority, err := parsePriorityFlag(addFlags.priority)
		if err != nil {
			return err
		}
		due, err := parseDueFlag(addFlags.due)
		if err != nil {
			return err
		}
		var tags []string
		if addFlags.tags != "" {
			tags = parseTags(addFlags.tags)
		}

		task, err := TaskSvc.Add(cmdContext(cmd), service.TaskInput{
			Text:     strings.Join(args, " "),
			Priority: priority,
			Category: addFlags.category,
			Tags:     tags,
			DueDate:  due,
		})
		if errors.Is(err, service.ErrInvalidTask) {
			return fmt.Errorf("task text must not be blank")
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", shortID(task.ID), task.Text)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addFlags.priority, "priority", "p", "", "priority: low, medium or high (default medium)")
	addCmd.Flags().StringVarP(&addFlags.category, "category", "c", "", "category name")
	addCmd.Flags().StringVarP(&addFlags.tags, "tags", "t", "", "comma separated tags")
	addCmd.Flags().StringVarP(&addFlags.due, "due", "d", "", "due date, YYYY-MM-DD")
	rootCmd.AddCommand(addCmd)
}
