package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:     "done <task-id> [task-id...]",
	Aliases: []string{"toggle"},
	Short:   "Toggle tasks between active and completed",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTasks(); err != nil {
			return err
		}
		ctx := cmdContext(cmd)
		for _, ref := range args {
			id, err := resolveID(ref)
			if err != nil {
				return err
			}
			task, err := TaskSvc.Toggle(ctx, id)
			if err != nil {
				return err
			}
			state := "active"
			if task.Completed {
				state = "completed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", shortID(task.ID), task.Text, state)
		}
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm <task-id> [task-id...]",
	Aliases: []string{"delete"},
	Short:   "Delete tasks",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTasks(); err != nil {
			return err
		}
		ctx := cmdContext(cmd)
		for _, ref := range args {
			id, err := resolveID(ref)
			if err != nil {
				return err
			}
			if err := TaskSvc.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", shortID(id))
		}
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <task-id> <target-id>",
	Short: "Move a task into another task's slot in the manual order",
	Long: `Move a task into the position currently held by the target task.
Tasks in between shift by one. View the result with 'todo list --manual'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTasks(); err != nil {
			return err
		}
		moved, err := resolveID(args[0])
		if err != nil {
			return err
		}
		target, err := resolveID(args[1])
		if err != nil {
			return err
		}
		if !TaskSvc.Move(cmdContext(cmd), moved, target) {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to move.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", shortID(moved), shortID(target))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(moveCmd)
}
