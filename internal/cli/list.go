package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"todo-app/internal/repository"
	"todo-app/internal/service"
)

var listFlags struct {
	status   string
	priority string
	category string
	search   string
	tags     string
	due      string
	sortKey  string
	dir      string
	manual   bool
	json     bool
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks, filtered and sorted.

Filters are combined; --tags matches tasks sharing any listed tag.
--due accepts overdue, today or thisWeek. --sort accepts createdAt,
updatedAt, priority, dueDate or alphabetical. Completed tasks are always
listed after active ones. --manual shows the hand-arranged order instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTasks(); err != nil {
			return err
		}
		view, err := viewFromFlags()
		if err != nil {
			return err
		}

		at := now()
		tasks := TaskSvc.Visible(view, at)
		out := cmd.OutOrStdout()

		if listFlags.json {
			raw, err := repository.EncodeTasks(tasks)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, raw)
			return nil
		}

		counts := TaskSvc.Counts()
		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("All %d · Active %d · Completed %d", counts.All, counts.Active, counts.Completed)))
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks.")
			return nil
		}
		for _, t := range tasks {
			fmt.Fprintln(out, renderTask(t, at))
		}
		return nil
	},
}

func viewFromFlags() (service.View, error) {
	view := service.DefaultView()

	status, ok := service.ParseStatus(listFlags.status)
	if !ok {
		return view, fmt.Errorf("unknown status %q (want all, active or completed)", listFlags.status)
	}
	priority, err := parsePriorityFlag(listFlags.priority)
	if err != nil {
		return view, err
	}
	due, ok := service.ParseDueFilter(listFlags.due)
	if !ok {
		return view, fmt.Errorf("unknown due filter %q (want overdue, today or thisWeek)", listFlags.due)
	}
	view.Filter = service.Filter{
		Status:     status,
		Priority:   priority,
		Category:   strings.TrimSpace(listFlags.category),
		SearchText: listFlags.search,
		Due:        due,
	}
	if listFlags.tags != "" {
		view.Filter.Tags = parseTags(listFlags.tags)
	}

	if listFlags.manual {
		view.Manual = true
		return view, nil
	}
	if listFlags.sortKey != "" {
		key, ok := service.ParseSortKey(listFlags.sortKey)
		if !ok {
			return view, fmt.Errorf("unknown sort key %q", listFlags.sortKey)
		}
		view.SortKey = key
		view.Direction = service.DefaultDirection(key)
	}
	if listFlags.dir != "" {
		dir, ok := service.ParseDirection(listFlags.dir)
		if !ok {
			return view, fmt.Errorf("unknown direction %q (want asc or desc)", listFlags.dir)
		}
		view.Direction = dir
	}
	return view, nil
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listFlags.status, "status", "s", "all", "all, active or completed")
	f.StringVarP(&listFlags.priority, "priority", "p", "", "only this priority")
	f.StringVarP(&listFlags.category, "category", "c", "", "only this category")
	f.StringVarP(&listFlags.search, "search", "q", "", "case-insensitive text search")
	f.StringVarP(&listFlags.tags, "tags", "t", "", "comma separated tags, any match")
	f.StringVarP(&listFlags.due, "due", "d", "", "overdue, today or thisWeek")
	f.StringVar(&listFlags.sortKey, "sort", "", "sort key (default createdAt)")
	f.StringVar(&listFlags.dir, "dir", "", "asc or desc (default depends on the key)")
	f.BoolVar(&listFlags.manual, "manual", false, "show the hand-arranged order")
	f.BoolVar(&listFlags.json, "json", false, "print the tasks as stored JSON")
	rootCmd.AddCommand(listCmd)
}
