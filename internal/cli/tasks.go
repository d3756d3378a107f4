package cli

import (
	"strconv"
	"time"

	"taskgrid-cli/internal/filter"
	"taskgrid-cli/internal/format"
	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/mutate"
	"taskgrid-cli/internal/sorting"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands (on the current list)",
	}

	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksSetCmd(app))
	cmd.AddCommand(newTasksStatusCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))

	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var sortBy string
	var desc bool
	var all bool
	var quick string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the current list's tasks through the active filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if quick != "" {
				if err := mutate.ToggleQuickFilter(db, quick); err != nil {
					return writeErr(cmd, err)
				}
			}

			var tasks []model.Task
			if all {
				list := db.CurrentList()
				tasks = make([]model.Task, len(list.Tasks))
				for i := range list.Tasks {
					tasks[i] = list.Tasks[i].Clone()
				}
			} else {
				tasks = filter.VisibleTasks(db, time.Now())
			}

			if sortBy != "" {
				col, ok := db.FindColumn(sortBy)
				if !ok {
					return writeErr(cmd, errNotFound("column", sortBy))
				}
				dir := sorting.Asc
				if desc {
					dir = sorting.Desc
				}
				sorting.Tasks(tasks, col, dir)
			}

			if app.Format == "table" {
				return writeOut(cmd, app, format.Grid{Columns: db.VisibleColumns(), Tasks: tasks})
			}
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort", "", "Column id to sort by")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().BoolVar(&all, "all", false, "Ignore filters and show every task")
	cmd.Flags().StringVar(&quick, "quick", "", "Apply a quick filter for this invocation (overdue|thisWeek|noDeadline|highPriority|unassigned)")
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var title string
	var priority int
	var resource string
	var status string
	var due string
	var remarks string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to the current list",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.AddTask(db)
			if err != nil {
				return writeErr(cmd, err)
			}
			sr := res.Task.SR

			sets := []struct {
				col, val string
				changed  bool
			}{
				{model.ColTask, title, title != ""},
				{model.ColPriority, strconv.Itoa(priority), cmd.Flags().Changed("priority")},
				{model.ColResource, resource, resource != ""},
				{model.ColStatus, status, status != ""},
				{model.ColDueDate, due, due != ""},
				{model.ColRemarks, remarks, remarks != ""},
			}
			for _, sc := range sets {
				if !sc.changed {
					continue
				}
				if err := mutate.EditTask(db, sr, sc.col, sc.val); err != nil {
					return writeErr(cmd, err)
				}
			}

			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Task})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority (lower is more urgent)")
	cmd.Flags().StringVar(&resource, "resource", "", "Assigned resource")
	cmd.Flags().StringVar(&status, "status", "", "Status (Pending|Assigned|Completed|Blocked)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (DD-MM-YYYY)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "Remarks")
	return cmd
}

func newTasksSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <sr> <column-id> <value>",
		Short: "Edit one cell, coerced per the column's type",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sr, err := strconv.Atoi(args[0])
			if err != nil {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			if err := mutate.EditTask(db, sr, args[1], args[2]); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			t, _ := db.CurrentList().FindTask(sr)
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newTasksStatusCmd(app *App) *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "status <sr>",
		Short: "Cycle a task's status, or set it with --set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sr, err := strconv.Atoi(args[0])
			if err != nil {
				return writeErr(cmd, errNotFound("task", args[0]))
			}

			var status string
			if set != "" {
				if err := mutate.EditTask(db, sr, model.ColStatus, set); err != nil {
					return writeErr(cmd, err)
				}
				status = set
			} else {
				status, err = mutate.CycleStatus(db, sr)
				if err != nil {
					return writeErr(cmd, err)
				}
			}

			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"sr":     sr,
				"status": status,
			}})
		},
	}

	cmd.Flags().StringVar(&set, "set", "", "Status to set instead of cycling")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <sr>",
		Short: "Delete a task from the current list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sr, err := strconv.Atoi(args[0])
			if err != nil {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			if err := mutate.DeleteTask(db, sr); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": sr}})
		},
	}
}
