package cli

import (
	"errors"
	"strings"

	"taskgrid-cli/internal/filter"
	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newFiltersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Filter commands (basic, advanced and quick)",
	}

	cmd.AddCommand(newFiltersShowCmd(app))
	cmd.AddCommand(newFiltersSearchCmd(app))
	cmd.AddCommand(newFiltersStatusCmd(app))
	cmd.AddCommand(newFiltersPriorityCmd(app))
	cmd.AddCommand(newFiltersAddCmd(app))
	cmd.AddCommand(newFiltersRemoveCmd(app))
	cmd.AddCommand(newFiltersLogicCmd(app))
	cmd.AddCommand(newFiltersClearCmd(app))
	cmd.AddCommand(newFiltersQuickCmd(app))
	cmd.AddCommand(newFiltersOperatorsCmd(app))

	return cmd
}

func newFiltersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active filter configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"settings": db.FilterSettings,
				"advanced": db.AdvancedFilters,
			}})
		},
	}
}

func newFiltersSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search [text]",
		Short: "Set the free-text search (no argument clears it)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			q := ""
			if len(args) == 1 {
				q = args[0]
			}
			mutate.SetSearchText(db, q)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.FilterSettings})
		},
	}
}

func newFiltersStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statuses [status...]",
		Short: "Select which statuses show (no arguments means all)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var f model.StatusFilters
			for _, a := range args {
				switch strings.ToLower(a) {
				case "all":
					f.All = true
				case strings.ToLower(model.StatusPending):
					f.Pending = true
				case strings.ToLower(model.StatusAssigned):
					f.Assigned = true
				case strings.ToLower(model.StatusCompleted):
					f.Completed = true
				case strings.ToLower(model.StatusBlocked):
					f.Blocked = true
				default:
					return writeErr(cmd, errors.New("unknown status: "+a))
				}
			}
			mutate.SetStatusFilters(db, f)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.FilterSettings.StatusFilters})
		},
	}
	return cmd
}

func newFiltersPriorityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "priority [value]",
		Short: "Show only one exact priority (no argument clears it)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			v := ""
			if len(args) == 1 {
				v = args[0]
			}
			mutate.SetPriorityFilter(db, v)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.FilterSettings})
		},
	}
}

func newFiltersAddCmd(app *App) *cobra.Command {
	var value string
	var value2 string

	cmd := &cobra.Command{
		Use:   "add <column-id> <operator>",
		Short: "Add an advanced filter predicate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.AddFilter(db, s, args[0], args[1], value, value2)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Predicate})
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Operand")
	cmd.Flags().StringVar(&value2, "value2", "", "Second operand (between only)")
	return cmd
}

func newFiltersRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <filter-id>",
		Short: "Remove one advanced filter predicate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.RemoveFilter(db, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.AdvancedFilters})
		},
	}
}

func newFiltersLogicCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logic <and|or>",
		Short: "Set how advanced predicates combine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			switch strings.ToLower(args[0]) {
			case "and":
				mutate.SetFilterLogic(db, model.LogicAnd)
			case "or":
				mutate.SetFilterLogic(db, model.LogicOr)
			default:
				return writeErr(cmd, errors.New("logic must be and or or"))
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.AdvancedFilters})
		},
	}
}

func newFiltersClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every advanced filter predicate",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			mutate.ClearFilters(db)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.AdvancedFilters})
		},
	}
}

func newFiltersQuickCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quick [id]",
		Short: "List quick filters, or toggle one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"available": filter.Available(db.AllColumns()),
					"active":    db.ActiveQuickFilter,
				}})
			}
			if err := mutate.ToggleQuickFilter(db, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"active": db.ActiveQuickFilter}})
		},
	}
}

func newFiltersOperatorsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "operators <column-id>",
		Short: "Show which operators a column accepts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			col, ok := db.FindColumn(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("column", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"column":    col.ID,
				"type":      col.Type,
				"operators": filter.OperatorsForType(col.Type),
			}})
		},
	}
}
