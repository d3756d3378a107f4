package cli

import (
	"errors"
	"time"

	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var tasks, columns, names, order, widths, filters, presets, all bool
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore selected state categories to their defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			prefs := model.ResetPrefs{
				Tasks:         tasks,
				CustomColumns: columns,
				ColumnNames:   names,
				ColumnOrder:   order,
				ColumnWidths:  widths,
				Filters:       filters,
				FilterPresets: presets,
			}
			if all {
				prefs = model.ResetPrefs{
					Tasks: true, CustomColumns: true, ColumnNames: true,
					ColumnOrder: true, ColumnWidths: true, Filters: true, FilterPresets: true,
				}
			}
			if prefs == (model.ResetPrefs{}) {
				// No explicit selection: fall back to the remembered one.
				prefs = db.ResetPrefs
			}
			if prefs == (model.ResetPrefs{}) {
				prefs = model.DefaultResetPrefs()
			}

			if !yes {
				return writeErr(cmd, errors.New("reset is destructive; re-run with --yes"))
			}

			backup, err := s.Backup(time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			mutate.Reset(db, prefs)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"reset":  prefs,
				"backup": backup,
			}})
		},
	}

	cmd.Flags().BoolVar(&tasks, "tasks", false, "Restore the current list's sample tasks")
	cmd.Flags().BoolVar(&columns, "columns", false, "Delete all custom columns and their data")
	cmd.Flags().BoolVar(&names, "names", false, "Restore default column names")
	cmd.Flags().BoolVar(&order, "order", false, "Restore the default column order")
	cmd.Flags().BoolVar(&widths, "widths", false, "Clear stored column widths")
	cmd.Flags().BoolVar(&filters, "filters", false, "Clear basic and advanced filters")
	cmd.Flags().BoolVar(&presets, "presets", false, "Delete saved presets")
	cmd.Flags().BoolVar(&all, "all", false, "Reset everything")
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
