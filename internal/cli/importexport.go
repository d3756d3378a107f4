package cli

import (
	"errors"
	"os"
	"time"

	"taskgrid-cli/internal/export"
	"taskgrid-cli/internal/filter"
	"taskgrid-cli/internal/tabimport"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import TSV/CSV, reconciling its header with the columns",
		Long: `Import replaces the current list's tasks with the file's rows.
Headers matching an existing column (by name or id) map onto it; unmatched
headers become new typed custom columns; existing custom columns the file
does not mention are deleted, and unmatched default columns are hidden.
Without --yes the computed plan is printed and nothing changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			header, rows, err := tabimport.Parse(string(raw))
			if err != nil {
				return writeErr(cmd, err)
			}
			plan, err := tabimport.Reconcile(db, header, rows)
			if err != nil {
				return writeErr(cmd, err)
			}

			summary := map[string]any{
				"rows":           len(plan.Tasks),
				"columnsCreated": plan.NewColumns,
				"columnsRemoved": plan.RemovedColumns,
				"columnsHidden":  plan.HiddenColumns,
				"columnsShown":   plan.UnhiddenColumns,
				"order":          plan.Order,
			}
			if !yes {
				summary["applied"] = false
				summary["hint"] = "re-run with --yes to replace the current list"
				return writeOut(cmd, app, map[string]any{"data": summary})
			}

			backup, err := s.Backup(time.Now())
			if err != nil {
				return writeErr(cmd, err)
			}
			if backup != "" {
				summary["backup"] = backup
			}
			if err := tabimport.Apply(db, plan); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			summary["applied"] = true
			return writeOut(cmd, app, map[string]any{"data": summary})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Apply the import (it replaces the current list's tasks)")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var csv bool
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the current list's visible grid as TSV or CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			list := db.CurrentList()
			if list == nil {
				return writeErr(cmd, errors.New("no current list"))
			}

			visible := db.VisibleColumns()
			tasks := filter.VisibleTasks(db, time.Now())

			ext := "tsv"
			text := export.TSV(visible, tasks)
			if csv {
				ext = "csv"
				text = export.CSV(visible, tasks)
			}

			path := out
			if path == "" {
				path = export.Filename(list.Name, ext, time.Now())
			}
			if path == "-" {
				_, err := cmd.OutOrStdout().Write([]byte(text))
				return err
			}
			if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"file": path,
				"rows": len(tasks),
			}})
		},
	}

	cmd.Flags().BoolVar(&csv, "csv", false, "Export CSV instead of TSV")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default: <list>_<date>.<ext>; - for stdout)")
	return cmd
}
