package cli

import (
	"fmt"
	"os"
	"strings"

	"taskgrid-cli/internal/format"
	"taskgrid-cli/internal/store"
	"taskgrid-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskgrid",
		Short:        "Local task grid with typed columns, filters and presets",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive grid
  taskgrid

  # Scriptable commands
  taskgrid tasks list
  taskgrid tasks list --quick overdue
  taskgrid columns add "Budget" --type number

  # Move the whole grid in and out
  taskgrid import tasks.tsv --yes
  taskgrid export --csv
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive grid.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TASKGRID_DIR", ""), "Path to store dir (default: nearest .taskgrid up the tree, else ./.taskgrid)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TASKGRID_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newFiltersCmd(app))
	cmd.AddCommand(newPresetsCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(s, db)
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			if d, ok := store.DiscoverDir(wd); ok {
				dir = d
			}
		}
	}
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, store.Store{}, err
		}
		dir = d
	}
	app.Dir = dir

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
