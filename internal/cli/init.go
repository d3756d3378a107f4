package cli

import (
	"os"
	"path/filepath"

	"taskgrid-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a project-local store in ./.taskgrid",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.Dir
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return writeErr(cmd, err)
				}
				dir = filepath.Join(wd, ".taskgrid")
			}
			s := store.Store{Dir: dir}
			db, err := s.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"dir":   dir,
				"lists": len(db.Lists),
			}})
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show store location and state summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			current := db.CurrentList()
			tasks := 0
			for _, l := range db.Lists {
				tasks += len(l.Tasks)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"dir":           s.Dir,
				"lists":         len(db.Lists),
				"currentList":   current.Name,
				"tasks":         tasks,
				"customColumns": len(db.CustomColumns),
				"filters":       len(db.AdvancedFilters.Filters),
				"presets":       len(db.Presets),
			}})
		},
	}
}
