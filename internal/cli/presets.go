package cli

import (
	"taskgrid-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newPresetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Saved filter preset commands",
	}

	cmd.AddCommand(newPresetsListCmd(app))
	cmd.AddCommand(newPresetsSaveCmd(app))
	cmd.AddCommand(newPresetsLoadCmd(app))
	cmd.AddCommand(newPresetsDeleteCmd(app))

	return cmd
}

func newPresetsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show saved presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.Presets})
		},
	}
}

func newPresetsSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save the active advanced filters under a name (overwrites)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SavePreset(db, s, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"preset":      res.Preset,
				"overwritten": res.Overwritten,
			}})
		},
	}
}

func newPresetsLoadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "load <id-or-name>",
		Short: "Replace the active advanced filters with a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := mutate.LoadPreset(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}

func newPresetsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id-or-name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.DeletePreset(db, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}
}
