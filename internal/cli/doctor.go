package cli

import (
	"errors"

	"taskgrid-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the stored state for inconsistencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			report := mutate.Doctor(db)
			if err := writeOut(cmd, app, map[string]any{"data": report}); err != nil {
				return err
			}
			if report.HasErrors() {
				return errors.New("doctor found errors")
			}
			return nil
		},
	}
	return cmd
}
