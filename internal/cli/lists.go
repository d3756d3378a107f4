package cli

import (
	"taskgrid-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List commands",
	}

	cmd.AddCommand(newListsListCmd(app))
	cmd.AddCommand(newListsCreateCmd(app))
	cmd.AddCommand(newListsUseCmd(app))
	cmd.AddCommand(newListsUpdateCmd(app))
	cmd.AddCommand(newListsDeleteCmd(app))

	return cmd
}

func newListsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			type row struct {
				ID          string `json:"id"`
				Name        string `json:"name"`
				Description string `json:"description,omitempty"`
				Tasks       int    `json:"tasks"`
				Current     bool   `json:"current"`
			}
			rows := make([]row, 0, len(db.Lists))
			for _, l := range db.Lists {
				rows = append(rows, row{
					ID: l.ID, Name: l.Name, Description: l.Description,
					Tasks: len(l.Tasks), Current: l.ID == db.CurrentListID,
				})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
}

func newListsCreateCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a list and switch to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.CreateList(db, s, args[0], description)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.List})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "List description")
	return cmd
}

func newListsUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id-or-name>",
		Short: "Switch the current list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			l, err := mutate.SwitchList(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": l})
		},
	}
}

func newListsUpdateCmd(app *App) *cobra.Command {
	var name string
	var description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a list or change its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var desc *string
			if cmd.Flags().Changed("description") {
				desc = &description
			}
			if err := mutate.UpdateList(db, args[0], name, desc); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			l, _ := db.FindList(args[0])
			return writeOut(cmd, app, map[string]any{"data": l})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	return cmd
}

func newListsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a list (the last one cannot be deleted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.DeleteList(db, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"deleted":     args[0],
				"currentList": db.CurrentListID,
			}})
		},
	}
}
