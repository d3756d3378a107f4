package cli

import (
	"errors"
	"strconv"
	"strings"

	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/mutate"

	"github.com/spf13/cobra"
)

func newColumnsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Column registry commands",
	}

	cmd.AddCommand(newColumnsListCmd(app))
	cmd.AddCommand(newColumnsAddCmd(app))
	cmd.AddCommand(newColumnsRenameCmd(app))
	cmd.AddCommand(newColumnsAlignCmd(app))
	cmd.AddCommand(newColumnsVisibleCmd(app))
	cmd.AddCommand(newColumnsMoveCmd(app))
	cmd.AddCommand(newColumnsWidthCmd(app))
	cmd.AddCommand(newColumnsDeleteCmd(app))

	return cmd
}

func newColumnsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all columns in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.OrderedColumns()})
		},
	}
}

func newColumnsAddCmd(app *App) *cobra.Command {
	var typeName string
	var options []string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			typ, err := parseColumnType(typeName)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.AddColumn(db, args[0], typ, options)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.Column})
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "text", "Column type (text|textarea|number|date|select|email|url)")
	cmd.Flags().StringSliceVar(&options, "option", nil, "Allowed value for a select column (repeatable)")
	return cmd
}

func newColumnsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <new-name>",
		Short: "Rename a column (the id never changes)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.RenameColumn(db, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			col, _ := db.FindColumn(args[0])
			return writeOut(cmd, app, map[string]any{"data": col})
		},
	}
}

func newColumnsAlignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "align <id> <left|center|right>",
		Short: "Set a column's alignment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			al := model.Alignment(strings.ToLower(args[1]))
			switch al {
			case model.AlignLeft, model.AlignCenter, model.AlignRight:
			default:
				return writeErr(cmd, errors.New("alignment must be left, center or right"))
			}
			if err := mutate.SetColumnAlignment(db, args[0], al); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			col, _ := db.FindColumn(args[0])
			return writeOut(cmd, app, map[string]any{"data": col})
		},
	}
}

func newColumnsVisibleCmd(app *App) *cobra.Command {
	var hide bool

	cmd := &cobra.Command{
		Use:   "visible <id>",
		Short: "Show a column, or hide it with --hide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.SetColumnVisible(db, args[0], !hide); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			col, _ := db.FindColumn(args[0])
			return writeOut(cmd, app, map[string]any{"data": col})
		},
	}

	cmd.Flags().BoolVar(&hide, "hide", false, "Hide the column instead of showing it")
	return cmd
}

func newColumnsMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <index>",
		Short: "Move a column to a new position (actions stays last)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return writeErr(cmd, errors.New("index must be a number"))
			}
			if err := mutate.MoveColumn(db, args[0], idx); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.ColumnOrder})
		},
	}
}

func newColumnsWidthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "width <id> <width>",
		Short: "Set a column's display width (empty clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := mutate.SetColumnWidth(db, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": db.ColumnWidths})
		},
	}
}

func newColumnsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom column and its data everywhere",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.DeleteColumn(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": res.Column.ID}})
		},
	}
}

func parseColumnType(s string) (model.ColumnType, error) {
	t := model.ColumnType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case model.TypeText, model.TypeTextarea, model.TypeNumber, model.TypeDate,
		model.TypeSelect, model.TypeEmail, model.TypeURL:
		return t, nil
	}
	return "", errors.New("type must be one of text, textarea, number, date, select, email, url")
}
