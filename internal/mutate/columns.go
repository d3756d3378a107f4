package mutate

import (
	"strings"

	"taskgrid-cli/internal/coerce"
	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/store"
)

type AddColumnResult struct {
	Column model.Column
}

// AddColumn creates a user-defined column and initializes the new cell with
// its type default in every task of every list, so row key sets stay aligned
// with the registry.
func AddColumn(db *store.DB, name string, typ model.ColumnType, options []string) (AddColumnResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return AddColumnResult{}, ErrEmptyName
	}
	if !model.ValidColumnName(name) {
		return AddColumnResult{}, ErrBadColumnName
	}
	if typ == model.TypeSelect && len(options) == 0 {
		return AddColumnResult{}, ErrMissingOptions
	}
	if nameInUse(db, name, "") {
		return AddColumnResult{}, ErrDuplicateName
	}

	id := model.DeriveColumnID(name)
	if _, ok := db.FindColumn(id); ok {
		return AddColumnResult{}, ErrDuplicateID
	}

	col := model.Column{
		ID:        id,
		Name:      name,
		Type:      typ,
		Sortable:  true,
		Visible:   true,
		Deletable: true,
		Alignment: model.AlignLeft,
		Options:   append([]string(nil), options...),
	}
	db.CustomColumns = append(db.CustomColumns, col)
	db.EnsureColumnOrder()

	def := coerce.DefaultValueForType(typ)
	for li := range db.Lists {
		for ti := range db.Lists[li].Tasks {
			db.Lists[li].Tasks[ti].SetValue(id, def)
		}
	}
	return AddColumnResult{Column: col}, nil
}

// RenameColumn renames any column, default or custom. Default columns keep
// their definition and record the new name as an override.
func RenameColumn(db *store.DB, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if !model.ValidColumnName(name) {
		return ErrBadColumnName
	}
	if _, ok := db.FindColumn(id); !ok {
		return NotFoundError{Kind: "column", ID: id}
	}
	if nameInUse(db, name, id) {
		return ErrDuplicateName
	}

	if model.IsDefaultColumnID(id) {
		db.SetDefaultOverride(id, func(ov *model.ColumnOverride) { ov.Name = name })
		return nil
	}
	for i := range db.CustomColumns {
		if db.CustomColumns[i].ID == id {
			db.CustomColumns[i].Name = name
			return nil
		}
	}
	return NotFoundError{Kind: "column", ID: id}
}

// SetColumnAlignment adjusts the rendering alignment of any column.
func SetColumnAlignment(db *store.DB, id string, al model.Alignment) error {
	if _, ok := db.FindColumn(id); !ok {
		return NotFoundError{Kind: "column", ID: id}
	}
	if model.IsDefaultColumnID(id) {
		db.SetDefaultOverride(id, func(ov *model.ColumnOverride) { ov.Alignment = al })
		return nil
	}
	for i := range db.CustomColumns {
		if db.CustomColumns[i].ID == id {
			db.CustomColumns[i].Alignment = al
			return nil
		}
	}
	return NotFoundError{Kind: "column", ID: id}
}

// SetColumnVisible hides or shows a column. The actions column can never be
// hidden.
func SetColumnVisible(db *store.DB, id string, visible bool) error {
	if id == model.ColActions && !visible {
		return ErrNotDeletable
	}
	if _, ok := db.FindColumn(id); !ok {
		return NotFoundError{Kind: "column", ID: id}
	}
	if model.IsDefaultColumnID(id) {
		v := visible
		db.SetDefaultOverride(id, func(ov *model.ColumnOverride) { ov.Visible = &v })
		return nil
	}
	for i := range db.CustomColumns {
		if db.CustomColumns[i].ID == id {
			db.CustomColumns[i].Visible = visible
			return nil
		}
	}
	return NotFoundError{Kind: "column", ID: id}
}

type DeleteColumnResult struct {
	Column model.Column
}

// DeleteColumn removes a custom column everywhere it is referenced: the
// registry, the column order, stored widths and every task's cell for it.
// Default columns refuse; they can only be hidden.
func DeleteColumn(db *store.DB, id string) (DeleteColumnResult, error) {
	col, ok := db.FindColumn(id)
	if !ok {
		return DeleteColumnResult{}, NotFoundError{Kind: "column", ID: id}
	}
	if !col.Deletable {
		return DeleteColumnResult{}, ErrNotDeletable
	}

	kept := db.CustomColumns[:0]
	for _, c := range db.CustomColumns {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	db.CustomColumns = kept

	order := db.ColumnOrder[:0]
	for _, oid := range db.ColumnOrder {
		if oid != id {
			order = append(order, oid)
		}
	}
	db.ColumnOrder = order
	delete(db.ColumnWidths, id)

	for li := range db.Lists {
		for ti := range db.Lists[li].Tasks {
			db.Lists[li].Tasks[ti].DeleteValue(id)
		}
	}
	return DeleteColumnResult{Column: col}, nil
}

// MoveColumn splices a column to a new position in the order. The actions
// column is pinned last regardless of the requested index.
func MoveColumn(db *store.DB, id string, index int) error {
	if _, ok := db.FindColumn(id); !ok {
		return NotFoundError{Kind: "column", ID: id}
	}
	db.EnsureColumnOrder()

	order := make([]string, 0, len(db.ColumnOrder))
	for _, oid := range db.ColumnOrder {
		if oid != id {
			order = append(order, oid)
		}
	}
	if index < 0 {
		index = 0
	}
	if index > len(order) {
		index = len(order)
	}
	order = append(order[:index], append([]string{id}, order[index:]...)...)
	db.ColumnOrder = order
	db.EnsureColumnOrder()
	return nil
}

// SetColumnWidth stores a rendering width hint for a column.
func SetColumnWidth(db *store.DB, id, width string) error {
	if _, ok := db.FindColumn(id); !ok {
		return NotFoundError{Kind: "column", ID: id}
	}
	if db.ColumnWidths == nil {
		db.ColumnWidths = map[string]string{}
	}
	if strings.TrimSpace(width) == "" {
		delete(db.ColumnWidths, id)
		return nil
	}
	db.ColumnWidths[id] = width
	return nil
}

func nameInUse(db *store.DB, name, exceptID string) bool {
	for _, c := range db.AllColumns() {
		if c.ID != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
