// Package tabimport reconciles pasted or file-loaded tabular data with the
// current column registry: headers are matched to existing columns,
// unmatched headers become new typed custom columns, and columns the import
// does not mention are hidden (defaults) or deleted (customs).
package tabimport

import (
	"encoding/csv"
	"errors"
	"strconv"
	"strings"

	"taskgrid-cli/internal/coerce"
	"taskgrid-cli/internal/dates"
	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/store"
)

var ErrEmptyImport = errors.New("import needs a header row and at least one data row")

// Plan is the computed outcome of an import, built without touching the
// store. The caller shows the summary, asks for confirmation and then calls
// Apply; import is always a full overwrite of the current list, never a
// merge.
type Plan struct {
	Tasks []model.Task

	NewColumns     []model.Column
	RemovedColumns []model.Column
	HiddenColumns  []model.Column
	// defaults hidden by an earlier import whose header matches this one
	UnhiddenColumns []model.Column
	Order           []string

	// select columns that picked up new options from imported cells
	UpdatedOptions map[string][]string
}

// Parse splits raw import text into header and data rows. Tab-delimited
// input (a spreadsheet paste) is recognized first; anything else goes
// through a CSV reader.
func Parse(text string) (header []string, rows [][]string, err error) {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil, nil, ErrEmptyImport
	}

	var records [][]string
	if strings.Contains(text, "\t") {
		for _, line := range strings.Split(text, "\n") {
			records = append(records, strings.Split(line, "\t"))
		}
	} else {
		r := csv.NewReader(strings.NewReader(text))
		r.FieldsPerRecord = -1
		records, err = r.ReadAll()
		if err != nil {
			return nil, nil, err
		}
	}
	if len(records) < 2 {
		return nil, nil, ErrEmptyImport
	}
	return records[0], records[1:], nil
}

// Reconcile maps the import's header onto the column registry and coerces
// every data row, returning the full plan for the caller to confirm.
func Reconcile(db *store.DB, header []string, rows [][]string) (*Plan, error) {
	if len(header) == 0 || len(rows) == 0 {
		return nil, ErrEmptyImport
	}

	existing := db.AllColumns()
	plan := &Plan{UpdatedOptions: map[string][]string{}}

	// Header cell -> column id, matching name or id case-insensitively.
	colIDs := make([]string, len(header))
	matched := map[string]bool{}
	cols := map[string]*model.Column{}
	for i := range existing {
		cols[existing[i].ID] = &existing[i]
	}

	var newCols []*model.Column
	for hi, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		id := matchColumn(existing, name)
		if id == "" {
			id = model.DeriveColumnID(name)
			if _, taken := cols[id]; !taken {
				col := &model.Column{
					ID:        id,
					Name:      name,
					Type:      DetectType(columnValues(rows, hi)),
					Sortable:  true,
					Visible:   true,
					Deletable: true,
					Alignment: model.AlignLeft,
				}
				newCols = append(newCols, col)
				cols[id] = col
			}
		}
		colIDs[hi] = id
		matched[id] = true
	}

	for _, c := range newCols {
		plan.NewColumns = append(plan.NewColumns, *c)
	}

	// A default column's visibility follows whether the header matches it:
	// matching re-shows one hidden by an earlier import, not matching hides
	// it. Unmatched customs are deleted. Actions is exempt and stays.
	for _, c := range existing {
		if c.ID == model.ColActions {
			continue
		}
		if matched[c.ID] {
			if model.IsDefaultColumnID(c.ID) && !c.Visible {
				plan.UnhiddenColumns = append(plan.UnhiddenColumns, c)
			}
			continue
		}
		if c.Deletable {
			plan.RemovedColumns = append(plan.RemovedColumns, c)
		} else if model.IsDefaultColumnID(c.ID) && c.Visible {
			plan.HiddenColumns = append(plan.HiddenColumns, c)
		}
	}

	plan.Order = buildOrder(db, colIDs, matched, plan)

	removed := map[string]bool{}
	for _, c := range plan.RemovedColumns {
		removed[c.ID] = true
	}

	for ri, row := range rows {
		t := model.Task{Status: model.StatusPending}
		for id, c := range cols {
			if c.Deletable && !removed[id] && !model.IsDefaultColumnID(id) {
				t.SetValue(id, coerce.DefaultValueForType(c.Type))
			}
		}
		for hi, id := range colIDs {
			if id == "" || hi >= len(row) {
				continue
			}
			setImportedCell(&t, cols[id], row[hi])
		}
		if t.SR == 0 {
			t.SR = ri + 1
		}
		plan.Tasks = append(plan.Tasks, t)
	}

	// Surface the option lists that grew while coercing select cells.
	for id, c := range cols {
		if c.Type == model.TypeSelect && !model.IsDefaultColumnID(id) && !isNewColumn(plan, id) {
			for _, orig := range db.CustomColumns {
				if orig.ID == id && len(c.Options) != len(orig.Options) {
					plan.UpdatedOptions[id] = append([]string(nil), c.Options...)
				}
			}
		}
	}
	return plan, nil
}

// Apply commits a confirmed plan: registry changes first, then the order,
// then the full row replacement on the current list.
func Apply(db *store.DB, plan *Plan) error {
	list := db.CurrentList()
	if list == nil {
		return errors.New("no current list")
	}

	for _, c := range plan.RemovedColumns {
		kept := db.CustomColumns[:0]
		for _, cc := range db.CustomColumns {
			if cc.ID != c.ID {
				kept = append(kept, cc)
			}
		}
		db.CustomColumns = kept
		delete(db.ColumnWidths, c.ID)
		for li := range db.Lists {
			for ti := range db.Lists[li].Tasks {
				db.Lists[li].Tasks[ti].DeleteValue(c.ID)
			}
		}
	}
	for _, c := range plan.HiddenColumns {
		hidden := false
		db.SetDefaultOverride(c.ID, func(ov *model.ColumnOverride) { ov.Visible = &hidden })
	}
	for _, c := range plan.UnhiddenColumns {
		visible := true
		db.SetDefaultOverride(c.ID, func(ov *model.ColumnOverride) { ov.Visible = &visible })
	}
	db.CustomColumns = append(db.CustomColumns, plan.NewColumns...)
	for id, opts := range plan.UpdatedOptions {
		for i := range db.CustomColumns {
			if db.CustomColumns[i].ID == id {
				db.CustomColumns[i].Options = append([]string(nil), opts...)
			}
		}
	}

	db.ColumnOrder = append([]string(nil), plan.Order...)
	db.EnsureColumnOrder()

	list.Tasks = make([]model.Task, len(plan.Tasks))
	for i := range plan.Tasks {
		list.Tasks[i] = plan.Tasks[i].Clone()
	}
	return nil
}

func matchColumn(cols []model.Column, name string) string {
	for _, c := range cols {
		if strings.EqualFold(c.Name, name) || strings.EqualFold(c.ID, name) {
			return c.ID
		}
	}
	return ""
}

func columnValues(rows [][]string, idx int) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if idx < len(row) {
			out = append(out, row[idx])
		}
	}
	return out
}

// buildOrder rebuilds the column order: import header order first, then any
// surviving visible columns the import did not mention, then actions last.
func buildOrder(db *store.DB, colIDs []string, matched map[string]bool, plan *Plan) []string {
	var order []string
	seen := map[string]bool{}
	for _, id := range colIDs {
		if id != "" && !seen[id] {
			order = append(order, id)
			seen[id] = true
		}
	}

	hidden := map[string]bool{}
	for _, c := range plan.HiddenColumns {
		hidden[c.ID] = true
	}
	removed := map[string]bool{}
	for _, c := range plan.RemovedColumns {
		removed[c.ID] = true
	}
	for _, c := range db.OrderedColumns() {
		if seen[c.ID] || removed[c.ID] || hidden[c.ID] || c.ID == model.ColActions {
			continue
		}
		if c.Visible {
			order = append(order, c.ID)
			seen[c.ID] = true
		}
	}
	return append(order, model.ColActions)
}

func setImportedCell(t *model.Task, col *model.Column, raw string) {
	raw = strings.TrimSpace(raw)
	switch col.ID {
	case model.ColSR:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			t.SR = int(f)
		}
	case model.ColTask:
		t.Title = raw
	case model.ColPriority:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			t.Priority = int(f)
		}
	case model.ColResource:
		t.Resource = raw
	case model.ColStatus:
		if raw != "" {
			t.Status = raw
		}
	case model.ColDueDate:
		if d, ok := dates.Parse(raw); ok {
			t.DueDate = d
		} else if d, ok := dates.ParseISO(raw); ok {
			t.DueDate = d
		}
	case model.ColRemarks:
		t.Remarks = raw
	case model.ColActions:
		// never imported
	default:
		t.SetValue(col.ID, coerce.ImportValue(col, raw))
	}
}

func isNewColumn(plan *Plan, id string) bool {
	for _, c := range plan.NewColumns {
		if c.ID == id {
			return true
		}
	}
	return false
}
