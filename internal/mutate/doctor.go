package mutate

import (
	"fmt"

	"taskgrid-cli/internal/filter"
	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/store"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor checks a loaded state for internal inconsistencies: dangling
// references, duplicate identities, filters pointing at columns that no
// longer exist. Warnings are survivable (the app treats them leniently at
// runtime); errors mean the document was damaged outside the app.
func Doctor(db *store.DB) DoctorReport {
	var issues []DoctorIssue
	errf := func(code, format string, args ...any) {
		issues = append(issues, DoctorIssue{Level: DoctorIssueLevelError, Code: code, Message: fmt.Sprintf(format, args...)})
	}
	warnf := func(code, format string, args ...any) {
		issues = append(issues, DoctorIssue{Level: DoctorIssueLevelWarn, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if len(db.Lists) == 0 {
		errf("no_lists", "state has no lists; a fresh store always has one")
	}
	if db.CurrentListID != "" {
		if _, ok := db.FindList(db.CurrentListID); !ok {
			errf("current_list_missing", "current list %q does not exist", db.CurrentListID)
		}
	}

	seenLists := map[string]bool{}
	for _, l := range db.Lists {
		if seenLists[l.ID] {
			errf("duplicate_list_id", "list id %q appears more than once", l.ID)
		}
		seenLists[l.ID] = true

		seenSR := map[int]bool{}
		for _, t := range l.Tasks {
			if t.SR <= 0 {
				errf("bad_sr", "list %q has a task with sr %d", l.ID, t.SR)
			}
			if seenSR[t.SR] {
				errf("duplicate_sr", "list %q has more than one task with sr %d", l.ID, t.SR)
			}
			seenSR[t.SR] = true
		}
	}

	cols := map[string]model.Column{}
	for _, c := range db.AllColumns() {
		if _, dup := cols[c.ID]; dup {
			errf("duplicate_column_id", "column id %q appears more than once", c.ID)
		}
		cols[c.ID] = c
	}
	for _, id := range db.ColumnOrder {
		if _, ok := cols[id]; !ok {
			warnf("order_unknown_column", "column order references unknown column %q", id)
		}
	}
	for id := range db.ColumnWidths {
		if _, ok := cols[id]; !ok {
			warnf("width_unknown_column", "column width set for unknown column %q", id)
		}
	}

	checkPredicates := func(code string, preds []model.FilterPredicate) {
		for _, p := range preds {
			c, ok := cols[p.ColumnID]
			if !ok {
				warnf(code, "filter %q references unknown column %q", p.ID, p.ColumnID)
				continue
			}
			if !filter.ValidOperator(c.Type, p.Operator) {
				warnf(code+"_operator", "filter %q uses operator %q, not valid for %s columns", p.ID, p.Operator, c.Type)
			}
		}
	}
	checkPredicates("filter_unknown_column", db.AdvancedFilters.Filters)
	for _, preset := range db.Presets {
		checkPredicates("preset_unknown_column", preset.Filters)
	}

	return DoctorReport{Issues: issues}
}
