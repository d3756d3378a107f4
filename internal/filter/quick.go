package filter

import "taskgrid-cli/internal/model"

// QuickFilter is a synthesized one-click predicate. Quick filters are never
// persisted; they are derived from whichever columns currently exist, so
// hiding or deleting a column silently withdraws its quick filters.
type QuickFilter struct {
	ID        string
	Label     string
	Predicate model.FilterPredicate
}

// Quick filter IDs double as the toggle state stored on the session.
const (
	QuickOverdue      = "overdue"
	QuickThisWeek     = "thisWeek"
	QuickNoDeadline   = "noDeadline"
	QuickHighPriority = "highPriority"
	QuickUnassigned   = "unassigned"
)

// Available returns the quick filters unlocked by the currently visible
// columns, in a stable presentation order.
func Available(cols []model.Column) []QuickFilter {
	present := map[string]bool{}
	for _, c := range cols {
		if c.Visible {
			present[c.ID] = true
		}
	}

	var out []QuickFilter
	if present[model.ColDueDate] {
		out = append(out,
			QuickFilter{ID: QuickOverdue, Label: "Overdue",
				Predicate: model.FilterPredicate{ColumnID: model.ColDueDate, Operator: OpOverdue}},
			QuickFilter{ID: QuickThisWeek, Label: "Due This Week",
				Predicate: model.FilterPredicate{ColumnID: model.ColDueDate, Operator: OpThisWeek}},
			QuickFilter{ID: QuickNoDeadline, Label: "No Deadline",
				Predicate: model.FilterPredicate{ColumnID: model.ColDueDate, Operator: OpIsEmpty}},
		)
	}
	if present[model.ColPriority] {
		out = append(out, QuickFilter{ID: QuickHighPriority, Label: "High Priority",
			Predicate: model.FilterPredicate{ColumnID: model.ColPriority, Operator: OpBetween, Value: "0", Value2: "3"}})
	}
	if present[model.ColResource] {
		out = append(out, QuickFilter{ID: QuickUnassigned, Label: "Unassigned",
			Predicate: model.FilterPredicate{ColumnID: model.ColResource, Operator: OpIsEmpty}})
	}
	return out
}

// Find resolves an active quick-filter id against the current columns. A
// stale id (its column was hidden or deleted since activation) resolves to
// nothing and the filter stops applying.
func Find(cols []model.Column, id string) (QuickFilter, bool) {
	for _, q := range Available(cols) {
		if q.ID == id {
			return q, true
		}
	}
	return QuickFilter{}, false
}

// Toggle implements the at-most-one-active rule: picking the active quick
// filter again turns it off.
func Toggle(active, picked string) string {
	if active == picked {
		return ""
	}
	return picked
}
