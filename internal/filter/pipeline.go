package filter

import (
	"strconv"
	"time"

	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/store"
)

// MatchesAll runs one task through every filter layer: free-text search, the
// status multi-select, the exact priority match, the active quick filter and
// the advanced predicate set. The layers are independent AND stages; only
// the advanced set applies its own AND/OR mode internally.
func MatchesAll(db *store.DB, t *model.Task, now time.Time) bool {
	cols := db.AllColumns()

	if !MatchesSearch(t, cols, db.FilterSettings.SearchText) {
		return false
	}

	if selected := db.FilterSettings.StatusFilters.Selected(); selected != nil {
		ok := false
		for _, s := range selected {
			if t.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	if pf := db.FilterSettings.PriorityFilter; pf != "" {
		want, err := strconv.Atoi(pf)
		if err != nil || t.Priority != want {
			return false
		}
	}

	if db.ActiveQuickFilter != "" {
		if q, ok := Find(cols, db.ActiveQuickFilter); ok {
			if !Evaluate(t, q.Predicate, cols, now) {
				return false
			}
		}
	}

	return Matches(t, db.AdvancedFilters.Filters, db.AdvancedFilters.Logic, cols, now)
}

// VisibleTasks returns the current list's tasks that pass every filter
// layer, in stored order. The result holds copies.
func VisibleTasks(db *store.DB, now time.Time) []model.Task {
	list := db.CurrentList()
	if list == nil {
		return nil
	}
	out := make([]model.Task, 0, len(list.Tasks))
	for i := range list.Tasks {
		if MatchesAll(db, &list.Tasks[i], now) {
			out = append(out, list.Tasks[i].Clone())
		}
	}
	return out
}
