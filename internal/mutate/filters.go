package mutate

import (
	"strings"

	"taskgrid-cli/internal/filter"
	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/store"
)

type AddFilterResult struct {
	Predicate model.FilterPredicate
}

// AddFilter appends one advanced predicate, validating the operator against
// the column's current type. Operand-free operators drop whatever value was
// supplied.
func AddFilter(db *store.DB, s store.Store, columnID, operator, value, value2 string) (AddFilterResult, error) {
	col, ok := db.FindColumn(columnID)
	if !ok {
		return AddFilterResult{}, NotFoundError{Kind: "column", ID: columnID}
	}
	if !filter.ValidOperator(col.Type, operator) {
		return AddFilterResult{}, ErrBadOperator
	}

	value = strings.TrimSpace(value)
	value2 = strings.TrimSpace(value2)
	if !filter.RequiresValue(operator) {
		value, value2 = "", ""
	} else if value == "" {
		return AddFilterResult{}, ErrMissingValue
	}
	if filter.RequiresSecondValue(operator) && value2 == "" {
		return AddFilterResult{}, ErrMissingValue
	}
	if !filter.RequiresSecondValue(operator) {
		value2 = ""
	}

	p := model.FilterPredicate{
		ID:       s.NextID(db, "flt"),
		ColumnID: columnID,
		Operator: operator,
		Value:    value,
		Value2:   value2,
	}
	db.AdvancedFilters.Filters = append(db.AdvancedFilters.Filters, p)
	return AddFilterResult{Predicate: p}, nil
}

// RemoveFilter deletes one advanced predicate by id.
func RemoveFilter(db *store.DB, id string) error {
	for i, p := range db.AdvancedFilters.Filters {
		if p.ID == id {
			db.AdvancedFilters.Filters = append(db.AdvancedFilters.Filters[:i], db.AdvancedFilters.Filters[i+1:]...)
			return nil
		}
	}
	return NotFoundError{Kind: "filter", ID: id}
}

// SetFilterLogic switches the advanced layer between AND and OR.
func SetFilterLogic(db *store.DB, logic model.FilterLogic) {
	if logic != model.LogicOr {
		logic = model.LogicAnd
	}
	db.AdvancedFilters.Logic = logic
}

// ClearFilters drops every advanced predicate, keeping the logic mode.
func ClearFilters(db *store.DB) {
	db.AdvancedFilters.Filters = nil
}

// SetSearchText sets the free-text search of the basic layer.
func SetSearchText(db *store.DB, q string) {
	db.FilterSettings.SearchText = strings.TrimSpace(q)
}

// SetStatusFilters replaces the status multi-select. Selecting nothing falls
// back to "all".
func SetStatusFilters(db *store.DB, f model.StatusFilters) {
	if !f.All && !f.Pending && !f.Assigned && !f.Completed && !f.Blocked {
		f.All = true
	}
	if f.All {
		f = model.StatusFilters{All: true}
	}
	db.FilterSettings.StatusFilters = f
}

// SetPriorityFilter sets the exact-match priority filter; empty clears it.
func SetPriorityFilter(db *store.DB, v string) {
	db.FilterSettings.PriorityFilter = strings.TrimSpace(v)
}

// ToggleQuickFilter flips the named quick filter, enforcing at-most-one
// active. Unknown ids are rejected so a typo cannot silently filter nothing.
func ToggleQuickFilter(db *store.DB, id string) error {
	if _, ok := filter.Find(db.AllColumns(), id); !ok {
		return NotFoundError{Kind: "quick filter", ID: id}
	}
	db.ActiveQuickFilter = filter.Toggle(db.ActiveQuickFilter, id)
	return nil
}
