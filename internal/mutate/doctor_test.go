package mutate

import (
	"testing"

	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/store"
)

func issueCodes(r DoctorReport) []string {
	var codes []string
	for _, it := range r.Issues {
		codes = append(codes, it.Code)
	}
	return codes
}

func hasIssue(r DoctorReport, code string) bool {
	for _, it := range r.Issues {
		if it.Code == code {
			return true
		}
	}
	return false
}

func TestDoctorCleanState(t *testing.T) {
	r := Doctor(store.NewDB())
	if len(r.Issues) != 0 {
		t.Fatalf("fresh state should be clean, got %v", issueCodes(r))
	}
	if r.HasErrors() {
		t.Fatal("fresh state reports errors")
	}
}

func TestDoctorFindsDamage(t *testing.T) {
	db := store.NewDB()
	db.CurrentListID = "ghost"
	db.Lists[0].Tasks[1].SR = db.Lists[0].Tasks[0].SR
	db.ColumnOrder = append(db.ColumnOrder, "deleted-col")
	db.ColumnWidths = map[string]string{"other-gone": "12"}

	r := Doctor(db)
	for _, code := range []string{"current_list_missing", "duplicate_sr", "order_unknown_column", "width_unknown_column"} {
		if !hasIssue(r, code) {
			t.Fatalf("missing issue %q in %v", code, issueCodes(r))
		}
	}
	if !r.HasErrors() {
		t.Fatal("damaged state should report errors")
	}
}

func TestDoctorStaleFiltersWarnOnly(t *testing.T) {
	db := store.NewDB()
	db.AdvancedFilters.Filters = []model.FilterPredicate{
		{ID: "flt-1", ColumnID: "gone", Operator: "contains", Value: "x"},
		{ID: "flt-2", ColumnID: model.ColPriority, Operator: "contains", Value: "1"},
	}
	db.Presets = []model.FilterPreset{{
		ID: "preset-1", Name: "Old",
		Filters: []model.FilterPredicate{{ID: "flt-3", ColumnID: "also-gone", Operator: "equals", Value: "y"}},
	}}

	r := Doctor(db)
	if !hasIssue(r, "filter_unknown_column") {
		t.Fatalf("missing stale-filter warning in %v", issueCodes(r))
	}
	if !hasIssue(r, "filter_unknown_column_operator") {
		t.Fatalf("missing bad-operator warning in %v", issueCodes(r))
	}
	if !hasIssue(r, "preset_unknown_column") {
		t.Fatalf("missing stale-preset warning in %v", issueCodes(r))
	}
	// Stale filters are tolerated at runtime, so they never rise to errors.
	if r.HasErrors() {
		t.Fatalf("stale filters must stay warnings, got %v", issueCodes(r))
	}
}
