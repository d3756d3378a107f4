package mutate

import (
	"testing"

	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/store"
)

func dirtyDB(t *testing.T) (*store.DB, store.Store) {
	t.Helper()
	db := store.NewDB()
	s := store.Store{}
	if _, err := AddColumn(db, "Budget", model.TypeNumber, nil); err != nil {
		t.Fatal(err)
	}
	if err := RenameColumn(db, model.ColDueDate, "Deadline"); err != nil {
		t.Fatal(err)
	}
	if err := MoveColumn(db, model.ColRemarks, 0); err != nil {
		t.Fatal(err)
	}
	if err := SetColumnWidth(db, model.ColTask, "300"); err != nil {
		t.Fatal(err)
	}
	if _, err := AddFilter(db, s, model.ColTask, "contains", "x", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := SavePreset(db, s, "keepme"); err != nil {
		t.Fatal(err)
	}
	SetSearchText(db, "query")
	db.CurrentList().Tasks = db.CurrentList().Tasks[:2]
	return db, s
}

func TestResetSelective(t *testing.T) {
	db, _ := dirtyDB(t)

	Reset(db, model.ResetPrefs{Tasks: true, CustomColumns: true})

	if len(db.CurrentList().Tasks) != len(store.SeedTasks()) {
		t.Fatalf("tasks not restored: %d", len(db.CurrentList().Tasks))
	}
	if len(db.CustomColumns) != 0 {
		t.Fatalf("custom columns kept: %+v", db.CustomColumns)
	}
	for _, task := range db.CurrentList().Tasks {
		if _, ok := task.Custom["budget"]; ok {
			t.Fatal("custom cell kept")
		}
	}

	// Unselected categories survive.
	col, _ := db.FindColumn(model.ColDueDate)
	if col.Name != "Deadline" {
		t.Fatal("rename must survive a tasks-only reset")
	}
	if db.ColumnWidths[model.ColTask] != "300" {
		t.Fatal("widths must survive")
	}
	if len(db.AdvancedFilters.Filters) != 1 || len(db.Presets) != 1 {
		t.Fatal("filters and presets must survive")
	}
	if db.FilterSettings.SearchText != "query" {
		t.Fatal("search must survive")
	}
}

func TestResetEverything(t *testing.T) {
	db, _ := dirtyDB(t)

	Reset(db, model.ResetPrefs{
		Tasks: true, CustomColumns: true, ColumnNames: true,
		ColumnOrder: true, ColumnWidths: true, Filters: true, FilterPresets: true,
	})

	col, _ := db.FindColumn(model.ColDueDate)
	if col.Name != "Due" {
		t.Fatalf("name not restored: %q", col.Name)
	}
	if db.ColumnOrder[0] != model.ColSR || db.ColumnOrder[len(db.ColumnOrder)-1] != model.ColActions {
		t.Fatalf("order not restored: %v", db.ColumnOrder)
	}
	if len(db.ColumnWidths) != 0 {
		t.Fatalf("widths kept: %v", db.ColumnWidths)
	}
	if len(db.AdvancedFilters.Filters) != 0 || db.FilterSettings.SearchText != "" {
		t.Fatal("filters not cleared")
	}
	if !db.FilterSettings.StatusFilters.All {
		t.Fatal("status filters not restored")
	}
	if len(db.Presets) != 0 {
		t.Fatal("presets kept")
	}
}

func TestResetColumnNamesClearsWholeOverride(t *testing.T) {
	db := store.NewDB()
	hidden := false
	db.SetDefaultOverride(model.ColDueDate, func(ov *model.ColumnOverride) {
		ov.Name = "Deadline"
		ov.Alignment = model.AlignRight
		ov.Visible = &hidden
	})

	Reset(db, model.ResetPrefs{ColumnNames: true})

	col, _ := db.FindColumn(model.ColDueDate)
	if col.Name != "Due" {
		t.Fatalf("name not restored: %q", col.Name)
	}
	if col.Alignment != model.AlignCenter {
		t.Fatalf("alignment not restored: %q", col.Alignment)
	}
	if !col.Visible {
		t.Fatal("visibility not restored")
	}
}

func TestResetRemembersSelection(t *testing.T) {
	db := store.NewDB()
	prefs := model.ResetPrefs{Tasks: true}
	Reset(db, prefs)
	if db.ResetPrefs != prefs {
		t.Fatalf("prefs: %+v", db.ResetPrefs)
	}
}
