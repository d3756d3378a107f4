package tabimport

import (
	"strings"
	"testing"

	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/store"
)

func TestDetectType(t *testing.T) {
	cases := []struct {
		name   string
		values []string
		want   model.ColumnType
	}{
		{"all numeric", []string{"5", "7", "12.5"}, model.TypeNumber},
		{"numeric with blanks", []string{"", "5", "", "7"}, model.TypeNumber},
		{"dmy dates", []string{"01-06-2025", "15/06/2025", "20-06-25"}, model.TypeDate},
		{"iso dates", []string{"2025-06-01", "2025-06-15"}, model.TypeDate},
		{"dates with one outlier", []string{"01-06-2025", "02-06-2025", "03-06-2025", "04-06-2025", "soon"}, model.TypeDate},
		{"too many outliers", []string{"01-06-2025", "soon", "later"}, model.TypeText},
		{"emails", []string{"a@b.co", "x@y.org"}, model.TypeEmail},
		{"urls", []string{"https://a.co", "http://b.co", "www.c.co"}, model.TypeURL},
		{"long text", []string{strings.Repeat("x", 120)}, model.TypeTextarea},
		{"multiline", []string{"line one\nline two"}, model.TypeTextarea},
		{"plain", []string{"hello", "world"}, model.TypeText},
		{"no samples", nil, model.TypeText},
		{"only blanks", []string{"", "  "}, model.TypeText},
		// Numbers win over dates even when values could be either.
		{"numeric priority", []string{"20250601", "20250615"}, model.TypeNumber},
	}
	for _, c := range cases {
		if got := DetectType(c.values); got != c.want {
			t.Fatalf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestParse(t *testing.T) {
	header, rows, err := Parse("Task\tP\nDesign\t1\nShip\t2\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(header) != 2 || header[0] != "Task" {
		t.Fatalf("header: %v", header)
	}
	if len(rows) != 2 || rows[1][0] != "Ship" {
		t.Fatalf("rows: %v", rows)
	}

	header, rows, err = Parse("Task,P\n\"a, b\",1\n")
	if err != nil {
		t.Fatal(err)
	}
	if header[1] != "P" || rows[0][0] != "a, b" {
		t.Fatalf("csv: %v %v", header, rows)
	}

	if _, _, err := Parse("only a header"); err == nil {
		t.Fatal("header-only input must error")
	}
	if _, _, err := Parse(""); err == nil {
		t.Fatal("empty input must error")
	}
}

func TestReconcileCreatesTypedColumn(t *testing.T) {
	db := store.NewDB()
	plan, err := Reconcile(db, []string{"Task", "NewField"}, [][]string{{"a", "5"}, {"b", "7"}})
	if err != nil {
		t.Fatal(err)
	}

	if len(plan.NewColumns) != 1 {
		t.Fatalf("new columns: %+v", plan.NewColumns)
	}
	col := plan.NewColumns[0]
	if col.ID != "newfield" || col.Type != model.TypeNumber || col.Name != "NewField" {
		t.Fatalf("column: %+v", col)
	}

	if len(plan.Tasks) != 2 {
		t.Fatalf("tasks: %d", len(plan.Tasks))
	}
	if plan.Tasks[0].Custom["newfield"] != float64(5) {
		t.Fatalf("cell: %v", plan.Tasks[0].Custom)
	}
}

func TestReconcileHeaderMatching(t *testing.T) {
	db := store.NewDB()

	// Match by display name, case-insensitively; "P" is priority's name.
	plan, err := Reconcile(db,
		[]string{"TASK", "p", "dueDate"},
		[][]string{{"Design", "2", "01-07-2025"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.NewColumns) != 0 {
		t.Fatalf("unexpected new columns: %+v", plan.NewColumns)
	}
	got := plan.Tasks[0]
	if got.Title != "Design" || got.Priority != 2 || got.DueDate.String() != "01-07-2025" {
		t.Fatalf("task: %+v", got)
	}
}

func TestReconcileHidesAndDeletes(t *testing.T) {
	db := store.NewDB()
	db.CustomColumns = append(db.CustomColumns, model.Column{
		ID: "legacy", Name: "Legacy", Type: model.TypeText, Visible: true, Deletable: true,
	})
	db.EnsureColumnOrder()
	db.Lists[0].Tasks[0].Custom = map[string]any{"legacy": "old"}

	plan, err := Reconcile(db, []string{"Task"}, [][]string{{"only"}})
	if err != nil {
		t.Fatal(err)
	}

	removedIDs := map[string]bool{}
	for _, c := range plan.RemovedColumns {
		removedIDs[c.ID] = true
	}
	if !removedIDs["legacy"] {
		t.Fatalf("unmatched custom must be removed: %+v", plan.RemovedColumns)
	}

	hiddenIDs := map[string]bool{}
	for _, c := range plan.HiddenColumns {
		hiddenIDs[c.ID] = true
	}
	for _, id := range []string{model.ColSR, model.ColPriority, model.ColDueDate} {
		if !hiddenIDs[id] {
			t.Fatalf("unmatched default %s must be hidden: %+v", id, plan.HiddenColumns)
		}
	}
	if hiddenIDs[model.ColActions] {
		t.Fatal("actions is exempt from hiding")
	}

	if err := Apply(db, plan); err != nil {
		t.Fatal(err)
	}
	if len(db.CustomColumns) != 0 {
		t.Fatalf("registry: %+v", db.CustomColumns)
	}
	for _, task := range db.CurrentList().Tasks {
		if _, ok := task.Custom["legacy"]; ok {
			t.Fatal("removed column data must be stripped")
		}
	}
	col, _ := db.FindColumn(model.ColDueDate)
	if col.Visible {
		t.Fatal("unmatched default must end up hidden")
	}
	actions, _ := db.FindColumn(model.ColActions)
	if !actions.Visible {
		t.Fatal("actions must stay visible")
	}
}

func TestReconcileUnhidesMatchedDefault(t *testing.T) {
	db := store.NewDB()
	// An earlier import hid resource; a new header mentioning it re-shows it.
	hidden := false
	db.SetDefaultOverride(model.ColResource, func(ov *model.ColumnOverride) { ov.Visible = &hidden })
	if col, _ := db.FindColumn(model.ColResource); col.Visible {
		t.Fatal("fixture: resource should start hidden")
	}

	plan, err := Reconcile(db, []string{"Task", "Resource"}, [][]string{{"write", "Jay"}})
	if err != nil {
		t.Fatal(err)
	}

	unhiddenIDs := map[string]bool{}
	for _, c := range plan.UnhiddenColumns {
		unhiddenIDs[c.ID] = true
	}
	if !unhiddenIDs[model.ColResource] {
		t.Fatalf("matched hidden default must be re-shown: %+v", plan.UnhiddenColumns)
	}
	for _, c := range plan.HiddenColumns {
		if c.ID == model.ColResource {
			t.Fatal("matched default must not be hidden")
		}
	}
	for _, c := range plan.RemovedColumns {
		if c.ID == model.ColResource {
			t.Fatal("defaults are never removed")
		}
	}

	if err := Apply(db, plan); err != nil {
		t.Fatal(err)
	}
	col, _ := db.FindColumn(model.ColResource)
	if !col.Visible {
		t.Fatal("matched default must be visible after apply")
	}
	visible := map[string]bool{}
	for _, c := range db.VisibleColumns() {
		visible[c.ID] = true
	}
	if !visible[model.ColResource] {
		t.Fatal("imported cells must land in a visible column")
	}
	if got := db.CurrentList().Tasks[0].Resource; got != "Jay" {
		t.Fatalf("resource cell = %q", got)
	}
}

func TestReconcileOrderHeaderFirstActionsLast(t *testing.T) {
	db := store.NewDB()
	plan, err := Reconcile(db,
		[]string{"Due", "Task", "Extra"},
		[][]string{{"01-06-2025", "a", "x"}})
	if err != nil {
		t.Fatal(err)
	}

	if plan.Order[0] != model.ColDueDate || plan.Order[1] != model.ColTask || plan.Order[2] != "extra" {
		t.Fatalf("order: %v", plan.Order)
	}
	if plan.Order[len(plan.Order)-1] != model.ColActions {
		t.Fatalf("actions not last: %v", plan.Order)
	}
}

func TestReconcileSRDefaultsToBatchIndex(t *testing.T) {
	db := store.NewDB()
	plan, err := Reconcile(db,
		[]string{"Sr", "Task"},
		[][]string{{"", "a"}, {"9", "b"}, {"0", "c"}})
	if err != nil {
		t.Fatal(err)
	}
	if plan.Tasks[0].SR != 1 || plan.Tasks[1].SR != 9 || plan.Tasks[2].SR != 3 {
		t.Fatalf("srs: %d %d %d", plan.Tasks[0].SR, plan.Tasks[1].SR, plan.Tasks[2].SR)
	}
}

func TestReconcileKeepsUnparseableNumber(t *testing.T) {
	db := store.NewDB()
	plan, err := Reconcile(db, []string{"Task", "Count"},
		[][]string{{"a", "5"}, {"b", "6"}, {"c", "7"}, {"d", "8"}, {"e", "9"}, {"f", "TBD"}})
	if err != nil {
		t.Fatal(err)
	}
	// The first five samples were numeric, so the column is a number column;
	// the later unparseable cell keeps its original text instead of being
	// zeroed.
	if plan.NewColumns[0].Type != model.TypeNumber {
		t.Fatalf("type: %s", plan.NewColumns[0].Type)
	}
	if plan.Tasks[5].Custom["count"] != "TBD" {
		t.Fatalf("cell: %v", plan.Tasks[5].Custom)
	}
	if plan.Tasks[0].Custom["count"] != float64(5) {
		t.Fatalf("cell: %v", plan.Tasks[0].Custom)
	}
}

func TestReconcileAppendsSelectOption(t *testing.T) {
	db := store.NewDB()
	db.CustomColumns = append(db.CustomColumns, model.Column{
		ID: "team", Name: "Team", Type: model.TypeSelect, Visible: true, Deletable: true,
		Options: []string{"Dev"},
	})
	db.EnsureColumnOrder()

	plan, err := Reconcile(db, []string{"Task", "Team"}, [][]string{{"a", "Design"}})
	if err != nil {
		t.Fatal(err)
	}
	opts, ok := plan.UpdatedOptions["team"]
	if !ok {
		t.Fatalf("no option update: %+v", plan.UpdatedOptions)
	}
	if len(opts) != 2 || opts[1] != "Design" {
		t.Fatalf("options: %v", opts)
	}

	if err := Apply(db, plan); err != nil {
		t.Fatal(err)
	}
	col, _ := db.FindColumn("team")
	if len(col.Options) != 2 {
		t.Fatalf("options not applied: %v", col.Options)
	}
}

func TestApplyReplacesTasks(t *testing.T) {
	db := store.NewDB()
	plan, err := Reconcile(db, []string{"Task"}, [][]string{{"only row"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := Apply(db, plan); err != nil {
		t.Fatal(err)
	}
	list := db.CurrentList()
	if len(list.Tasks) != 1 || list.Tasks[0].Title != "only row" {
		t.Fatalf("tasks: %+v", list.Tasks)
	}
}

func TestDetectWordDates(t *testing.T) {
	if got := DetectType([]string{"1 June 2025", "15 Jun 2025"}); got != model.TypeDate {
		t.Fatalf("got %s", got)
	}
}
