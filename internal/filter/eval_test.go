package filter

import (
	"testing"
	"time"

	"taskgrid-cli/internal/dates"
	"taskgrid-cli/internal/model"
)

var testNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func testColumns() []model.Column {
	cols := model.DefaultColumns()
	cols = append(cols,
		model.Column{ID: "budget", Name: "Budget", Type: model.TypeNumber, Visible: true, Deletable: true},
		model.Column{ID: "contact", Name: "Contact", Type: model.TypeEmail, Visible: true, Deletable: true},
		model.Column{ID: "link", Name: "Link", Type: model.TypeURL, Visible: true, Deletable: true},
		model.Column{ID: "team", Name: "Team", Type: model.TypeSelect, Visible: true, Deletable: true, Options: []string{"Dev", "Design"}},
	)
	return cols
}

func dt(s string) dates.Date {
	d, ok := dates.Parse(s)
	if !ok {
		panic("bad test date " + s)
	}
	return d
}

func TestEvaluateText(t *testing.T) {
	cols := testColumns()
	task := &model.Task{Title: "Design Logo", Resource: "John"}

	cases := []struct {
		op, val string
		want    bool
	}{
		{OpContains, "logo", true},
		{OpContains, "LOGO", true},
		{OpContains, "missing", false},
		{OpEquals, "design logo", true},
		{OpEquals, "design", false},
		{OpStartsWith, "design", true},
		{OpStartsWith, "logo", false},
		{OpEndsWith, "logo", true},
		{OpIsEmpty, "", false},
		{OpIsNotEmpty, "", true},
	}
	for _, c := range cases {
		p := model.FilterPredicate{ColumnID: model.ColTask, Operator: c.op, Value: c.val}
		if got := Evaluate(task, p, cols, testNow); got != c.want {
			t.Fatalf("%s %q: got %v, want %v", c.op, c.val, got, c.want)
		}
	}
}

func TestEvaluateTextEmptyCellNeverSubstringMatches(t *testing.T) {
	cols := testColumns()
	task := &model.Task{Title: "x", Resource: ""}
	for _, op := range []string{OpContains, OpStartsWith, OpEndsWith} {
		p := model.FilterPredicate{ColumnID: model.ColResource, Operator: op, Value: ""}
		if Evaluate(task, p, cols, testNow) {
			t.Fatalf("%s on empty cell must be false", op)
		}
	}
}

func TestEvaluateNumber(t *testing.T) {
	cols := testColumns()

	cases := []struct {
		raw  any
		op   string
		val  string
		val2 string
		want bool
	}{
		{float64(5), OpEquals, "5", "", true},
		{float64(5), OpEquals, "5.0", "", true},
		{float64(5), OpEquals, "6", "", false},
		{"abc", OpEquals, "5", "", false},
		{float64(5), OpGreaterThan, "3", "", true},
		{float64(5), OpGreaterThan, "5", "", false},
		{float64(2), OpLessThan, "3", "", true},
		{"", OpGreaterThan, "0", "", false},
		{float64(0), OpBetween, "0", "3", true},
		{float64(3), OpBetween, "0", "3", true},
		{float64(4), OpBetween, "0", "3", false},
		{"", OpIsEmpty, "", "", true},
		{float64(0), OpIsEmpty, "", "", false},
	}
	for _, c := range cases {
		task := &model.Task{Custom: map[string]any{"budget": c.raw}}
		p := model.FilterPredicate{ColumnID: "budget", Operator: c.op, Value: c.val, Value2: c.val2}
		if got := Evaluate(task, p, cols, testNow); got != c.want {
			t.Fatalf("%v %s [%s,%s]: got %v, want %v", c.raw, c.op, c.val, c.val2, got, c.want)
		}
	}
}

func TestBetweenOnPrioritySubset(t *testing.T) {
	cols := testColumns()
	p := model.FilterPredicate{ColumnID: model.ColPriority, Operator: OpBetween, Value: "0", Value2: "3"}

	var kept []int
	for _, pri := range []int{0, 1, 2, 3, 4} {
		task := &model.Task{Priority: pri}
		if Evaluate(task, p, cols, testNow) {
			kept = append(kept, pri)
		}
	}
	want := []int{0, 1, 2, 3}
	if len(kept) != len(want) {
		t.Fatalf("kept %v, want %v", kept, want)
	}
	for i := range want {
		if kept[i] != want[i] {
			t.Fatalf("kept %v, want %v", kept, want)
		}
	}
}

func TestEvaluateDate(t *testing.T) {
	cols := testColumns()

	cases := []struct {
		due  string
		op   string
		val  string
		val2 string
		want bool
	}{
		{"15-06-2025", OpEquals, "2025-06-15", "", true},
		{"15-06-2025", OpEquals, "2025-06-16", "", false},
		{"01-06-2025", OpBefore, "2025-06-15", "", true},
		{"15-06-2025", OpBefore, "2025-06-15", "", false},
		{"20-06-2025", OpAfter, "2025-06-15", "", true},
		{"", OpBefore, "2025-06-15", "", false},
		{"16-06-2025", OpBetween, "2025-06-15", "2025-06-21", true},
		{"14-06-2025", OpBetween, "2025-06-15", "2025-06-21", false},
		// Week of 2025-06-15 runs Sunday the 15th through Saturday the 21st.
		{"15-06-2025", OpThisWeek, "", "", true},
		{"21-06-2025", OpThisWeek, "", "", true},
		{"14-06-2025", OpThisWeek, "", "", false},
		{"22-06-2025", OpThisWeek, "", "", false},
		{"30-06-2025", OpThisMonth, "", "", true},
		{"01-07-2025", OpThisMonth, "", "", false},
		{"", OpThisWeek, "", "", false},
		{"", OpIsEmpty, "", "", true},
	}
	for _, c := range cases {
		task := &model.Task{Status: model.StatusPending}
		if c.due != "" {
			task.DueDate = dt(c.due)
		}
		p := model.FilterPredicate{ColumnID: model.ColDueDate, Operator: c.op, Value: c.val, Value2: c.val2}
		if got := Evaluate(task, p, cols, testNow); got != c.want {
			t.Fatalf("due=%q %s %q: got %v, want %v", c.due, c.op, c.val, got, c.want)
		}
	}
}

func TestOverdue(t *testing.T) {
	cols := testColumns()
	p := model.FilterPredicate{ColumnID: model.ColDueDate, Operator: OpOverdue}

	overdue := &model.Task{DueDate: dt("01-06-2025"), Status: model.StatusPending}
	if !Evaluate(overdue, p, cols, testNow) {
		t.Fatal("past-due pending task must be overdue")
	}

	done := &model.Task{DueDate: dt("01-06-2025"), Status: model.StatusCompleted}
	if Evaluate(done, p, cols, testNow) {
		t.Fatal("completed task is never overdue")
	}

	blank := &model.Task{Status: model.StatusPending}
	if Evaluate(blank, p, cols, testNow) {
		t.Fatal("task without a due date is never overdue")
	}

	future := &model.Task{DueDate: dt("01-07-2025"), Status: model.StatusPending}
	if Evaluate(future, p, cols, testNow) {
		t.Fatal("future due date is not overdue")
	}
}

func TestInListNotInList(t *testing.T) {
	cols := testColumns()
	task := &model.Task{Custom: map[string]any{"team": "Dev"}}

	in := model.FilterPredicate{ColumnID: "team", Operator: OpInList, Value: " dev , design "}
	if !Evaluate(task, in, cols, testNow) {
		t.Fatal("membership is trimmed and case-insensitive")
	}
	in.Value = "design, qa"
	if Evaluate(task, in, cols, testNow) {
		t.Fatal("non-member must not match inList")
	}

	not := model.FilterPredicate{ColumnID: "team", Operator: OpNotInList, Value: "design, qa"}
	if !Evaluate(task, not, cols, testNow) {
		t.Fatal("non-member must match notInList")
	}
}

func TestIsValid(t *testing.T) {
	cols := testColumns()

	emails := []struct {
		v    string
		want bool
	}{
		{"a@b.co", true},
		{"user.name@example.org", true},
		{"nope", false},
		{"a b@c.d", false},
		{"a@b", false},
	}
	for _, c := range emails {
		task := &model.Task{Custom: map[string]any{"contact": c.v}}
		p := model.FilterPredicate{ColumnID: "contact", Operator: OpIsValid}
		if got := Evaluate(task, p, cols, testNow); got != c.want {
			t.Fatalf("email %q: got %v, want %v", c.v, got, c.want)
		}
	}

	urls := []struct {
		v    string
		want bool
	}{
		{"https://example.com/x", true},
		{"http://example.com", true},
		{"example.com", false},
		{"not a url", false},
	}
	for _, c := range urls {
		task := &model.Task{Custom: map[string]any{"link": c.v}}
		p := model.FilterPredicate{ColumnID: "link", Operator: OpIsValid}
		if got := Evaluate(task, p, cols, testNow); got != c.want {
			t.Fatalf("url %q: got %v, want %v", c.v, got, c.want)
		}
	}
}

func TestUnknownOperatorPasses(t *testing.T) {
	cols := testColumns()
	task := &model.Task{Title: "anything"}
	p := model.FilterPredicate{ColumnID: model.ColTask, Operator: "frobnicate"}
	if !Evaluate(task, p, cols, testNow) {
		t.Fatal("unknown operator must pass")
	}
}

func TestDeletedColumnPredicate(t *testing.T) {
	cols := testColumns()
	task := &model.Task{Title: "x"}

	// Predicates referencing a removed column see an empty text cell.
	gone := model.FilterPredicate{ColumnID: "removed", Operator: OpContains, Value: "x"}
	if Evaluate(task, gone, cols, testNow) {
		t.Fatal("contains against a missing column must be false")
	}
	empty := model.FilterPredicate{ColumnID: "removed", Operator: OpIsEmpty}
	if !Evaluate(task, empty, cols, testNow) {
		t.Fatal("isEmpty against a missing column must be true")
	}
}

func TestMatchesLogic(t *testing.T) {
	cols := testColumns()
	task := &model.Task{Title: "Design Logo", Priority: 4}

	hit := model.FilterPredicate{ColumnID: model.ColTask, Operator: OpContains, Value: "logo"}
	miss := model.FilterPredicate{ColumnID: model.ColPriority, Operator: OpBetween, Value: "0", Value2: "3"}
	preds := []model.FilterPredicate{hit, miss}

	if Matches(task, preds, model.LogicAnd, cols, testNow) {
		t.Fatal("AND with one failing predicate must fail")
	}
	if !Matches(task, preds, model.LogicOr, cols, testNow) {
		t.Fatal("OR with one passing predicate must pass")
	}
	if !Matches(task, nil, model.LogicAnd, cols, testNow) || !Matches(task, nil, model.LogicOr, cols, testNow) {
		t.Fatal("empty predicate list passes under both modes")
	}
}

func TestOperatorsForType(t *testing.T) {
	cases := []struct {
		typ   model.ColumnType
		count int
		has   string
	}{
		{model.TypeText, 6, OpEndsWith},
		{model.TypeTextarea, 6, OpContains},
		{model.TypeNumber, 6, OpBetween},
		{model.TypeDate, 9, OpOverdue},
		{model.TypeSelect, 5, OpNotInList},
		{model.TypeEmail, 7, OpIsValid},
		{model.TypeURL, 7, OpIsValid},
	}
	for _, c := range cases {
		ops := OperatorsForType(c.typ)
		if len(ops) != c.count {
			t.Fatalf("%s: %d operators, want %d", c.typ, len(ops), c.count)
		}
		if !ValidOperator(c.typ, c.has) {
			t.Fatalf("%s must accept %s", c.typ, c.has)
		}
	}
	if ValidOperator(model.TypeNumber, OpContains) {
		t.Fatal("number must not accept contains")
	}
	if RequiresValue(OpIsEmpty) || RequiresValue(OpOverdue) || RequiresValue(OpIsValid) {
		t.Fatal("operand-free operators must not require a value")
	}
	if !RequiresValue(OpContains) || !RequiresSecondValue(OpBetween) || RequiresSecondValue(OpEquals) {
		t.Fatal("operand rules wrong")
	}
}
