package model

import (
	"encoding/json"
	"testing"

	"taskgrid-cli/internal/dates"
)

func TestTaskJSONFlattensCustomKeys(t *testing.T) {
	due, _ := dates.Parse("10-06-2025")
	task := Task{
		SR:       3,
		Title:    "Redesign list page",
		Priority: 1,
		Resource: "Jay",
		Status:   StatusAssigned,
		DueDate:  due,
		Custom:   map[string]any{"budget": float64(250), "owner_email": "jay@example.com"},
	}

	b, err := json.Marshal(task)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m["dueDate"] != "10-06-2025" {
		t.Fatalf("dueDate: got %v", m["dueDate"])
	}
	if m["budget"] != float64(250) {
		t.Fatalf("custom key not flattened: got %v", m["budget"])
	}
	if _, ok := m["Custom"]; ok {
		t.Fatal("Custom must not appear as a wire key")
	}

	var back Task
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.SR != 3 || back.Title != task.Title || back.Status != StatusAssigned {
		t.Fatalf("core round-trip: got %+v", back)
	}
	if back.DueDate != due {
		t.Fatalf("dueDate round-trip: got %v", back.DueDate)
	}
	if back.Custom["owner_email"] != "jay@example.com" {
		t.Fatalf("custom round-trip: got %v", back.Custom)
	}
}

func TestTaskUnmarshalToleratesStringNumbers(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"sr":"7","priority":"2","task":"x","status":"Pending"}`), &task); err != nil {
		t.Fatal(err)
	}
	if task.SR != 7 || task.Priority != 2 {
		t.Fatalf("got sr=%d priority=%d", task.SR, task.Priority)
	}
}

func TestTaskValueSetValue(t *testing.T) {
	var task Task
	task.SetValue(ColTask, "write docs")
	task.SetValue(ColPriority, float64(4))
	task.SetValue(ColDueDate, "01-07-2025")
	task.SetValue("est_hours", float64(8))

	if task.Value(ColTask) != "write docs" {
		t.Fatalf("task: %v", task.Value(ColTask))
	}
	if task.Priority != 4 {
		t.Fatalf("priority: %d", task.Priority)
	}
	if task.Value(ColDueDate) != "01-07-2025" {
		t.Fatalf("dueDate: %v", task.Value(ColDueDate))
	}
	if task.Value("est_hours") != float64(8) {
		t.Fatalf("custom: %v", task.Value("est_hours"))
	}
	if task.Value("missing") != nil {
		t.Fatal("missing custom key should be nil")
	}

	task.DeleteValue("est_hours")
	if task.Value("est_hours") != nil {
		t.Fatal("deleted custom key should be nil")
	}
}

func TestNextStatus(t *testing.T) {
	cases := map[string]string{
		StatusPending:   StatusAssigned,
		StatusAssigned:  StatusCompleted,
		StatusCompleted: StatusBlocked,
		StatusBlocked:   StatusPending,
		"weird":         StatusPending,
	}
	for in, want := range cases {
		if got := NextStatus(in); got != want {
			t.Fatalf("NextStatus(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestDeriveColumnID(t *testing.T) {
	cases := map[string]string{
		"Due Date 2":  "due_date_2",
		"Budget":      "budget",
		"Owner Email": "owner_email",
		"A  B":        "a_b",
	}
	for in, want := range cases {
		if got := DeriveColumnID(in); got != want {
			t.Fatalf("DeriveColumnID(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestValidColumnName(t *testing.T) {
	good := []string{"Budget", "Due Date 2", "a1"}
	bad := []string{"", "1abc", "-x", "name!", " leading"}
	for _, s := range good {
		if !ValidColumnName(s) {
			t.Fatalf("expected %q valid", s)
		}
	}
	for _, s := range bad {
		if ValidColumnName(s) {
			t.Fatalf("expected %q invalid", s)
		}
	}
}
