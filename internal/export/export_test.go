package export

import (
	"strings"
	"testing"
	"time"

	"taskgrid-cli/internal/model"
)

func exportFixture() ([]model.Column, []model.Task) {
	cols := []model.Column{
		{ID: model.ColTask, Name: "Task", Type: model.TypeTextarea},
		{ID: model.ColPriority, Name: "P", Type: model.TypeNumber},
		{ID: model.ColRemarks, Name: "Remarks", Type: model.TypeTextarea},
		{ID: "budget", Name: "Budget", Type: model.TypeNumber},
	}
	tasks := []model.Task{
		{SR: 1, Title: "Design", Priority: 1, Remarks: "line one\nline two"},
		{SR: 2, Title: `Say "hi", then ship`, Priority: 0, Custom: map[string]any{"budget": float64(250)}},
	}
	return cols, tasks
}

func TestTSV(t *testing.T) {
	cols, tasks := exportFixture()
	out := TSV(cols, tasks)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines: %d\n%s", len(lines), out)
	}
	if lines[0] != "Task\tP\tRemarks\tBudget" {
		t.Fatalf("header: %q", lines[0])
	}
	// The multiline remark was flattened; empty budget exported as 0.
	if lines[1] != "Design\t1\tline one line two\t0" {
		t.Fatalf("row: %q", lines[1])
	}
	if strings.Count(lines[2], "\t") != 3 {
		t.Fatalf("row: %q", lines[2])
	}
}

func TestCSV(t *testing.T) {
	cols, tasks := exportFixture()
	// Drop the multiline remark so every record is one physical line.
	tasks[0].Remarks = "plain"
	out := CSV(cols, tasks)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "Task,P,Remarks,Budget" {
		t.Fatalf("header: %q", lines[0])
	}
	if lines[1] != "Design,1,plain,0" {
		t.Fatalf("row: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], `"Say ""hi"", then ship",0,`) {
		t.Fatalf("quoting: %q", lines[2])
	}
	if !strings.HasSuffix(lines[2], ",250") {
		t.Fatalf("budget: %q", lines[2])
	}
}

func TestCSVMultilineCellStaysQuoted(t *testing.T) {
	cols := []model.Column{{ID: model.ColRemarks, Name: "Remarks", Type: model.TypeTextarea}}
	tasks := []model.Task{{Remarks: "a\nb"}}
	out := CSV(cols, tasks)
	if !strings.Contains(out, "\"a\nb\"") {
		t.Fatalf("got %q", out)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	if got := Filename("Main Tasks", "tsv", now); got != "main_tasks_2025-06-15.tsv" {
		t.Fatalf("got %q", got)
	}
	if got := Filename("  ", "csv", now); got != "tasks_2025-06-15.csv" {
		t.Fatalf("got %q", got)
	}
}
