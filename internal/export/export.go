// Package export renders the visible grid as clipboard- and
// spreadsheet-friendly text.
package export

import (
	"fmt"
	"strings"
	"time"

	"taskgrid-cli/internal/model"
)

// TSV renders the visible columns of the given tasks as tab-separated text
// with a header row. Tabs and newlines inside cells become spaces so the
// paste target's row/column structure survives.
func TSV(cols []model.Column, tasks []model.Task) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte('\t')
		}
		b.WriteString(flatten(c.Name))
	}
	b.WriteByte('\n')
	for _, t := range tasks {
		for i, c := range cols {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(flatten(cellValue(&t, c)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// CSV renders the visible columns as comma-separated text with a header
// row. Cells containing a comma, quote or newline are wrapped in quotes
// with inner quotes doubled.
func CSV(cols []model.Column, tasks []model.Task) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(csvCell(c.Name))
	}
	b.WriteByte('\n')
	for _, t := range tasks {
		for i, c := range cols {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvCell(cellValue(&t, c)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Filename builds a dated export filename for a list.
func Filename(listName, ext string, now time.Time) string {
	name := strings.TrimSpace(listName)
	if name == "" {
		name = "tasks"
	}
	name = strings.ToLower(strings.Join(strings.Fields(name), "_"))
	return fmt.Sprintf("%s_%s.%s", name, now.Format("2006-01-02"), ext)
}

// cellValue renders one cell. Empty number cells export as 0 so spreadsheet
// formulas over the column keep working.
func cellValue(t *model.Task, c model.Column) string {
	s := t.ValueString(c.ID)
	if c.Type == model.TypeNumber && strings.TrimSpace(s) == "" {
		return "0"
	}
	return s
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func csvCell(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
