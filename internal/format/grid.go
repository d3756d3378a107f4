package format

import (
	"io"
	"strings"
	"text/tabwriter"

	"taskgrid-cli/internal/model"
)

// Grid is a task table ready for column-aligned text rendering.
type Grid struct {
	Columns []model.Column
	Tasks   []model.Task
}

// WriteGrid renders tasks as an aligned text table, one row per task, in
// column order. Multiline cells are flattened so rows stay one line each.
func WriteGrid(w io.Writer, g Grid) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := make([]string, 0, len(g.Columns))
	for _, c := range g.Columns {
		header = append(header, strings.ToUpper(c.Name))
	}
	if _, err := io.WriteString(tw, strings.Join(header, "\t")+"\n"); err != nil {
		return err
	}

	for i := range g.Tasks {
		cells := make([]string, 0, len(g.Columns))
		for _, c := range g.Columns {
			cells = append(cells, oneLine(g.Tasks[i].ValueString(c.ID)))
		}
		if _, err := io.WriteString(tw, strings.Join(cells, "\t")+"\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
