package tui

import (
	"fmt"
	"strconv"
	"strings"

	"taskgrid-cli/internal/filter"
	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/sorting"

	xansi "github.com/charmbracelet/x/ansi"
)

const (
	minColWidth     = 4
	defaultColWidth = 14
)

// columnWidth resolves a column's display width in cells. Stored widths are
// free-form ("120px" from imported documents, or a plain number); anything
// unparsable falls back to the default.
func columnWidth(widths map[string]string, col model.Column) int {
	raw := strings.TrimSpace(strings.TrimSuffix(widths[col.ID], "px"))
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		// px widths come from the imported document model; 8px per cell is
		// close enough for a terminal.
		if strings.HasSuffix(widths[col.ID], "px") {
			n /= 8
		}
		if n < minColWidth {
			n = minColWidth
		}
		return n
	}
	switch col.ID {
	case model.ColSR:
		return 4
	case model.ColPriority:
		return 3
	case model.ColTask, model.ColRemarks:
		return 24
	}
	return defaultColWidth
}

func fit(s string, w int, align model.Alignment) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if xansi.StringWidth(s) > w {
		if w <= 1 {
			return xansi.Cut(s, 0, w)
		}
		return xansi.Cut(s, 0, w-1) + "…"
	}
	pad := w - xansi.StringWidth(s)
	switch align {
	case model.AlignRight:
		return strings.Repeat(" ", pad) + s
	case model.AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
	}
	return s + strings.Repeat(" ", pad)
}

func (m appModel) gridView() string {
	cols := m.db.VisibleColumns()
	tasks := m.visibleTasks()

	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n")

	// Header row.
	cells := make([]string, 0, len(cols))
	for i, c := range cols {
		w := columnWidth(m.db.ColumnWidths, c)
		label := c.Name
		if c.ID == m.sortColumn {
			if m.sortDir == sorting.Desc {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		cell := fit(label, w, c.Alignment)
		if i == m.colIdx {
			cell = headerSelStyle.Render(cell)
		} else {
			cell = headerStyle.Render(cell)
		}
		cells = append(cells, cell)
	}
	b.WriteString(strings.Join(cells, " "))
	b.WriteString("\n")

	maxRows := m.height - 5
	if maxRows < 1 || !m.seenWindowSize {
		maxRows = len(tasks)
	}
	top := 0
	if m.cursor >= maxRows {
		top = m.cursor - maxRows + 1
	}
	for i := top; i < len(tasks) && i < top+maxRows; i++ {
		t := tasks[i]
		cells = cells[:0]
		for _, c := range cols {
			w := columnWidth(m.db.ColumnWidths, c)
			cells = append(cells, fit(t.ValueString(c.ID), w, c.Alignment))
		}
		row := strings.Join(cells, " ")
		if i == m.cursor {
			row = selectedRowStyle.Render(row)
		} else if t.Status == model.StatusCompleted {
			row = completedRowStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	if len(tasks) == 0 {
		b.WriteString(dimStyle.Render("no tasks match the active filters"))
		b.WriteString("\n")
	}

	b.WriteString(m.footerLine(len(tasks)))
	return b.String()
}

func (m appModel) headerLine() string {
	name := "(no list)"
	if l := m.db.CurrentList(); l != nil {
		name = l.Name
	}
	line := titleStyle.Render(name)
	if m.searching {
		return line + "  " + m.search.View()
	}
	if q := m.db.FilterSettings.SearchText; q != "" {
		line += "  " + dimStyle.Render("search: "+q)
	}
	if m.db.ActiveQuickFilter != "" {
		if qf, ok := filter.Find(m.db.AllColumns(), m.db.ActiveQuickFilter); ok {
			line += "  " + quickStyle.Render(qf.Label)
		}
	}
	return line
}

func (m appModel) footerLine(shown int) string {
	if m.err != nil {
		return errStyle.Render("error: " + m.err.Error())
	}
	parts := []string{fmt.Sprintf("%d shown", shown)}
	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	}
	parts = append(parts, "? help")
	return dimStyle.Render(strings.Join(parts, "  ·  "))
}

func (m appModel) View() string {
	switch m.view {
	case viewLists:
		return m.listsList.View()
	case viewHelp:
		return m.helpView()
	}
	return m.gridView()
}
