package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# taskgrid keys

## Rows

- ` + "`j`/`k`" + ` move the row cursor, ` + "`g`/`G`" + ` jump to first/last
- ` + "`s`" + ` cycle the selected task's status, ` + "`p`" + ` its priority
- ` + "`a`" + ` add an empty task, ` + "`d`" + ` delete the selected task
- ` + "`y`" + ` copy the visible grid to the clipboard as TSV

## Filtering

- ` + "`/`" + ` edit the search text (enter applies, esc cancels)
- ` + "`1`–`5`" + ` toggle a quick filter (overdue, this week, …)
- ` + "`x`" + ` clear search, filters and the active quick filter

## Sorting

- ` + "`h`/`l`" + ` move the column cursor
- ` + "`o`" + ` or enter sorts by the selected column; again flips direction
- ` + "`O`" + ` drops the sort

## Lists

- ` + "`L`" + ` switch between task lists

` + "`q`" + ` quits. Everything is saved as you go.
`

var (
	helpMu sync.Mutex
	// Cache by wrap width. WithAutoStyle can block on terminal queries, so a
	// fixed style is used instead.
	helpRendered = map[int]string{}
)

func (m appModel) helpView() string {
	width := m.width
	if width < 20 || width > 100 {
		width = 80
	}

	helpMu.Lock()
	defer helpMu.Unlock()
	if s, ok := helpRendered[width]; ok {
		return s
	}

	out := helpMarkdown
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, rerr := r.Render(helpMarkdown); rerr == nil {
			out = strings.TrimRight(rendered, "\n")
		}
	}
	out += "\n" + dimStyle.Render("esc to go back")
	helpRendered[width] = out
	return out
}
