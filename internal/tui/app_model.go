package tui

import (
	"fmt"
	"strconv"
	"time"

	"taskgrid-cli/internal/export"
	"taskgrid-cli/internal/filter"
	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/mutate"
	"taskgrid-cli/internal/sorting"
	"taskgrid-cli/internal/store"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewGrid view = iota
	viewLists
	viewHelp
)

type appModel struct {
	store store.Store
	db    *store.DB

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	view view

	cursor int // selected row in the visible slice
	colIdx int // selected column in the visible slice, for sorting

	// Sort state lives in the session only, same as the quick-filter toggle.
	sortColumn string
	sortDir    sorting.Direction

	searching bool
	search    textinput.Model

	listsList list.Model

	statusMsg string
	err       error
}

func newAppModel(s store.Store, db *store.DB) appModel {
	ti := textinput.New()
	ti.Placeholder = "search tasks"
	ti.Prompt = "/ "
	ti.CharLimit = 200
	ti.SetValue(db.FilterSettings.SearchText)

	return appModel{
		store:   s,
		db:      db,
		view:    viewGrid,
		sortDir: sorting.Asc,
		search:  ti,
	}
}

func (m appModel) Init() tea.Cmd { return nil }

// visibleTasks runs the full filter pipeline and applies the session sort.
func (m *appModel) visibleTasks() []model.Task {
	tasks := filter.VisibleTasks(m.db, time.Now())
	if m.sortColumn != "" {
		if col, ok := m.db.FindColumn(m.sortColumn); ok {
			sorting.Tasks(tasks, col, m.sortDir)
		}
	}
	return tasks
}

func (m *appModel) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) save() {
	if err := m.store.Save(m.db); err != nil {
		m.err = err
		return
	}
	m.err = nil
}

type listEntry struct{ l model.List }

func (e listEntry) Title() string { return e.l.Name }
func (e listEntry) Description() string {
	if e.l.Description != "" {
		return e.l.Description
	}
	return fmt.Sprintf("%d tasks", len(e.l.Tasks))
}
func (e listEntry) FilterValue() string { return e.l.Name }

func (m *appModel) openListPicker() {
	items := make([]list.Item, 0, len(m.db.Lists))
	idx := 0
	for i, l := range m.db.Lists {
		if l.ID == m.db.CurrentListID {
			idx = i
		}
		items = append(items, listEntry{l: l})
	}
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}
	lm := list.New(items, list.NewDefaultDelegate(), w, h-2)
	lm.Title = "Switch list"
	lm.Select(idx)
	m.listsList = lm
	m.view = viewLists
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.seenWindowSize = true
		if m.view == viewLists {
			m.listsList.SetSize(msg.Width, msg.Height-2)
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch m.view {
		case viewLists:
			return m.updateLists(msg)
		case viewHelp:
			switch msg.String() {
			case "q", "esc", "?":
				m.view = viewGrid
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		mutate.SetSearchText(m.db, m.search.Value())
		m.save()
		m.searching = false
		m.search.Blur()
		m.cursor = 0
		return m, nil
	case "esc":
		m.search.SetValue(m.db.FilterSettings.SearchText)
		m.searching = false
		m.search.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m appModel) updateLists(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if e, ok := m.listsList.SelectedItem().(listEntry); ok {
			if _, err := mutate.SwitchList(m.db, e.l.ID); err != nil {
				m.err = err
			} else {
				m.save()
				m.statusMsg = "switched to " + e.l.Name
				m.cursor = 0
			}
		}
		m.view = viewGrid
		return m, nil
	case "esc":
		m.view = viewGrid
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.listsList, cmd = m.listsList.Update(msg)
	return m, cmd
}

func (m appModel) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.visibleTasks()
	m.statusMsg = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		m.cursor--
		m.clampCursor(len(tasks))
	case "down", "j":
		m.cursor++
		m.clampCursor(len(tasks))
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(tasks) - 1
		m.clampCursor(len(tasks))

	case "left", "h":
		if m.colIdx > 0 {
			m.colIdx--
		}
	case "right", "l":
		if m.colIdx < len(m.db.VisibleColumns())-1 {
			m.colIdx++
		}

	case "o", "enter":
		cols := m.db.VisibleColumns()
		if m.colIdx < len(cols) && cols[m.colIdx].Sortable {
			m.sortColumn, m.sortDir = sorting.Toggle(m.sortColumn, m.sortDir, cols[m.colIdx].ID)
			m.cursor = 0
		}
	case "O":
		m.sortColumn = ""
		m.sortDir = sorting.Asc

	case "s":
		if m.cursor < len(tasks) {
			next, err := mutate.CycleStatus(m.db, tasks[m.cursor].SR)
			if err != nil {
				m.err = err
			} else {
				m.save()
				m.statusMsg = fmt.Sprintf("sr %d → %s", tasks[m.cursor].SR, next)
			}
		}

	case "p":
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			next := (t.Priority + 1) % 4
			if err := mutate.EditTask(m.db, t.SR, model.ColPriority, strconv.Itoa(next)); err != nil {
				m.err = err
			} else {
				m.save()
				m.statusMsg = fmt.Sprintf("sr %d priority → %d", t.SR, next)
			}
		}

	case "y":
		cols := m.db.VisibleColumns()
		if err := clipboard.WriteAll(export.TSV(cols, tasks)); err != nil {
			m.err = err
		} else {
			m.statusMsg = fmt.Sprintf("copied %d rows as TSV", len(tasks))
		}

	case "a":
		res, err := mutate.AddTask(m.db)
		if err != nil {
			m.err = err
		} else {
			m.save()
			m.statusMsg = fmt.Sprintf("added sr %d", res.Task.SR)
		}

	case "d":
		if m.cursor < len(tasks) {
			if err := mutate.DeleteTask(m.db, tasks[m.cursor].SR); err != nil {
				m.err = err
			} else {
				m.save()
				m.clampCursor(len(tasks) - 1)
			}
		}

	case "1", "2", "3", "4", "5":
		avail := filter.Available(m.db.AllColumns())
		i := int(msg.String()[0] - '1')
		if i < len(avail) {
			if err := mutate.ToggleQuickFilter(m.db, avail[i].ID); err != nil {
				m.err = err
			}
			m.cursor = 0
		}

	case "x":
		mutate.ClearFilters(m.db)
		mutate.SetSearchText(m.db, "")
		m.db.ActiveQuickFilter = ""
		m.search.SetValue("")
		m.save()
		m.cursor = 0

	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "L":
		m.openListPicker()

	case "?":
		m.view = viewHelp
	}
	return m, nil
}
