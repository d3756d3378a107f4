// Package tui is the interactive grid view: the current list rendered through
// the full filter pipeline, with keyboard-driven status cycling, quick
// filters, sorting and list switching. Every mutation is saved immediately,
// so quitting never loses work.
package tui

import (
	"taskgrid-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(s store.Store, db *store.DB) error {
	m := newAppModel(s, db)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
