package filter

import (
	"strings"

	"taskgrid-cli/internal/model"
)

// MatchesSearch is the free-text layer: case-insensitive substring match
// ORed across the default string fields and every textual custom column.
// An empty query matches everything.
func MatchesSearch(t *model.Task, customCols []model.Column, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{t.Title, t.Resource, t.Remarks} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, c := range customCols {
		if !c.Type.Textual() || model.IsDefaultColumnID(c.ID) {
			continue
		}
		if strings.Contains(strings.ToLower(t.ValueString(c.ID)), q) {
			return true
		}
	}
	return false
}
