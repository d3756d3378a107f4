// Package sorting orders tasks by a single column, type-aware and stable.
package sorting

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"taskgrid-cli/internal/dates"
	"taskgrid-cli/internal/model"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Toggle returns the direction after clicking a column header: clicking the
// active column flips direction, any other column starts ascending.
func Toggle(activeColumn string, dir Direction, clicked string) (string, Direction) {
	if activeColumn == clicked {
		if dir == Asc {
			return clicked, Desc
		}
		return clicked, Asc
	}
	return clicked, Asc
}

// Tasks sorts in place by the given column. Equal keys keep their relative
// order, so sorting descending then ascending restores the original order
// among ties.
func Tasks(tasks []model.Task, col model.Column, dir Direction) {
	less := lessFunc(col)
	sort.SliceStable(tasks, func(i, j int) bool {
		if dir == Desc {
			return less(&tasks[j], &tasks[i])
		}
		return less(&tasks[i], &tasks[j])
	})
}

func lessFunc(col model.Column) func(a, b *model.Task) bool {
	switch col.Type {
	case model.TypeNumber:
		return func(a, b *model.Task) bool {
			return numKey(a, col.ID) < numKey(b, col.ID)
		}
	case model.TypeDate:
		return func(a, b *model.Task) bool {
			return dateKey(a, col.ID).Before(dateKey(b, col.ID))
		}
	default:
		return func(a, b *model.Task) bool {
			return strings.ToLower(a.ValueString(col.ID)) < strings.ToLower(b.ValueString(col.ID))
		}
	}
}

func numKey(t *model.Task, columnID string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(t.ValueString(columnID)), 64)
	if err != nil {
		return 0
	}
	return f
}

// dateKey maps blank/unparseable dates to the far-future sentinel so they sort
// last ascending.
func dateKey(t *model.Task, columnID string) time.Time {
	d, ok := dates.Parse(t.ValueString(columnID))
	if !ok || d.IsZero() {
		return dates.Sentinel().Time()
	}
	return d.Time()
}
