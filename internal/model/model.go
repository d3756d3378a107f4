package model

import "time"

type ColumnType string

const (
	TypeNumber   ColumnType = "number"
	TypeText     ColumnType = "text"
	TypeTextarea ColumnType = "textarea"
	TypeDate     ColumnType = "date"
	TypeSelect   ColumnType = "select"
	TypeEmail    ColumnType = "email"
	TypeURL      ColumnType = "url"
	TypeActions  ColumnType = "actions"
)

// Textual reports whether values of this type take part in free-text search.
func (t ColumnType) Textual() bool {
	switch t {
	case TypeText, TypeTextarea, TypeEmail, TypeURL, TypeSelect:
		return true
	}
	return false
}

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Column is a named, typed field definition shared by every list. The id is
// immutable once created; name and alignment stay mutable even for the
// protected defaults.
type Column struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      ColumnType `json:"type"`
	Required  bool       `json:"required"`
	Sortable  bool       `json:"sortable"`
	Visible   bool       `json:"visible"`
	Deletable bool       `json:"deletable"`
	Alignment Alignment  `json:"alignment"`
	Options   []string   `json:"options,omitempty"` // select columns only
}

// ColumnOverride is the persisted patch applied over a built-in default
// column: rename, realignment, and import-driven hiding. Nil Visible means
// "definition default".
type ColumnOverride struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Alignment Alignment `json:"alignment,omitempty"`
	Visible   *bool     `json:"visible,omitempty"`
}

// List holds one named, ordered set of tasks. Column definitions, order and
// filter state are global; only task data is per-list.
type List struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tasks       []Task    `json:"tasks"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FindTask locates a task by its stable sr identity.
func (l *List) FindTask(sr int) (*Task, bool) {
	for i := range l.Tasks {
		if l.Tasks[i].SR == sr {
			return &l.Tasks[i], true
		}
	}
	return nil, false
}

// NextSR returns the next free sr for a newly added task.
func (l *List) NextSR() int {
	max := 0
	for i := range l.Tasks {
		if l.Tasks[i].SR > max {
			max = l.Tasks[i].SR
		}
	}
	return max + 1
}

type FilterLogic string

const (
	LogicAnd FilterLogic = "AND"
	LogicOr  FilterLogic = "OR"
)

// FilterPredicate is one advanced-filter condition. Operator must belong to
// the operator set of the referenced column's type at creation time; Value2 is
// only meaningful for between.
type FilterPredicate struct {
	ID       string `json:"id"`
	ColumnID string `json:"columnId"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
	Value2   string `json:"value2,omitempty"`
}

// FilterPreset is a named snapshot of the advanced-filter configuration.
// Presets are never migrated or purged when columns change.
type FilterPreset struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Filters   []FilterPredicate `json:"filters"`
	Logic     FilterLogic       `json:"logic"`
	CreatedAt time.Time         `json:"createdAt"`
}

// StatusFilters is the status multi-select of the basic filter bar.
type StatusFilters struct {
	All       bool `json:"all"`
	Completed bool `json:"completed"`
	Assigned  bool `json:"assigned"`
	Pending   bool `json:"pending"`
	Blocked   bool `json:"blocked"`
}

// Selected returns the enabled status names, or nil when the multi-select is
// effectively "all".
func (f StatusFilters) Selected() []string {
	if f.All {
		return nil
	}
	var out []string
	if f.Pending {
		out = append(out, StatusPending)
	}
	if f.Assigned {
		out = append(out, StatusAssigned)
	}
	if f.Completed {
		out = append(out, StatusCompleted)
	}
	if f.Blocked {
		out = append(out, StatusBlocked)
	}
	return out
}

// FilterSettings is the basic (non-advanced) filter layer: free-text search,
// the status multi-select and the exact priority match.
type FilterSettings struct {
	SearchText     string        `json:"searchText"`
	StatusFilters  StatusFilters `json:"statusFilters"`
	PriorityFilter string        `json:"priorityFilter"`
}

// AdvancedFilters is the persisted advanced layer: predicate list + logic mode.
type AdvancedFilters struct {
	Filters []FilterPredicate `json:"filters"`
	Logic   FilterLogic       `json:"logic"`
}

// ResetPrefs records which categories a selective reset defaults to clearing.
type ResetPrefs struct {
	Tasks         bool `json:"tasks"`
	CustomColumns bool `json:"customColumns"`
	ColumnNames   bool `json:"columnNames"`
	ColumnOrder   bool `json:"columnOrder"`
	ColumnWidths  bool `json:"columnWidths"`
	Filters       bool `json:"filters"`
	FilterPresets bool `json:"filterPresets"`
}

func DefaultResetPrefs() ResetPrefs {
	return ResetPrefs{
		Tasks:         true,
		CustomColumns: true,
		ColumnNames:   true,
		ColumnOrder:   true,
		ColumnWidths:  true,
	}
}
