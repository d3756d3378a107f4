package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"taskgrid-cli/internal/model"
)

const dbFileName = "db.json"

// DB is the whole application state: every list, the global column registry,
// column order, filter state and presets. All mutations happen on this struct
// in memory; Save persists the entire document in one transaction.
type DB struct {
	Version       int    `json:"version"`
	CurrentListID string `json:"currentListId,omitempty"`

	Lists            []model.List           `json:"lists"`
	CustomColumns    []model.Column         `json:"customColumns"`
	DefaultOverrides []model.ColumnOverride `json:"defaultOverrides,omitempty"`
	ColumnOrder      []string               `json:"columnOrder"`
	ColumnWidths     map[string]string      `json:"columnWidths,omitempty"`

	FilterSettings  model.FilterSettings  `json:"filterSettings"`
	AdvancedFilters model.AdvancedFilters `json:"advancedFilters"`
	Presets         []model.FilterPreset  `json:"filterPresets"`
	ResetPrefs      model.ResetPrefs      `json:"resetPrefs"`

	// ActiveQuickFilter is session state, never persisted: quick filters are
	// re-derived from whichever columns exist.
	ActiveQuickFilter string `json:"-"`
}

type Store struct {
	Dir string
}

func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".taskgrid")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".taskgrid"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

// Load reads the state from the store's SQLite db. An empty SQLite state
// auto-imports a legacy db.json once, and an entirely fresh store is seeded
// with the default list and sample tasks.
func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.LoadSQLite(context.Background())
}

// Save persists the whole document. The several logical state sections are
// written inside one transaction so a crash can never leave column
// definitions, column order and row data referring to different schemas.
func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.SaveSQLite(context.Background(), db)
}

// NewDB returns a freshly-seeded state: one default list with the sample
// tasks, no custom columns, definition-order columns.
func NewDB() *DB {
	db := &DB{
		Version:       1,
		CurrentListID: "default",
		Lists: []model.List{{
			ID:          "default",
			Name:        "Main Tasks",
			Description: "Default task list",
			Tasks:       SeedTasks(),
			CreatedAt:   time.Now().UTC(),
		}},
		ResetPrefs: model.DefaultResetPrefs(),
	}
	db.FilterSettings.StatusFilters.All = true
	db.AdvancedFilters.Logic = model.LogicAnd
	db.EnsureColumnOrder()
	return db
}

// AllColumns returns the defaults (with persisted name/alignment overrides
// applied) followed by the custom columns, in definition order.
func (db *DB) AllColumns() []model.Column {
	defaults := model.DefaultColumns()
	for i := range defaults {
		for _, ov := range db.DefaultOverrides {
			if ov.ID != defaults[i].ID {
				continue
			}
			if strings.TrimSpace(ov.Name) != "" {
				defaults[i].Name = ov.Name
			}
			if ov.Alignment != "" {
				defaults[i].Alignment = ov.Alignment
			}
			if ov.Visible != nil {
				defaults[i].Visible = *ov.Visible
			}
		}
	}
	return append(defaults, db.CustomColumns...)
}

// FindColumn resolves a column id against the full column set.
func (db *DB) FindColumn(id string) (model.Column, bool) {
	for _, c := range db.AllColumns() {
		if c.ID == id {
			return c, true
		}
	}
	return model.Column{}, false
}

// OrderedColumns joins ColumnOrder with the full column definitions. Ids in
// the order that no longer resolve are skipped; columns missing from the order
// are appended in definition order (actions kept last).
func (db *DB) OrderedColumns() []model.Column {
	db.EnsureColumnOrder()
	all := db.AllColumns()
	byID := make(map[string]model.Column, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	out := make([]model.Column, 0, len(all))
	for _, id := range db.ColumnOrder {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// VisibleColumns is OrderedColumns filtered to visible, non-actions columns.
func (db *DB) VisibleColumns() []model.Column {
	var out []model.Column
	for _, c := range db.OrderedColumns() {
		if c.Visible && c.ID != model.ColActions {
			out = append(out, c)
		}
	}
	return out
}

// EnsureColumnOrder keeps ColumnOrder a permutation of the current column id
// set: unknown ids are dropped, new ids inserted before actions, and an empty
// order falls back to definition order.
func (db *DB) EnsureColumnOrder() {
	all := db.AllColumns()
	known := make(map[string]bool, len(all))
	for _, c := range all {
		known[c.ID] = true
	}

	var order []string
	seen := map[string]bool{}
	for _, id := range db.ColumnOrder {
		if known[id] && !seen[id] {
			order = append(order, id)
			seen[id] = true
		}
	}
	for _, c := range all {
		if !seen[c.ID] {
			order = insertBeforeActions(order, c.ID)
			seen[c.ID] = true
		}
	}

	// Actions stays pinned to the final position no matter how the rest of
	// the order was rearranged.
	for i, id := range order {
		if id == model.ColActions && i != len(order)-1 {
			order = append(append(order[:i:i], order[i+1:]...), model.ColActions)
			break
		}
	}
	db.ColumnOrder = order
}

func insertBeforeActions(order []string, id string) []string {
	if id == model.ColActions {
		return append(order, id)
	}
	for i, existing := range order {
		if existing == model.ColActions {
			out := make([]string, 0, len(order)+1)
			out = append(out, order[:i]...)
			out = append(out, id)
			out = append(out, order[i:]...)
			return out
		}
	}
	return append(order, id)
}

func (db *DB) FindList(id string) (*model.List, bool) {
	for i := range db.Lists {
		if db.Lists[i].ID == id {
			return &db.Lists[i], true
		}
	}
	return nil, false
}

func (db *DB) FindListByName(name string) (*model.List, bool) {
	for i := range db.Lists {
		if strings.EqualFold(db.Lists[i].Name, strings.TrimSpace(name)) {
			return &db.Lists[i], true
		}
	}
	return nil, false
}

// CurrentList returns the active list, falling back to the first list when the
// persisted pointer is stale.
func (db *DB) CurrentList() *model.List {
	if l, ok := db.FindList(db.CurrentListID); ok {
		return l
	}
	if len(db.Lists) == 0 {
		return nil
	}
	db.CurrentListID = db.Lists[0].ID
	return &db.Lists[0]
}

// SetDefaultOverride records (or updates) the persisted patch for a default
// column. Zero-valued fields leave the corresponding attribute untouched.
func (db *DB) SetDefaultOverride(id string, patch func(*model.ColumnOverride)) {
	for i := range db.DefaultOverrides {
		if db.DefaultOverrides[i].ID == id {
			patch(&db.DefaultOverrides[i])
			return
		}
	}
	ov := model.ColumnOverride{ID: id}
	patch(&ov)
	db.DefaultOverrides = append(db.DefaultOverrides, ov)
}
