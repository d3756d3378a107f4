package mutate

import (
	"strings"
	"time"

	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/store"
)

type SavePresetResult struct {
	Preset      model.FilterPreset
	Overwritten bool
}

// SavePreset snapshots the current advanced-filter configuration under a
// name. Saving onto an existing name overwrites that preset in place.
func SavePreset(db *store.DB, s store.Store, name string) (SavePresetResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SavePresetResult{}, ErrEmptyName
	}

	snapshot := append([]model.FilterPredicate(nil), db.AdvancedFilters.Filters...)
	for i := range db.Presets {
		if strings.EqualFold(db.Presets[i].Name, name) {
			db.Presets[i].Filters = snapshot
			db.Presets[i].Logic = db.AdvancedFilters.Logic
			return SavePresetResult{Preset: db.Presets[i], Overwritten: true}, nil
		}
	}

	p := model.FilterPreset{
		ID:        s.NextID(db, "preset"),
		Name:      name,
		Filters:   snapshot,
		Logic:     db.AdvancedFilters.Logic,
		CreatedAt: time.Now().UTC(),
	}
	db.Presets = append(db.Presets, p)
	return SavePresetResult{Preset: p}, nil
}

// LoadPreset replaces the active advanced filters with a copy of the named
// preset. The preset itself stays untouched by later filter edits.
func LoadPreset(db *store.DB, ref string) (*model.FilterPreset, error) {
	p, ok := findPreset(db, ref)
	if !ok {
		return nil, NotFoundError{Kind: "preset", ID: ref}
	}
	db.AdvancedFilters.Filters = append([]model.FilterPredicate(nil), p.Filters...)
	db.AdvancedFilters.Logic = p.Logic
	return p, nil
}

// DeletePreset removes a preset by id or name.
func DeletePreset(db *store.DB, ref string) error {
	for i := range db.Presets {
		if db.Presets[i].ID == ref || strings.EqualFold(db.Presets[i].Name, ref) {
			db.Presets = append(db.Presets[:i], db.Presets[i+1:]...)
			return nil
		}
	}
	return NotFoundError{Kind: "preset", ID: ref}
}

func findPreset(db *store.DB, ref string) (*model.FilterPreset, bool) {
	for i := range db.Presets {
		if db.Presets[i].ID == ref || strings.EqualFold(db.Presets[i].Name, ref) {
			return &db.Presets[i], true
		}
	}
	return nil, false
}
