package mutate

import (
	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/store"
)

// Reset restores the selected state categories to their defaults. The
// selection is remembered for the next reset.
func Reset(db *store.DB, prefs model.ResetPrefs) {
	db.ResetPrefs = prefs

	if prefs.Tasks {
		if list := db.CurrentList(); list != nil {
			list.Tasks = store.SeedTasks()
		}
	}

	if prefs.CustomColumns {
		for _, c := range db.CustomColumns {
			for li := range db.Lists {
				for ti := range db.Lists[li].Tasks {
					db.Lists[li].Tasks[ti].DeleteValue(c.ID)
				}
			}
			delete(db.ColumnWidths, c.ID)
		}
		db.CustomColumns = nil
	}

	// ColumnNames drops the whole persisted patch per default column, so
	// alignment changes and import-driven hiding reset along with renames.
	if prefs.ColumnNames {
		db.DefaultOverrides = nil
	}

	if prefs.ColumnOrder {
		db.ColumnOrder = nil
	}

	if prefs.ColumnWidths {
		db.ColumnWidths = nil
	}

	if prefs.Filters {
		db.FilterSettings = model.FilterSettings{
			StatusFilters: model.StatusFilters{All: true},
		}
		db.AdvancedFilters = model.AdvancedFilters{Logic: model.LogicAnd}
		db.ActiveQuickFilter = ""
	}

	if prefs.FilterPresets {
		db.Presets = nil
	}

	db.EnsureColumnOrder()
}
