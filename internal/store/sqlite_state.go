package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"taskgrid-cli/internal/model"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "index.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids "database is
	// locked" flakiness when a TUI and a script touch the same store.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// LoadSQLite loads the state from SQLite. If the SQLite state is empty but a
// legacy db.json exists, it imports db.json once; a completely fresh store is
// seeded with the default list and sample tasks.
func (s Store) LoadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return nil, err
	}

	hasState, err := sqliteStateHasAnyRows(ctx, db)
	if err != nil {
		return nil, err
	}
	if !hasState {
		seed := NewDB()
		if b, err := os.ReadFile(s.dbPath()); err == nil && len(b) > 0 {
			var legacy DB
			if err := json.Unmarshal(b, &legacy); err != nil {
				return nil, fmt.Errorf("legacy %s: %w", dbFileName, err)
			}
			if legacy.Version == 0 {
				legacy.Version = 1
			}
			legacy.EnsureColumnOrder()
			seed = &legacy
		}
		if err := s.SaveSQLite(ctx, seed); err != nil {
			return nil, err
		}
	}

	return loadStateFromSQLite(ctx, db)
}

// SaveSQLite writes the whole document, replace-all, in one transaction.
func (s Store) SaveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	st.EnsureColumnOrder()

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	meta := map[string]string{
		"version":         strconv.Itoa(st.Version),
		"current_list_id": strings.TrimSpace(st.CurrentListID),
	}
	for k, v := range map[string]any{
		"column_order":     st.ColumnOrder,
		"column_widths":    st.ColumnWidths,
		"filter_settings":  st.FilterSettings,
		"advanced_filters": st.AdvancedFilters,
		"reset_prefs":      st.ResetPrefs,
	} {
		raw, _ := json.Marshal(v)
		meta[k] = string(raw)
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, k, v); err != nil {
			return err
		}
	}

	for _, t := range []string{"lists", "tasks", "custom_columns", "default_overrides", "presets"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for pos, l := range st.Lists {
		if _, err := tx.ExecContext(ctx, `INSERT INTO lists(id, name, description, position, created_at_unixms, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			l.ID, l.Name, l.Description, pos, l.CreatedAt.UTC().UnixMilli(), nowMs); err != nil {
			return err
		}
		for tpos, task := range l.Tasks {
			raw, _ := json.Marshal(task)
			if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(list_id, sr, position, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
				l.ID, task.SR, tpos, string(raw), nowMs); err != nil {
				return err
			}
		}
	}

	for pos, c := range st.CustomColumns {
		raw, _ := json.Marshal(c)
		if _, err := tx.ExecContext(ctx, `INSERT INTO custom_columns(id, position, json, updated_at_unixms) VALUES(?, ?, ?, ?)`,
			c.ID, pos, string(raw), nowMs); err != nil {
			return err
		}
	}

	for _, ov := range st.DefaultOverrides {
		raw, _ := json.Marshal(ov)
		if _, err := tx.ExecContext(ctx, `INSERT INTO default_overrides(id, json, updated_at_unixms) VALUES(?, ?, ?)`,
			ov.ID, string(raw), nowMs); err != nil {
			return err
		}
	}

	for pos, p := range st.Presets {
		raw, _ := json.Marshal(p)
		if _, err := tx.ExecContext(ctx, `INSERT INTO presets(id, name, position, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			p.ID, p.Name, pos, string(raw), nowMs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func loadStateFromSQLite(ctx context.Context, db *sql.DB) (*DB, error) {
	st := &DB{Version: 1}

	metaRows, err := db.QueryContext(ctx, `SELECT k, v FROM state_meta`)
	if err != nil {
		return nil, err
	}
	defer metaRows.Close()
	for metaRows.Next() {
		var k, v string
		if err := metaRows.Scan(&k, &v); err != nil {
			return nil, err
		}
		switch k {
		case "version":
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				st.Version = n
			}
		case "current_list_id":
			st.CurrentListID = v
		case "column_order":
			_ = json.Unmarshal([]byte(v), &st.ColumnOrder)
		case "column_widths":
			_ = json.Unmarshal([]byte(v), &st.ColumnWidths)
		case "filter_settings":
			_ = json.Unmarshal([]byte(v), &st.FilterSettings)
		case "advanced_filters":
			_ = json.Unmarshal([]byte(v), &st.AdvancedFilters)
		case "reset_prefs":
			_ = json.Unmarshal([]byte(v), &st.ResetPrefs)
		}
	}
	if err := metaRows.Err(); err != nil {
		return nil, err
	}

	listRows, err := db.QueryContext(ctx, `SELECT id, name, description, created_at_unixms FROM lists ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer listRows.Close()
	for listRows.Next() {
		var l model.List
		var createdMs int64
		if err := listRows.Scan(&l.ID, &l.Name, &l.Description, &createdMs); err != nil {
			return nil, err
		}
		l.CreatedAt = time.UnixMilli(createdMs).UTC()
		st.Lists = append(st.Lists, l)
	}
	if err := listRows.Err(); err != nil {
		return nil, err
	}

	taskRows, err := db.QueryContext(ctx, `SELECT list_id, json FROM tasks ORDER BY list_id, position`)
	if err != nil {
		return nil, err
	}
	defer taskRows.Close()
	for taskRows.Next() {
		var listID, raw string
		if err := taskRows.Scan(&listID, &raw); err != nil {
			return nil, err
		}
		var task model.Task
		if err := json.Unmarshal([]byte(raw), &task); err != nil {
			continue
		}
		if l, ok := st.FindList(listID); ok {
			l.Tasks = append(l.Tasks, task)
		}
	}
	if err := taskRows.Err(); err != nil {
		return nil, err
	}

	colRows, err := db.QueryContext(ctx, `SELECT json FROM custom_columns ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer colRows.Close()
	for colRows.Next() {
		var raw string
		if err := colRows.Scan(&raw); err != nil {
			return nil, err
		}
		var c model.Column
		if err := json.Unmarshal([]byte(raw), &c); err == nil {
			st.CustomColumns = append(st.CustomColumns, c)
		}
	}
	if err := colRows.Err(); err != nil {
		return nil, err
	}

	ovRows, err := db.QueryContext(ctx, `SELECT json FROM default_overrides`)
	if err != nil {
		return nil, err
	}
	defer ovRows.Close()
	for ovRows.Next() {
		var raw string
		if err := ovRows.Scan(&raw); err != nil {
			return nil, err
		}
		var ov model.ColumnOverride
		if err := json.Unmarshal([]byte(raw), &ov); err == nil {
			st.DefaultOverrides = append(st.DefaultOverrides, ov)
		}
	}
	if err := ovRows.Err(); err != nil {
		return nil, err
	}

	presetRows, err := db.QueryContext(ctx, `SELECT json FROM presets ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer presetRows.Close()
	for presetRows.Next() {
		var raw string
		if err := presetRows.Scan(&raw); err != nil {
			return nil, err
		}
		var p model.FilterPreset
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			st.Presets = append(st.Presets, p)
		}
	}
	if err := presetRows.Err(); err != nil {
		return nil, err
	}

	if st.AdvancedFilters.Logic == "" {
		st.AdvancedFilters.Logic = model.LogicAnd
	}
	st.EnsureColumnOrder()
	return st, nil
}

func sqliteStateHasAnyRows(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM lists`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS lists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			position INTEGER NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			list_id TEXT NOT NULL,
			sr INTEGER NOT NULL,
			position INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL,
			PRIMARY KEY (list_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_list ON tasks(list_id);`,
		`CREATE TABLE IF NOT EXISTS custom_columns (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS default_overrides (
			id TEXT PRIMARY KEY,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS presets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
