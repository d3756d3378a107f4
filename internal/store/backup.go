package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const backupDirName = "backups"

// Backup copies the current database file into <dir>/backups with a
// timestamped name and returns the backup path. Destructive operations
// (import overwrite, reset) take one first so a slip is recoverable.
func (s Store) Backup(now time.Time) (string, error) {
	src := s.sqlitePath()
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return "", nil // nothing persisted yet, nothing to protect
		}
		return "", err
	}

	name := fmt.Sprintf("index-%s.sqlite", now.UTC().Format("20060102-150405"))
	dest := filepath.Join(s.Dir, backupDirName, name)
	if err := copyFile(src, dest); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	if err := s.pruneBackups(10); err != nil {
		return "", err
	}
	return dest, nil
}

// pruneBackups keeps the newest keep backups and removes the rest. Names
// embed a sortable timestamp, so lexical order is age order.
func (s Store) pruneBackups(keep int) error {
	dir := filepath.Join(s.Dir, backupDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "index-") && strings.HasSuffix(e.Name(), ".sqlite") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for len(names) > keep {
		if err := os.Remove(filepath.Join(dir, names[0])); err != nil {
			return err
		}
		names = names[1:]
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
