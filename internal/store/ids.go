package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 40 bits of space is plenty for a local store.
func newRandomID(prefix string) (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return prefix + "-" + strings.ToLower(enc.EncodeToString(b[:])), nil
}

// NextID generates a fresh id with the given prefix (list-xxx, flt-xxx,
// preset-xxx), retrying on the unlikely collision.
func (s Store) NextID(db *DB, prefix string) string {
	for i := 0; i < 10; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			break
		}
		if !idExists(db, id) {
			return id
		}
	}
	// crypto/rand failure fallback: derive from current counts.
	return fmt.Sprintf("%s-%d", prefix, len(db.Lists)+len(db.Presets)+len(db.AdvancedFilters.Filters)+1)
}

func idExists(db *DB, id string) bool {
	for _, l := range db.Lists {
		if l.ID == id {
			return true
		}
	}
	for _, p := range db.Presets {
		if p.ID == id {
			return true
		}
	}
	for _, f := range db.AdvancedFilters.Filters {
		if f.ID == id {
			return true
		}
	}
	return false
}
