package mutate

import (
	"strings"
	"time"

	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/store"
)

type CreateListResult struct {
	List *model.List
}

// CreateList adds a new empty list and makes it current.
func CreateList(db *store.DB, s store.Store, name, description string) (CreateListResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CreateListResult{}, ErrEmptyName
	}
	if _, ok := db.FindListByName(name); ok {
		return CreateListResult{}, ErrDuplicateName
	}

	db.Lists = append(db.Lists, model.List{
		ID:          s.NextID(db, "list"),
		Name:        name,
		Description: strings.TrimSpace(description),
		Tasks:       []model.Task{},
		CreatedAt:   time.Now().UTC(),
	})
	l := &db.Lists[len(db.Lists)-1]
	db.CurrentListID = l.ID
	return CreateListResult{List: l}, nil
}

// UpdateList renames a list and/or replaces its description. Empty name
// keeps the current one; a non-nil description always replaces.
func UpdateList(db *store.DB, id, name string, description *string) error {
	l, ok := db.FindList(id)
	if !ok {
		return NotFoundError{Kind: "list", ID: id}
	}
	if name = strings.TrimSpace(name); name != "" {
		if other, ok := db.FindListByName(name); ok && other.ID != id {
			return ErrDuplicateName
		}
		l.Name = name
	}
	if description != nil {
		l.Description = strings.TrimSpace(*description)
	}
	return nil
}

// DeleteList removes a list. The last remaining list can never be deleted;
// deleting the current list switches to the first remaining one.
func DeleteList(db *store.DB, id string) error {
	if _, ok := db.FindList(id); !ok {
		return NotFoundError{Kind: "list", ID: id}
	}
	if len(db.Lists) == 1 {
		return ErrLastList
	}

	kept := db.Lists[:0]
	for _, l := range db.Lists {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	db.Lists = kept
	if db.CurrentListID == id {
		db.CurrentListID = db.Lists[0].ID
	}
	return nil
}

// SwitchList makes another list current. Accepts an id or a name.
func SwitchList(db *store.DB, ref string) (*model.List, error) {
	l, ok := db.FindList(ref)
	if !ok {
		l, ok = db.FindListByName(ref)
	}
	if !ok {
		return nil, NotFoundError{Kind: "list", ID: ref}
	}
	db.CurrentListID = l.ID
	return l, nil
}
