package mutate

import (
	"errors"
	"testing"

	"taskgrid-cli/internal/store"
)

func TestCreateList(t *testing.T) {
	db := store.NewDB()
	s := store.Store{}

	res, err := CreateList(db, s, "Sprint 12", "June sprint")
	if err != nil {
		t.Fatal(err)
	}
	if res.List.ID == "" || res.List.Name != "Sprint 12" {
		t.Fatalf("list: %+v", res.List)
	}
	if db.CurrentListID != res.List.ID {
		t.Fatal("new list must become current")
	}
	if len(res.List.Tasks) != 0 {
		t.Fatal("new list starts empty")
	}

	if _, err := CreateList(db, s, "sprint 12", ""); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("got %v", err)
	}
	if _, err := CreateList(db, s, "  ", ""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("got %v", err)
	}
}

func TestDeleteList(t *testing.T) {
	db := store.NewDB()
	s := store.Store{}

	if err := DeleteList(db, "default"); !errors.Is(err, ErrLastList) {
		t.Fatalf("got %v", err)
	}

	res, err := CreateList(db, s, "Second", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := DeleteList(db, res.List.ID); err != nil {
		t.Fatal(err)
	}
	if db.CurrentListID != "default" {
		t.Fatalf("current after delete: %q", db.CurrentListID)
	}
	if err := DeleteList(db, "missing"); err == nil {
		t.Fatal("missing list must error")
	}
}

func TestSwitchList(t *testing.T) {
	db := store.NewDB()
	s := store.Store{}
	res, err := CreateList(db, s, "Second", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := SwitchList(db, "default"); err != nil {
		t.Fatal(err)
	}
	if db.CurrentListID != "default" {
		t.Fatalf("got %q", db.CurrentListID)
	}

	// Name works too, case-insensitively.
	if _, err := SwitchList(db, "second"); err != nil {
		t.Fatal(err)
	}
	if db.CurrentListID != res.List.ID {
		t.Fatalf("got %q", db.CurrentListID)
	}

	if _, err := SwitchList(db, "nope"); err == nil {
		t.Fatal("unknown list must error")
	}
}

func TestUpdateList(t *testing.T) {
	db := store.NewDB()
	desc := "new description"
	if err := UpdateList(db, "default", "Renamed", &desc); err != nil {
		t.Fatal(err)
	}
	l, _ := db.FindList("default")
	if l.Name != "Renamed" || l.Description != "new description" {
		t.Fatalf("list: %+v", l)
	}
	// Empty name leaves the current one.
	if err := UpdateList(db, "default", "", nil); err != nil {
		t.Fatal(err)
	}
	if l.Name != "Renamed" {
		t.Fatalf("name lost: %q", l.Name)
	}
}
