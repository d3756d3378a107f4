package mutate

import (
	"errors"
	"strconv"
	"strings"

	"taskgrid-cli/internal/coerce"
	"taskgrid-cli/internal/dates"
	"taskgrid-cli/internal/model"
	"taskgrid-cli/internal/store"
)

var ErrImmutableColumn = errors.New("column cannot be edited")

type AddTaskResult struct {
	Task *model.Task
}

// AddTask appends an empty task to the current list, with type defaults for
// every custom column so the row's key set matches the registry.
func AddTask(db *store.DB) (AddTaskResult, error) {
	list := db.CurrentList()
	if list == nil {
		return AddTaskResult{}, NotFoundError{Kind: "list", ID: db.CurrentListID}
	}

	t := model.Task{
		SR:     list.NextSR(),
		Status: model.StatusPending,
	}
	for _, c := range db.CustomColumns {
		t.SetValue(c.ID, coerce.DefaultValueForType(c.Type))
	}
	list.Tasks = append(list.Tasks, t)
	return AddTaskResult{Task: &list.Tasks[len(list.Tasks)-1]}, nil
}

// EditTask commits one cell edit on the current list, coercing the raw input
// per the column's type. The sr and actions cells are not editable.
func EditTask(db *store.DB, sr int, columnID, raw string) error {
	list := db.CurrentList()
	if list == nil {
		return NotFoundError{Kind: "list", ID: db.CurrentListID}
	}
	t, ok := list.FindTask(sr)
	if !ok {
		return NotFoundError{Kind: "task", ID: strconv.Itoa(sr)}
	}
	col, ok := db.FindColumn(columnID)
	if !ok {
		return NotFoundError{Kind: "column", ID: columnID}
	}

	switch columnID {
	case model.ColSR, model.ColActions:
		return ErrImmutableColumn
	case model.ColTask:
		t.Title = strings.TrimSpace(raw)
	case model.ColPriority:
		v, err := coerce.Value(col, raw)
		if err != nil {
			return err
		}
		t.Priority = int(v.(float64))
	case model.ColResource:
		t.Resource = strings.TrimSpace(raw)
	case model.ColStatus:
		v, err := coerce.Value(col, raw)
		if err != nil {
			return err
		}
		t.Status = v.(string)
	case model.ColDueDate:
		v, err := coerce.Value(col, raw)
		if err != nil {
			return err
		}
		d, _ := dates.Parse(v.(string))
		t.DueDate = d
	case model.ColRemarks:
		t.Remarks = strings.TrimSpace(raw)
	default:
		i := customIndex(db, columnID)
		if i < 0 {
			return NotFoundError{Kind: "column", ID: columnID}
		}
		v, err := coerce.Value(db.CustomColumns[i], raw)
		if err != nil {
			return err
		}
		t.SetValue(columnID, v)
	}
	return nil
}

// DeleteTask removes a task from the current list by sr.
func DeleteTask(db *store.DB, sr int) error {
	list := db.CurrentList()
	if list == nil {
		return NotFoundError{Kind: "list", ID: db.CurrentListID}
	}
	for i := range list.Tasks {
		if list.Tasks[i].SR == sr {
			list.Tasks = append(list.Tasks[:i], list.Tasks[i+1:]...)
			return nil
		}
	}
	return NotFoundError{Kind: "task", ID: strconv.Itoa(sr)}
}

// CycleStatus advances a task's status to the next value in the fixed cycle.
func CycleStatus(db *store.DB, sr int) (string, error) {
	list := db.CurrentList()
	if list == nil {
		return "", NotFoundError{Kind: "list", ID: db.CurrentListID}
	}
	t, ok := list.FindTask(sr)
	if !ok {
		return "", NotFoundError{Kind: "task", ID: strconv.Itoa(sr)}
	}
	t.Status = model.NextStatus(t.Status)
	return t.Status, nil
}

func customIndex(db *store.DB, id string) int {
	for i := range db.CustomColumns {
		if db.CustomColumns[i].ID == id {
			return i
		}
	}
	return -1
}
