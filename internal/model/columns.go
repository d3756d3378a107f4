package model

import (
	"regexp"
	"strings"
)

// Task statuses, in cycling order.
const (
	StatusPending   = "Pending"
	StatusAssigned  = "Assigned"
	StatusCompleted = "Completed"
	StatusBlocked   = "Blocked"
)

func Statuses() []string {
	return []string{StatusPending, StatusAssigned, StatusCompleted, StatusBlocked}
}

// NextStatus cycles through the status enum; unknown statuses restart at Pending.
func NextStatus(s string) string {
	all := Statuses()
	for i, st := range all {
		if st == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Well-known column ids.
const (
	ColSR       = "sr"
	ColTask     = "task"
	ColPriority = "priority"
	ColResource = "resource"
	ColStatus   = "status"
	ColDueDate  = "dueDate"
	ColRemarks  = "remarks"
	ColActions  = "actions"
)

// DefaultColumns returns fresh copies of the built-in column set. These are
// never deletable; import may hide them (except actions) but never remove them.
func DefaultColumns() []Column {
	return []Column{
		{ID: ColSR, Name: "Sr", Type: TypeNumber, Required: true, Sortable: true, Visible: true, Alignment: AlignCenter},
		{ID: ColTask, Name: "Task", Type: TypeTextarea, Required: true, Sortable: true, Visible: true, Alignment: AlignLeft},
		{ID: ColPriority, Name: "P", Type: TypeNumber, Required: true, Sortable: true, Visible: true, Alignment: AlignCenter},
		{ID: ColResource, Name: "Resource", Type: TypeText, Sortable: true, Visible: true, Alignment: AlignCenter},
		{ID: ColStatus, Name: "Status", Type: TypeSelect, Required: true, Sortable: true, Visible: true, Alignment: AlignCenter,
			Options: Statuses()},
		{ID: ColDueDate, Name: "Due", Type: TypeDate, Sortable: true, Visible: true, Alignment: AlignCenter},
		{ID: ColRemarks, Name: "Remarks", Type: TypeTextarea, Visible: true, Alignment: AlignLeft},
		{ID: ColActions, Name: "Del", Type: TypeActions, Visible: true, Alignment: AlignCenter},
	}
}

func IsDefaultColumnID(id string) bool {
	switch id {
	case ColSR, ColTask, ColPriority, ColResource, ColStatus, ColDueDate, ColRemarks, ColActions:
		return true
	}
	return false
}

// reColumnName is the allowed shape of a user-entered column name.
var reColumnName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 ]*$`)

func ValidColumnName(name string) bool {
	return reColumnName.MatchString(name)
}

var reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// DeriveColumnID derives the immutable column id from a display name:
// lowercase, with runs of anything outside [a-z0-9] collapsed to "_".
func DeriveColumnID(name string) string {
	return reNonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}
