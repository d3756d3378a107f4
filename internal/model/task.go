package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"taskgrid-cli/internal/dates"
)

// Task is one row in a list. The fixed core mirrors the default columns; every
// user-defined column's value lives in Custom, keyed by column id. SR is the
// row's stable identity within its list (never an array index).
//
// On the wire a task is a flat object keyed by column id, matching the shape
// rows have always been persisted in, so Custom keys are flattened to the top
// level during (un)marshalling.
type Task struct {
	SR       int
	Title    string
	Priority int
	Resource string
	Status   string
	DueDate  dates.Date
	Remarks  string
	Custom   map[string]any
}

// Value resolves a column id to this task's value for it. Missing custom keys
// yield nil, which the filter engine treats like an empty cell.
func (t *Task) Value(columnID string) any {
	switch columnID {
	case ColSR:
		return t.SR
	case ColTask:
		return t.Title
	case ColPriority:
		return t.Priority
	case ColResource:
		return t.Resource
	case ColStatus:
		return t.Status
	case ColDueDate:
		return t.DueDate.String()
	case ColRemarks:
		return t.Remarks
	}
	if t.Custom == nil {
		return nil
	}
	return t.Custom[columnID]
}

// SetValue stores a (pre-coerced) value under a column id.
func (t *Task) SetValue(columnID string, v any) {
	switch columnID {
	case ColSR:
		t.SR = toInt(v)
	case ColTask:
		t.Title = toString(v)
	case ColPriority:
		t.Priority = toInt(v)
	case ColResource:
		t.Resource = toString(v)
	case ColStatus:
		t.Status = toString(v)
	case ColDueDate:
		d, _ := dates.Parse(toString(v))
		t.DueDate = d
	case ColRemarks:
		t.Remarks = toString(v)
	default:
		if t.Custom == nil {
			t.Custom = map[string]any{}
		}
		t.Custom[columnID] = v
	}
}

// DeleteValue removes a custom column's key. Core fields cannot be removed,
// only defaulted, because their columns are never deletable.
func (t *Task) DeleteValue(columnID string) {
	delete(t.Custom, columnID)
}

// ValueString renders a cell value for display/search/export.
func (t *Task) ValueString(columnID string) string {
	return toString(t.Value(columnID))
}

func (t *Task) Clone() Task {
	out := *t
	if t.Custom != nil {
		out.Custom = make(map[string]any, len(t.Custom))
		for k, v := range t.Custom {
			out.Custom[k] = v
		}
	}
	return out
}

func (t Task) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(t.Custom)+7)
	for k, v := range t.Custom {
		m[k] = v
	}
	m[ColSR] = t.SR
	m[ColTask] = t.Title
	m[ColPriority] = t.Priority
	m[ColResource] = t.Resource
	m[ColStatus] = t.Status
	m[ColDueDate] = t.DueDate.String()
	m[ColRemarks] = t.Remarks
	return json.Marshal(m)
}

func (t *Task) UnmarshalJSON(b []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*t = Task{}
	for k, raw := range m {
		switch k {
		case ColSR:
			t.SR = rawInt(raw)
		case ColTask:
			t.Title = rawString(raw)
		case ColPriority:
			t.Priority = rawInt(raw)
		case ColResource:
			t.Resource = rawString(raw)
		case ColStatus:
			t.Status = rawString(raw)
		case ColDueDate:
			d, _ := dates.Parse(rawString(raw))
			t.DueDate = d
		case ColRemarks:
			t.Remarks = rawString(raw)
		default:
			var v any
			if err := json.Unmarshal(raw, &v); err == nil && v != nil {
				if t.Custom == nil {
					t.Custom = map[string]any{}
				}
				t.Custom[k] = v
			}
		}
	}
	return nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var v any
	if err := json.Unmarshal(raw, &v); err == nil && v != nil {
		return toString(v)
	}
	return ""
}

func rawInt(raw json.RawMessage) int {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	// Tolerate numbers persisted as strings by older imports.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return int(f)
		}
	}
	return 0
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func toInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case float64:
		return int(x)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return int(f)
		}
	}
	return 0
}
