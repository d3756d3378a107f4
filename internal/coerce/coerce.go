// Package coerce turns raw user/import input into a column's canonical stored
// value. Numbers are stored as float64, everything else as strings; dates keep
// the DD-MM-YYYY stored form.
package coerce

import (
	"fmt"
	"strconv"
	"strings"

	"taskgrid-cli/internal/dates"
	"taskgrid-cli/internal/model"
)

// DefaultValueForType is the back-fill value when a column is newly added.
func DefaultValueForType(t model.ColumnType) any {
	if t == model.TypeNumber {
		return float64(0)
	}
	return ""
}

// Value coerces a directly-entered value (inline edit, form, CLI flag) for a
// column. Unlike the import path, parse failures here are reported to the
// caller so the edit can be rejected with the prior state unchanged.
func Value(col model.Column, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch col.Type {
	case model.TypeNumber:
		if raw == "" {
			return float64(0), nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: not a number: %q", col.ID, raw)
		}
		return f, nil
	case model.TypeDate:
		if raw == "" {
			return "", nil
		}
		d, ok := dates.Parse(raw)
		if !ok {
			// Tolerate the ISO form date inputs produce.
			if iso, isoOK := dates.ParseISO(raw); isoOK {
				return iso.String(), nil
			}
			return nil, fmt.Errorf("%s: not a date: %q (expected DD-MM-YYYY)", col.ID, raw)
		}
		return d.String(), nil
	case model.TypeSelect:
		if raw == "" {
			return "", nil
		}
		for _, opt := range col.Options {
			if strings.EqualFold(opt, raw) {
				return opt, nil
			}
		}
		return nil, fmt.Errorf("%s: %q is not one of %s", col.ID, raw, strings.Join(col.Options, ", "))
	default:
		return raw, nil
	}
}

// ImportValue coerces an imported cell. The import path is deliberately more
// forgiving than Value:
//   - an unparseable number keeps the original string so no data is lost;
//   - an unknown select value becomes a new option on the column (mutates col).
func ImportValue(col *model.Column, raw string) any {
	raw = strings.TrimSpace(raw)
	switch col.Type {
	case model.TypeNumber:
		if raw == "" {
			return float64(0)
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
		return raw
	case model.TypeSelect:
		if raw != "" && !containsOption(col.Options, raw) {
			col.Options = append(col.Options, raw)
		}
		return raw
	default:
		return raw
	}
}

func containsOption(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}
