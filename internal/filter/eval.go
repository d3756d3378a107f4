package filter

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"taskgrid-cli/internal/dates"
	"taskgrid-cli/internal/model"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Evaluate applies one predicate to one task. String comparisons are
// case-insensitive throughout. A predicate whose column no longer exists
// evaluates with text semantics against the empty cell, so stale presets
// stay loadable instead of erroring. An operator name outside the known set
// passes unconditionally; predicate creation validates operators, so this
// only fires for hand-edited state, which we choose to let through rather
// than silently hide rows.
func Evaluate(t *model.Task, p model.FilterPredicate, cols []model.Column, now time.Time) bool {
	colType := model.TypeText
	for _, c := range cols {
		if c.ID == p.ColumnID {
			colType = c.Type
			break
		}
	}

	raw := strings.TrimSpace(t.ValueString(p.ColumnID))
	lowRaw := strings.ToLower(raw)
	bound := strings.TrimSpace(p.Value)
	lowBound := strings.ToLower(bound)

	switch p.Operator {
	case OpContains:
		return raw != "" && strings.Contains(lowRaw, lowBound)
	case OpStartsWith:
		return raw != "" && strings.HasPrefix(lowRaw, lowBound)
	case OpEndsWith:
		return raw != "" && strings.HasSuffix(lowRaw, lowBound)

	case OpEquals:
		switch colType {
		case model.TypeNumber:
			a, errA := strconv.ParseFloat(raw, 64)
			b, errB := strconv.ParseFloat(bound, 64)
			return errA == nil && errB == nil && a == b
		case model.TypeDate:
			d, ok := dates.Parse(raw)
			bt, okB := dates.ParseBound(bound)
			if !ok || !okB {
				return false
			}
			y, m, day := bt.Date()
			return d.Year == y && d.Month == m && d.Day == day
		default:
			return lowRaw == lowBound
		}

	case OpIsEmpty:
		return raw == ""
	case OpIsNotEmpty:
		return raw != ""

	case OpGreaterThan:
		a, errA := strconv.ParseFloat(raw, 64)
		b, errB := strconv.ParseFloat(bound, 64)
		return errA == nil && errB == nil && a > b
	case OpLessThan:
		a, errA := strconv.ParseFloat(raw, 64)
		b, errB := strconv.ParseFloat(bound, 64)
		return errA == nil && errB == nil && a < b

	case OpBetween:
		switch colType {
		case model.TypeNumber:
			v, errV := strconv.ParseFloat(raw, 64)
			lo, errLo := strconv.ParseFloat(bound, 64)
			hi, errHi := strconv.ParseFloat(strings.TrimSpace(p.Value2), 64)
			return errV == nil && errLo == nil && errHi == nil && v >= lo && v <= hi
		case model.TypeDate:
			d, ok := dates.Parse(raw)
			lo, okLo := dates.ParseBound(bound)
			hi, okHi := dates.ParseBound(strings.TrimSpace(p.Value2))
			if !ok || !okLo || !okHi {
				return false
			}
			v := d.Time()
			return !v.Before(lo) && !v.After(hi)
		default:
			return false
		}

	case OpBefore:
		d, ok := dates.Parse(raw)
		b, okB := dates.ParseBound(bound)
		return ok && okB && d.Time().Before(b)
	case OpAfter:
		d, ok := dates.Parse(raw)
		b, okB := dates.ParseBound(bound)
		return ok && okB && d.Time().After(b)

	case OpThisWeek:
		d, ok := dates.Parse(raw)
		if !ok {
			return false
		}
		start, end := dates.WeekRange(now)
		v := d.Time()
		return !v.Before(start) && !v.After(end)
	case OpThisMonth:
		d, ok := dates.Parse(raw)
		return ok && d.SameMonth(now)
	case OpOverdue:
		d, ok := dates.Parse(raw)
		return ok && d.Time().Before(now) && t.Status != model.StatusCompleted

	case OpInList:
		return inList(lowRaw, bound)
	case OpNotInList:
		return !inList(lowRaw, bound)

	case OpIsValid:
		if colType == model.TypeURL {
			u, err := url.Parse(raw)
			return err == nil && u.Scheme != "" && u.Host != ""
		}
		return emailRe.MatchString(raw)
	}

	return true
}

func inList(lowRaw, bound string) bool {
	for _, item := range strings.Split(bound, ",") {
		if strings.ToLower(strings.TrimSpace(item)) == lowRaw {
			return true
		}
	}
	return false
}

// Matches combines a predicate list under one logic mode. An empty list
// passes everything under either mode.
func Matches(t *model.Task, preds []model.FilterPredicate, logic model.FilterLogic, cols []model.Column, now time.Time) bool {
	if len(preds) == 0 {
		return true
	}
	if logic == model.LogicOr {
		for _, p := range preds {
			if Evaluate(t, p, cols, now) {
				return true
			}
		}
		return false
	}
	for _, p := range preds {
		if !Evaluate(t, p, cols, now) {
			return false
		}
	}
	return true
}
