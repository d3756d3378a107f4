package dates

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date is a calendar date with no time-of-day component. The zero value means
// "no date" (blank cell). Stored form is DD-MM-YYYY; the ISO form YYYY-MM-DD is
// what date inputs and filter bounds use. Keeping a real value type here means
// the two serialization boundaries are the only places format strings appear.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

var (
	reStored = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	reISO    = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
)

// Sentinel is the far-future date that blank/unparseable dates collapse to for
// sorting, so rows without a due date sort last in ascending order.
func Sentinel() Date {
	return Date{Year: 2099, Month: time.December, Day: 31}
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns the date at local midnight.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// SortTime is Time, with blank dates mapped to the sentinel.
func (d Date) SortTime() time.Time {
	if d.IsZero() {
		return Sentinel().Time()
	}
	return d.Time()
}

func (d Date) Before(other Date) bool { return d.Time().Before(other.Time()) }

// String renders the stored DD-MM-YYYY form, or "" for a blank date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, int(d.Month), d.Year)
}

// ISO renders YYYY-MM-DD, or "" for a blank date.
func (d Date) ISO() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Parse reads the stored DD-MM-YYYY form. Blank input parses to the zero Date.
func Parse(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, true
	}
	m := reStored.FindStringSubmatch(s)
	if m == nil {
		return Date{}, false
	}
	return fromParts(m[3], m[2], m[1])
}

// ParseISO reads the YYYY-MM-DD form. Blank input parses to the zero Date.
func ParseISO(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, true
	}
	m := reISO.FindStringSubmatch(s)
	if m == nil {
		return Date{}, false
	}
	return fromParts(m[1], m[2], m[3])
}

func fromParts(y, mo, dy string) (Date, bool) {
	var year, month, day int
	fmt.Sscanf(y, "%d", &year)
	fmt.Sscanf(mo, "%d", &month)
	fmt.Sscanf(dy, "%d", &day)
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, false
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, true
}

// ParseBound parses a filter-bound value the way the date input supplies it:
// ISO first, then the stored form as a fallback for hand-typed bounds.
func ParseBound(s string) (time.Time, bool) {
	if d, ok := ParseISO(s); ok && !d.IsZero() {
		return d.Time(), true
	}
	if d, ok := Parse(s); ok && !d.IsZero() {
		return d.Time(), true
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(s), time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// WeekRange returns the calendar week (Sunday through end of Saturday)
// containing ref.
func WeekRange(ref time.Time) (time.Time, time.Time) {
	ref = ref.Local()
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.Local)
	start = start.AddDate(0, 0, -int(start.Weekday()))
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return start, end
}

// SameMonth reports whether d falls in the same calendar month and year as ref.
func (d Date) SameMonth(ref time.Time) bool {
	return !d.IsZero() && d.Month == ref.Month() && d.Year == ref.Year()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if parsed, ok := Parse(s); ok {
		*d = parsed
		return nil
	}
	// Tolerate ISO in persisted data (older exports round-tripped through date inputs).
	if parsed, ok := ParseISO(s); ok {
		*d = parsed
		return nil
	}
	*d = Date{}
	return nil
}
