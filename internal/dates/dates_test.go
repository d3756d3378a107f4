package dates

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in     string
		want   Date
		wantOK bool
	}{
		{"01-06-2025", Date{2025, time.June, 1}, true},
		{"7-6-2025", Date{2025, time.June, 7}, true},
		{"", Date{}, true},
		{"  ", Date{}, true},
		{"2025-06-01", Date{}, false},
		{"31-13-2025", Date{}, false},
		{"garbage", Date{}, false},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.in)
		if ok != tc.wantOK {
			t.Fatalf("Parse(%q): ok=%v, want %v", tc.in, ok, tc.wantOK)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q): got %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	d, ok := Parse("07-06-2025")
	if !ok {
		t.Fatal("parse failed")
	}
	if d.String() != "07-06-2025" {
		t.Fatalf("String: got %q", d.String())
	}
	if d.ISO() != "2025-06-07" {
		t.Fatalf("ISO: got %q", d.ISO())
	}
	back, ok := ParseISO(d.ISO())
	if !ok || back != d {
		t.Fatalf("ISO round-trip: got %+v", back)
	}
}

func TestBlankSortsLast(t *testing.T) {
	var blank Date
	filled, _ := Parse("01-06-2025")
	if !filled.SortTime().Before(blank.SortTime()) {
		t.Fatal("expected blank date to sort after a real date")
	}
	if blank.SortTime() != Sentinel().Time() {
		t.Fatal("expected blank date to map to sentinel")
	}
}

func TestWeekRange(t *testing.T) {
	// 2025-06-15 is a Sunday.
	ref := time.Date(2025, time.June, 15, 13, 45, 0, 0, time.Local)
	start, end := WeekRange(ref)
	if start.Weekday() != time.Sunday {
		t.Fatalf("week start is %v, want Sunday", start.Weekday())
	}
	if start.Day() != 15 {
		t.Fatalf("week start day %d, want 15", start.Day())
	}
	if !end.After(start.AddDate(0, 0, 6)) {
		t.Fatalf("week end %v too early", end)
	}
	inWeek, _ := Parse("21-06-2025")
	if inWeek.Time().Before(start) || inWeek.Time().After(end) {
		t.Fatal("expected Saturday of the same week to be in range")
	}
}

func TestParseBound(t *testing.T) {
	if _, ok := ParseBound("2025-06-10"); !ok {
		t.Fatal("ISO bound should parse")
	}
	if _, ok := ParseBound("10-06-2025"); !ok {
		t.Fatal("stored-form bound should parse")
	}
	if _, ok := ParseBound("not a date"); ok {
		t.Fatal("garbage bound should not parse")
	}
}

func TestJSON(t *testing.T) {
	d, _ := Parse("12-06-2025")
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"12-06-2025"` {
		t.Fatalf("marshal: got %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Fatalf("unmarshal: got %+v", back)
	}
	// ISO tolerated on input.
	if err := json.Unmarshal([]byte(`"2025-06-12"`), &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Fatalf("ISO unmarshal: got %+v", back)
	}
	// Blank stays blank.
	if err := json.Unmarshal([]byte(`""`), &back); err != nil {
		t.Fatal(err)
	}
	if !back.IsZero() {
		t.Fatalf("blank unmarshal: got %+v", back)
	}
}
