package timeutil

import (
	"testing"
	"time"
)

func TestParseInIST(t *testing.T) {
	got, err := ParseInIST(DateTimeLayout, "2026-08-30 18:00:00")
	if err != nil {
		t.Fatal(err)
	}

	_, offset := got.Zone()
	if offset != 5*3600+30*60 {
		t.Errorf("offset = %d, want +05:30", offset)
	}

	// 18:00 IST is 12:30 UTC.
	utc := got.UTC()
	if utc.Hour() != 12 || utc.Minute() != 30 {
		t.Errorf("UTC = %v, want 12:30", utc)
	}
}

func TestStartOfDay(t *testing.T) {
	// 01:00 IST on Aug 31 is still Aug 30 in UTC; StartOfDay must use the
	// IST calendar date.
	late := time.Date(2026, 8, 30, 19, 30, 0, 0, time.UTC)
	got := StartOfDay(late)

	if got.Day() != 31 || got.Hour() != 0 {
		t.Errorf("got %v, want IST midnight Aug 31", got)
	}
}

func TestSameISTDate(t *testing.T) {
	// Both instants fall on Aug 31 IST even though UTC dates differ.
	a := time.Date(2026, 8, 30, 19, 30, 0, 0, time.UTC)
	b := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	if !SameISTDate(a, b) {
		t.Error("expected same IST date")
	}

	c := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if SameISTDate(a, c) {
		t.Error("expected different IST dates")
	}
}
