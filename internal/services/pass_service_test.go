package services

import (
	"strings"
	"testing"

	"github.com/surajbi2/secureIn-backend/internal/timeutil"
)

func TestGeneratePassID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generatePassID()
		if len(id) != 6 {
			t.Fatalf("pass id %q has length %d, want 6", id, len(id))
		}
		if id != strings.ToUpper(id) {
			t.Errorf("pass id %q is not uppercase", id)
		}
		for _, c := range id {
			if !strings.ContainsRune("0123456789ABCDEF", c) {
				t.Errorf("pass id %q contains non-hex character %q", id, c)
			}
		}
		seen[id] = true
	}
	// 100 draws from a 16^6 space colliding down to a handful would mean the
	// generator is broken.
	if len(seen) < 90 {
		t.Errorf("only %d distinct ids in 100 draws", len(seen))
	}
}

func TestParseValidity(t *testing.T) {
	t.Run("datetime", func(t *testing.T) {
		got, err := parseValidity("2026-09-01 09:30:00", false)
		if err != nil {
			t.Fatal(err)
		}
		if got.Hour() != 9 || got.Minute() != 30 {
			t.Errorf("got %v, want 09:30 IST", got)
		}
		if got.Location() != timeutil.IST {
			t.Errorf("location = %v, want IST", got.Location())
		}
	})

	t.Run("bare date start", func(t *testing.T) {
		got, err := parseValidity("2026-09-01", false)
		if err != nil {
			t.Fatal(err)
		}
		if got.Hour() != 0 || got.Minute() != 0 {
			t.Errorf("got %v, want midnight IST", got)
		}
	})

	t.Run("bare date expands to end of day", func(t *testing.T) {
		got, err := parseValidity("2026-09-01", true)
		if err != nil {
			t.Fatal(err)
		}
		if got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 {
			t.Errorf("got %v, want 23:59:59 IST", got)
		}
		if got.Day() != 1 {
			t.Errorf("got day %d, want 1", got.Day())
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := parseValidity("tomorrow", false); err != ErrBadDateFormat {
			t.Errorf("err = %v, want ErrBadDateFormat", err)
		}
	})
}
