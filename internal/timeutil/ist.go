package timeutil

import (
	"time"
)

// IST is the campus time zone (UTC+5:30). Pass validity windows are always
// interpreted in IST regardless of where the server runs.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: fixed zone if the tz database is unavailable
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// Now returns the current time in IST.
func Now() time.Time {
	return time.Now().In(IST)
}

// ToIST converts any time to IST.
func ToIST(t time.Time) time.Time {
	return t.In(IST)
}

// ParseInIST parses a time string, treating naive values as IST wall time.
func ParseInIST(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, IST)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// StartOfDay returns 00:00:00 IST for the given time's date.
func StartOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// SameISTDate reports whether two instants fall on the same IST calendar day.
func SameISTDate(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// Layouts accepted for validity windows from clients.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
