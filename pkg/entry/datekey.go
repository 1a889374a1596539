package entry

import (
	"strings"
	"time"
)

const layoutISO = "2006-01-02"

// DateKey turns a date as stored on an entry ("2024-05-01" or an ISO
// timestamp such as "2024-05-01T10:00:00Z") into the calendar day it
// belongs to. Strings without a 'T' are returned unchanged, so the result
// is never empty for a non-empty input and DateKey(DateKey(s)) == DateKey(s).
func DateKey(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// DayKey formats t as a date key in t's location.
func DayKey(t time.Time) string {
	return t.Format(layoutISO)
}

// ParseDateKey parses a YYYY-MM-DD key in the local time zone.
func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(layoutISO, key, time.Local)
}
