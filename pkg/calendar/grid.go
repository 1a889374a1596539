// Package calendar builds the month grid shown next to the diary list and
// the helpers that count and filter entries by calendar day.
package calendar

import (
	"fmt"
	"time"
)

// Month is the first day of a calendar month. The zero value is not valid;
// use MonthOf or NewMonth.
type Month struct {
	first time.Time
}

// NewMonth returns the month for year and a zero based month index. Indexes
// outside 0..11 roll over into neighbouring years.
func NewMonth(year, month int) Month {
	return Month{first: time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.Local)}
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return NewMonth(t.Year(), int(t.Month())-1)
}

// Move returns the month offset months away. time.Date normalizes the month
// so December+1 is January of the next year.
func (m Month) Move(offset int) Month {
	return Month{first: time.Date(m.first.Year(), m.first.Month()+time.Month(offset), 1, 0, 0, 0, 0, m.first.Location())}
}

// Year of the month.
func (m Month) Year() int { return m.first.Year() }

// Index is the zero based month index.
func (m Month) Index() int { return int(m.first.Month()) - 1 }

// First returns the first day of the month at midnight.
func (m Month) First() time.Time { return m.first }

// Contains reports whether the date key falls within the month.
func (m Month) Contains(key string) bool {
	return len(key) >= 7 && key[:7] == m.first.Format("2006-01")
}

func (m Month) String() string {
	return m.first.Format("January 2006")
}

// MarshalText encodes the month as YYYY-MM.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.first.Format("2006-01")), nil
}

// Grid returns the cells for the month. See Cells.
func (m Month) Grid() []*string {
	return Cells(m.Year(), m.Index())
}

// Weeks splits the grid into rows of seven cells, Sunday first.
func (m Month) Weeks() [][]*string {
	cells := m.Grid()
	weeks := make([][]*string, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// Cells lays out a month as a grid seven cells wide. Leading nil cells pad
// the first week up to the weekday of the 1st (Sunday is column 0), then one
// YYYY-MM-DD key per day follows, then trailing nil cells pad the last week.
// The length is always a multiple of seven.
func Cells(year, month int) []*string {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday())
	days := DaysIn(first)

	cells := make([]*string, 0, ((offset+days)+6)/7*7)
	for i := 0; i < offset; i++ {
		cells = append(cells, nil)
	}
	for day := 1; day <= days; day++ {
		key := fmt.Sprintf("%04d-%02d-%02d", first.Year(), int(first.Month()), day)
		cells = append(cells, &key)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}
	return cells
}

// DaysIn returns the number of days in t's month.
func DaysIn(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// Day extracts the day of month from a date key, or 0.
func Day(key string) int {
	if len(key) < 10 {
		return 0
	}
	var d int
	if _, err := fmt.Sscanf(key[8:10], "%d", &d); err != nil {
		return 0
	}
	return d
}
