package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/entry"
)

const (
	layoutDay      = "2006-1-2"
	layoutDayShort = "1/2"
	layoutMonth    = "2006-01"
)

// DateOptions
type DateOptions struct {
	On    string
	Month string
}

func AddOnArgs(cmd *cobra.Command, o *DateOptions, usage string) {
	cmd.Flags().StringVar(&o.On, "on", "", usage+
		` Example: --on=2024-05-01, --on=5/1, --on=today.`)
}

func AddMonthArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Month to show, example: --month=2024-05. Defaults to the current month.`)
}

// Day returns the --on value as a date key, or "" when unset.
func (o *DateOptions) Day(now time.Time) (string, error) {
	return ParseDay(o.On, now)
}

// ParseDay accepts "today", "yesterday", 2024-5-1 and 5/1. A month/day
// without a year that would land in the future is taken from last year.
func ParseDay(s string, now time.Time) (string, error) {
	switch s {
	case "":
		return "", nil
	case "today":
		return entry.DayKey(now), nil
	case "yesterday":
		return entry.DayKey(now.AddDate(0, 0, -1)), nil
	}
	t, err := time.ParseInLocation(layoutDay, s, now.Location())
	if err != nil {
		short, serr := time.ParseInLocation(layoutDayShort, s, now.Location())
		if serr != nil {
			return "", fmt.Errorf("%q is not a date, use YYYY-MM-DD or M/D", s)
		}
		t = short.AddDate(now.Year(), 0, 0)
		if t.After(now) {
			t = t.AddDate(-1, 0, 0)
		}
	}
	return entry.DayKey(t), nil
}

// GetMonth returns the --month value, or the month of now when unset.
func (o *DateOptions) GetMonth(now time.Time) (calendar.Month, error) {
	if o.Month == "" {
		return calendar.MonthOf(now), nil
	}
	t, err := time.ParseInLocation(layoutMonth, o.Month, now.Location())
	if err != nil {
		return calendar.Month{}, fmt.Errorf("%q is not a month, use YYYY-MM", o.Month)
	}
	return calendar.MonthOf(t), nil
}
