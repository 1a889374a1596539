// Package calendar prints the month grid with the number of entries per day.
package calendar

import (
	"context"
	"io"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/printers"
)

type Calendar struct {
	Board *app.Board
	Month calendar.Month
	// Months is how many consecutive months to print, starting at Month.
	Months int
	JSON   bool

	Printer *printers.PrettyPrint
	Out     io.Writer
}

type monthCounts struct {
	Month  calendar.Month `json:"month"`
	Counts map[string]int `json:"counts"`
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Board == nil {
		return app.ErrNoAPI
	}
	if err := n.Board.Refresh(ctx); err != nil {
		return err
	}
	months := n.Months
	if months < 1 {
		months = 1
	}
	counts := n.Board.Counts()

	var out []monthCounts
	for i := 0; i < months; i++ {
		month := n.Month.Move(i)
		if n.JSON {
			mc := monthCounts{Month: month, Counts: map[string]int{}}
			for k, v := range counts {
				if month.Contains(k) {
					mc.Counts[k] = v
				}
			}
			out = append(out, mc)
			continue
		}
		n.Printer.Calendar(month, counts, "")
	}
	if n.JSON {
		return printers.JSON(n.Out, out)
	}
	return nil
}
