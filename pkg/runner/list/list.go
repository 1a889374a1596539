// Package list prints the user's diary entries, optionally narrowed to a day.
package list

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
)

type List struct {
	Board *app.Board
	// On narrows the list to one day key.
	On string
	// Month narrows the list to a month when On is empty.
	Month    *calendar.Month
	Calendar bool
	Full     bool
	JSON     bool

	Printer *printers.PrettyPrint
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Board == nil {
		return app.ErrNoAPI
	}
	if err := n.Board.Refresh(ctx); err != nil {
		return err
	}

	if n.On != "" {
		n.Board.SelectDate(n.On)
		t, err := entry.ParseDateKey(n.On)
		if err != nil {
			return err
		}
		n.Board.ShowMonth(t)
	} else if n.Month != nil {
		n.Board.ShowMonth(n.Month.First())
	}

	entries := n.Board.Visible()
	if n.On == "" && n.Month != nil {
		month := *n.Month
		inMonth := entries[:0:0]
		for _, e := range entries {
			if month.Contains(e.DateKey()) {
				inMonth = append(inMonth, e)
			}
		}
		entries = inMonth
	}

	if n.JSON {
		return printers.JSON(n.Out, entries)
	}

	pp := n.Printer
	if n.Calendar {
		pp.Calendar(n.Board.Month(), n.Board.Counts(), n.Board.Selected())
	}
	title := "Diary"
	switch {
	case n.On != "":
		title = fmt.Sprintf("Diary on %s", n.On)
	case n.Month != nil:
		title = fmt.Sprintf("Diary for %s", n.Month)
	}
	pp.TitleWithCount(title, len(entries))
	if n.Full {
		for _, e := range entries {
			pp.Entry(e)
		}
		return nil
	}
	pp.List(entries...)
	return nil
}
