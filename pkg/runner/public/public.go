// Package public prints the public feed of every author.
package public

import (
	"context"
	"io"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/printers"
)

type Public struct {
	Service *app.Service
	On      string
	Full    bool
	JSON    bool

	Printer *printers.PrettyPrint
	Out     io.Writer
}

func (n *Public) Do(ctx context.Context) error {
	if n.Service == nil {
		return app.ErrNoAPI
	}
	all, err := n.Service.Public(ctx)
	if err != nil {
		return err
	}
	entries := calendar.Filter(all, n.On)
	if n.JSON {
		return printers.JSON(n.Out, entries)
	}
	n.Printer.TitleWithCount("Public diaries", len(entries))
	if n.Full {
		for _, e := range entries {
			n.Printer.Entry(e)
		}
		return nil
	}
	n.Printer.List(entries...)
	return nil
}
