// Package report summarizes a month of diary entries.
package report

import (
	"context"
	"io"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/printers"
)

type Report struct {
	Service *app.Service
	Month   calendar.Month
	JSON    bool

	Printer *printers.PrettyPrint
	Out     io.Writer
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return app.ErrNoAPI
	}
	res, err := n.Service.Report(ctx, n.Month)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, res)
	}
	n.Printer.Report(res)
	return nil
}
