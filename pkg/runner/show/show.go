// Package show prints one entry in full.
package show

import (
	"context"
	"io"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
)

type Show struct {
	Board *app.Board
	ID    string
	JSON  bool

	Printer *printers.PrettyPrint
	Out     io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Board == nil {
		return app.ErrNoAPI
	}
	if err := n.Board.Refresh(ctx); err != nil {
		return err
	}
	e, err := app.Find(n.Board.Entries(), n.ID)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, e)
	}
	n.Printer.Entry(e)
	return nil
}
