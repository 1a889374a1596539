// Package publish shares or hides an entry on the public feed.
package publish

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
)

type Publish struct {
	Board *app.Board
	ID    string
	// Want is the requested visibility. Nil flips the current one.
	Want *bool
	JSON bool

	Printer *printers.PrettyPrint
	Out     io.Writer
}

func (n *Publish) Do(ctx context.Context) error {
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
	if n.Want == nil || *n.Want != e.IsPublic {
		if err := n.Board.ToggleVisibility(ctx, n.ID); err != nil {
			return err
		}
		if e, err = app.Find(n.Board.Entries(), n.ID); err != nil {
			return err
		}
	}

	if n.JSON {
		return printers.JSON(n.Out, e)
	}
	state := "private"
	if e.IsPublic {
		state = "public"
	}
	n.Printer.Title(fmt.Sprintf("%s is now %s", e.DateKey(), state))
	n.Printer.List(e)
	return nil
}
