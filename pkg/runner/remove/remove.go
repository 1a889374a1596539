// Package remove deletes an entry after confirmation.
package remove

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
)

// ErrAborted is returned when the user declines the confirmation.
var ErrAborted = errors.New("delete aborted")

type Remove struct {
	Board *app.Board
	ID    string
	// Confirm asks the user before deleting. Nil deletes without asking.
	Confirm func(label string) (bool, error)

	Printer *printers.PrettyPrint
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Board == nil {
		return app.ErrNoAPI
	}
	if err := n.Board.Refresh(ctx); err != nil {
		return err
	}
	if err := n.Board.RequestDelete(n.ID); err != nil {
		return err
	}
	e, err := app.Find(n.Board.Entries(), n.ID)
	if err != nil {
		return err
	}

	if n.Confirm != nil {
		n.Printer.List(e)
		ok, err := n.Confirm(fmt.Sprintf("Delete the entry of %s", e.DateKey()))
		if err != nil {
			n.Board.CancelDelete()
			return err
		}
		if !ok {
			n.Board.CancelDelete()
			return ErrAborted
		}
	}

	if err := n.Board.ConfirmDelete(ctx); err != nil {
		return err
	}
	n.Printer.Title(fmt.Sprintf("Deleted the entry of %s", e.DateKey()))
	return nil
}
