// Package edit replaces the fields of an existing entry.
package edit

import (
	"context"
	"io"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
)

type Edit struct {
	Board *app.Board
	ID    string
	// Fill copies the given flags onto the draft loaded from the entry.
	Fill  func(d *entry.Draft)
	Image string
	Audio string
	JSON  bool

	Printer *printers.PrettyPrint
	Out     io.Writer
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Board == nil {
		return app.ErrNoAPI
	}
	if err := n.Board.Refresh(ctx); err != nil {
		return err
	}
	if err := n.Board.OpenEdit(n.ID); err != nil {
		return err
	}
	defer n.Board.CancelEdit()

	if n.Fill != nil {
		if err := n.Board.UpdateDraft(app.EditDraft, n.Fill); err != nil {
			return err
		}
	}
	d := n.Board.Draft(app.EditDraft)
	if err := d.Validate(); err != nil {
		return err
	}
	uploaded, err := n.Board.UploadFiles(ctx, app.EditDraft, n.Image, n.Audio)
	if err != nil {
		n.Board.DiscardUploads(ctx, uploaded)
		return err
	}

	if err := n.Board.SubmitEdit(ctx); err != nil {
		// A session still open means the update was not saved.
		if n.Board.EditState() == app.Editing {
			n.Board.DiscardUploads(ctx, uploaded)
		}
		return err
	}
	updated, err := app.Find(n.Board.Entries(), n.ID)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, updated)
	}
	n.Printer.Title("Updated")
	n.Printer.Entry(updated)
	return nil
}
