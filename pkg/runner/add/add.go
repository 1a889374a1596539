// Package add creates a diary entry from command line flags.
package add

import (
	"context"
	"io"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
)

type Add struct {
	Board *app.Board
	// Fill copies the given flags onto the fresh draft.
	Fill  func(d *entry.Draft)
	Image string
	Audio string
	JSON  bool

	Printer *printers.PrettyPrint
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Board == nil {
		return app.ErrNoAPI
	}
	if n.Fill != nil {
		if err := n.Board.UpdateDraft(app.CreateDraft, n.Fill); err != nil {
			return err
		}
	}
	// Nothing goes up for a draft the server would reject.
	d := n.Board.Draft(app.CreateDraft)
	if err := d.Validate(); err != nil {
		return err
	}
	uploaded, err := n.Board.UploadFiles(ctx, app.CreateDraft, n.Image, n.Audio)
	if err != nil {
		n.Board.DiscardUploads(ctx, uploaded)
		return err
	}

	created, err := n.Board.SubmitCreate(ctx)
	if created == nil {
		n.Board.DiscardUploads(ctx, uploaded)
		return err
	}
	// The entry exists even when the follow-up refresh failed.
	if n.JSON {
		return printers.JSON(n.Out, created)
	}
	n.Printer.Title("Saved")
	n.Printer.Entry(created)
	return err
}
