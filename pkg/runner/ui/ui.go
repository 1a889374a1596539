// Package ui runs the full screen diary browser.
package ui

import (
	"context"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/tui"
)

type UI struct {
	Board    *app.Board
	Settings entry.FieldSettings
	FileURL  func(string) string
}

func (d *UI) Do(ctx context.Context) error {
	if d.Board == nil {
		return app.ErrNoAPI
	}
	return tui.Run(ctx, d.Board, tui.WithSettings(d.Settings), tui.WithFileURL(d.FileURL))
}
