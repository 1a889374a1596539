// Package key prints the legend of weather glyphs and reflection fields.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/glyph"
)

// Key prints a legend of the symbols used in listings.
type Key struct {
	Out io.Writer
}

func (k *Key) Do(_ context.Context) error {
	w := k.Out
	if w == nil {
		w = color.Output
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Weather"), bold.Sprint("Value"))
	for _, g := range glyph.Weather() {
		if g.Key == "" {
			continue
		}
		tbl.AddRow(g.Symbol, g.Key)
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Fields"), bold.Sprint("Flag"), bold.Sprint("Meaning"))
	for _, f := range entry.Fields() {
		tbl.AddRow(f.Icon, string(f.Key), f.Label)
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Listing"), bold.Sprint("Meaning"))
	tbl.AddRow("public", "shared on the public feed")
	tbl.AddRow("private", "only visible to you")
	tbl.AddRow("@name", "written by another author")
	_, _ = fmt.Fprintln(w, tbl)
	return nil
}
