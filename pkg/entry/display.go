package entry

import (
	"tableflip.dev/diary/pkg/glyph"
)

// Row is the one line summary used by compact listings.
func (e *Entry) Row() (string, string, string, string) {
	visibility := "private"
	switch {
	case e.HasAuthor():
		visibility = "@" + e.Author.Name
	case e.IsPublic:
		visibility = "public"
	}
	return e.DateKey(), glyph.WeatherLabel(deref(e.Weather)), visibility, e.Title()
}
