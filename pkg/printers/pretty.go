package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/glyph"
)

// PrettyPrint writes entries for humans.
type PrettyPrint struct {
	ShowID bool
	// Width is the column text is wrapped at.
	Width int
	// Fields decides which reflection fields are printed. Nil shows all.
	Fields entry.FieldSettings
	// FileURL turns a stored attachment path into a link.
	FileURL func(path string) string
	Out     io.Writer
	Now     func() time.Time
}

var (
	spacing = strings.Repeat(" ", len("7f3c9a2e-1b4d-4c8e-9f0a-6d5e4c3b2a10  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return 80
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now != nil {
		return pp.Now()
	}
	return time.Now()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Error prints a banner line.
func (pp *PrettyPrint) Error(msg string) {
	_, _ = color.New(color.FgHiRed, color.Bold).Fprintf(pp.out(), "! %s\n", msg)
}

// List prints one line per entry.
func (pp *PrettyPrint) List(entries ...*entry.Entry) {
	if len(entries) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	pub := color.New(color.FgGreen)
	priv := color.New(color.Faint)
	author := color.New(color.FgCyan)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width() / 2)
	for _, e := range entries {
		date, weather, visibility, title := e.Row()
		switch {
		case e.HasAuthor():
			visibility = author.Sprint(visibility)
		case e.IsPublic:
			visibility = pub.Sprint(visibility)
		default:
			visibility = priv.Sprint(visibility)
		}
		if pp.ShowID {
			tbl.AddRow(y.Sprint(e.ID), date, weather, visibility, title)
		} else {
			tbl.AddRow(date, weather, visibility, title)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Entry prints every visible field of one entry.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	w := pp.out()
	head := color.New(color.Bold)
	faint := color.New(color.Faint)
	label := color.New(color.FgHiBlue, color.Bold)

	_, _ = head.Fprint(w, e.DateKey())
	if e.Weather != nil && *e.Weather != "" {
		_, _ = fmt.Fprintf(w, "  %s", glyph.WeatherLabel(*e.Weather))
	}
	switch {
	case e.HasAuthor():
		_, _ = color.New(color.FgCyan).Fprintf(w, "  by %s", e.Author.Name)
	case e.IsPublic:
		_, _ = color.New(color.FgGreen).Fprint(w, "  public")
	default:
		_, _ = faint.Fprint(w, "  private")
	}
	if pp.ShowID {
		_, _ = faint.Fprintf(w, "  %s", e.ID)
	}
	_, _ = fmt.Fprintln(w)

	if e.Content != nil && strings.TrimSpace(*e.Content) != "" {
		_, _ = fmt.Fprintln(w, pp.wrap(*e.Content, 2))
	}

	for _, f := range pp.visible() {
		v := strings.TrimSpace(e.Field(f.Key))
		if v == "" {
			continue
		}
		_, _ = label.Fprintf(w, "  %s %s\n", f.Icon, f.Label)
		_, _ = fmt.Fprintln(w, pp.wrap(v, 4))
	}

	pp.attachment(w, "image", e.ImageURL, e.ImageName)
	pp.attachment(w, "audio", e.AudioURL, e.AudioName)

	stamp := e.Updated.Time
	if stamp.IsZero() {
		stamp = e.Created.Time
	}
	if !stamp.IsZero() {
		_, _ = faint.Fprintf(w, "  updated %s\n", humanize.RelTime(stamp, pp.now(), "ago", "from now"))
	}
	pp.NewLine()
}

func (pp *PrettyPrint) attachment(w io.Writer, kind string, url, name *string) {
	if name == nil || *name == "" {
		return
	}
	link := ""
	if url != nil {
		link = *url
		if pp.FileURL != nil {
			link = pp.FileURL(link)
		}
	}
	_, _ = color.New(color.Faint).Fprintf(w, "  %s: %s %s\n", kind, *name, link)
}

func (pp *PrettyPrint) visible() []entry.Field {
	if pp.Fields == nil {
		return entry.Fields()
	}
	return pp.Fields.VisibleFields()
}

func (pp *PrettyPrint) wrap(s string, margin uint) string {
	width := pp.width() - int(margin)
	if width < 20 {
		width = 20
	}
	return indent.String(wordwrap.String(strings.TrimSpace(s), width), margin)
}

// Settings prints the visibility of every reflection field.
func (pp *PrettyPrint) Settings(fs entry.FieldSettings) {
	on := color.New(color.FgGreen)
	off := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, f := range entry.Fields() {
		state := off.Sprint("hidden")
		if fs.Visible(f.Key) {
			state = on.Sprint("shown")
		}
		tbl.AddRow(f.Icon, string(f.Key), f.Label, state)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	if w == nil {
		w = color.Output
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// User prints the account details of u.
func (pp *PrettyPrint) User(u *entry.User) {
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(faint.Sprint("email"), u.Email)
	if u.DisplayName != "" {
		tbl.AddRow(faint.Sprint("name"), u.DisplayName)
	}
	tbl.AddRow(faint.Sprint("id"), u.ID)
	if !u.Created.Time.IsZero() {
		tbl.AddRow(faint.Sprint("joined"), humanize.Time(u.Created.Time))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Expiry prints when the session token stops working.
func (pp *PrettyPrint) Expiry(exp time.Time) {
	c := color.New(color.Faint)
	if !pp.now().Before(exp) {
		c = color.New(color.FgHiRed)
		_, _ = c.Fprintf(pp.out(), "session expired %s\n", humanize.RelTime(exp, pp.now(), "ago", "from now"))
		return
	}
	_, _ = c.Fprintf(pp.out(), "session expires %s\n", humanize.RelTime(exp, pp.now(), "ago", "from now"))
}
