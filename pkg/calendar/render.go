package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/diary/pkg/entry"
)

// Options controls the styling of the rendered calendar.
type Options struct {
	TitleStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	EntryStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	CursorStyle   lipgloss.Style
	ShowTitle     bool
	ShowHeader    bool
	// Cursor is the day key the keyboard cursor is on, if any.
	Cursor string
}

// DefaultOptions returns the styling used for calendar rendering.
func DefaultOptions() Options {
	return Options{
		TitleStyle:    lipgloss.NewStyle().Bold(true),
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		EmptyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		EntryStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		CursorStyle:   lipgloss.NewStyle().Reverse(true),
		ShowTitle:     true,
		ShowHeader:    true,
	}
}

// PlainOptions renders without any styling.
func PlainOptions() Options {
	return Options{ShowTitle: true, ShowHeader: true}
}

const cellWidth = 4

var weekdays = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Render produces a multi-line calendar for month. Each day cell shows the
// day number followed by the number of entries on that day ("-" for none).
func Render(month Month, counts map[string]int, selected string, now time.Time, opts Options) string {
	var lines []string
	if opts.ShowTitle {
		title := month.String()
		width := 7*cellWidth + 6
		pad := (width - len(title)) / 2
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+opts.TitleStyle.Render(title))
	}
	if opts.ShowHeader {
		header := make([]string, len(weekdays))
		for i, w := range weekdays {
			header[i] = opts.HeaderStyle.Render(fmt.Sprintf("%-*s", cellWidth, w))
		}
		lines = append(lines, strings.Join(header, " "))
	}

	today := entry.DayKey(now)
	for _, week := range month.Weeks() {
		cells := make([]string, 0, 7)
		for _, key := range week {
			if key == nil {
				cells = append(cells, opts.EmptyStyle.Render(strings.Repeat(" ", cellWidth)))
				continue
			}
			cells = append(cells, renderDay(*key, counts[*key], *key == today, *key == selected, opts))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return strings.Join(lines, "\n")
}

func renderDay(key string, count int, isToday, isSelected bool, opts Options) string {
	text := fmt.Sprintf("%2d %s", Day(key), countGlyph(count))

	style := opts.EmptyStyle
	if count > 0 {
		style = opts.EntryStyle
	}
	if isToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if isSelected {
		style = style.Inherit(opts.SelectedStyle)
	}
	if opts.Cursor != "" && key == opts.Cursor {
		style = style.Inherit(opts.CursorStyle)
	}
	return style.Render(text)
}

func countGlyph(count int) string {
	switch {
	case count <= 0:
		return "-"
	case count > 9:
		return "+"
	default:
		return fmt.Sprintf("%d", count)
	}
}
