package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/glyph"
)

// Calendar prints the month grid with per-day entry counts.
func (pp *PrettyPrint) Calendar(month calendar.Month, counts map[string]int, selected string) {
	opts := calendar.DefaultOptions()
	if color.NoColor {
		opts = calendar.PlainOptions()
	}
	_, _ = fmt.Fprintln(pp.out(), calendar.Render(month, counts, selected, pp.now(), opts))
	pp.NewLine()
}

// Report prints a month summary.
func (pp *PrettyPrint) Report(res app.ReportResult) {
	w := pp.out()
	pp.Title(res.Month.String())
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)

	if res.Entries == 0 {
		_, _ = faint.Fprint(w, " no entries\n\n")
		return
	}

	days := calendar.DaysIn(res.Month.First())
	_, _ = fmt.Fprintf(w, "  %s entries on %s of %d days\n", bold.Sprint(res.Entries), bold.Sprint(res.Days), days)
	_, _ = fmt.Fprintf(w, "  longest streak: %s days\n", bold.Sprint(res.LongestStreak))
	_, _ = fmt.Fprintf(w, "  public: %d  with attachments: %d\n", res.Public, res.Attachment)

	if len(res.Weather) > 0 {
		parts := make([]string, 0, len(res.Weather))
		for _, wc := range res.Weather {
			parts = append(parts, fmt.Sprintf("%s x%d", glyph.WeatherLabel(wc.Weather), wc.Count))
		}
		_, _ = fmt.Fprintf(w, "  weather: %s\n", strings.Join(parts, ", "))
	}
	if len(res.Words) > 0 {
		_, _ = fmt.Fprintf(w, "  in one word: %s\n", pp.wrap(strings.Join(res.Words, ", "), 2)[2:])
	}
	pp.NewLine()
}
