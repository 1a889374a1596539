package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/entry"
)

func init() {
	color.NoColor = true
}

func TestEntryHonorsFieldSettings(t *testing.T) {
	fs := entry.DefaultFieldSettings()
	fs[entry.Gratitude] = false

	var buf bytes.Buffer
	now := time.Date(2024, time.May, 3, 12, 0, 0, 0, time.UTC)
	pp := &PrettyPrint{
		Out:     &buf,
		Fields:  fs,
		Now:     func() time.Time { return now },
		FileURL: func(p string) string { return "http://diary.test" + p },
	}
	sunny := "sunny"
	e := &entry.Entry{
		ID:        "a",
		Date:      "2024-05-01T08:00:00Z",
		Weather:   &sunny,
		Content:   entry.String("Walked to the lake."),
		Events:    entry.String("Met an old friend"),
		Gratitude: entry.String("secret thanks"),
		ImageURL:  entry.String("/uploads/lake.png"),
		ImageName: entry.String("lake.png"),
		Created:   entry.Timestamp{Time: now.Add(-2 * time.Hour)},
	}
	pp.Entry(e)
	out := buf.String()

	for _, want := range []string{"2024-05-01", "sunny", "private", "Walked to the lake.", "Met an old friend", "lake.png http://diary.test/uploads/lake.png", "2 hours ago"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret thanks") {
		t.Fatalf("hidden field was printed:\n%s", out)
	}
}

func TestListShowsAuthorForPublicFeed(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.List(
		&entry.Entry{ID: "p", Date: "2024-05-01", Content: entry.String("hi"), Author: &entry.Author{Name: "Grace"}},
		&entry.Entry{ID: "o", Date: "2024-05-02", Content: entry.String("mine"), IsPublic: true},
	)
	out := buf.String()
	if !strings.Contains(out, "Grace") || !strings.Contains(out, "public") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
}

func TestCalendarAndReport(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Now: func() time.Time { return time.Date(2024, time.May, 3, 0, 0, 0, 0, time.Local) }}
	month := calendar.NewMonth(2024, 4)
	pp.Calendar(month, map[string]int{"2024-05-01": 1}, "")
	if !strings.Contains(buf.String(), "May 2024") || !strings.Contains(buf.String(), " 1 1") {
		t.Fatalf("unexpected calendar:\n%s", buf.String())
	}

	buf.Reset()
	pp.Report(app.ReportResult{Month: month, Entries: 3, Days: 2, LongestStreak: 2, Words: []string{"calm"}})
	if !strings.Contains(buf.String(), "3 entries on 2 of 31 days") || !strings.Contains(buf.String(), "calm") {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}
