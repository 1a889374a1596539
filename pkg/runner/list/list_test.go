package list

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/api/apitest"
	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
)

func init() {
	color.NoColor = true
}

func setup(t *testing.T) *app.Board {
	t.Helper()
	srv := apitest.New(t)
	srv.Seed(
		&entry.Entry{ID: "a", Date: "2024-05-01", Content: entry.String("first")},
		&entry.Entry{ID: "b", Date: "2024-05-01T22:00:00Z", Content: entry.String("late")},
		&entry.Entry{ID: "c", Date: "2024-04-30", Content: entry.String("april")},
	)
	return app.NewBoard(&app.Service{API: srv.Client(apitest.Token)})
}

func TestListOnDay(t *testing.T) {
	var out bytes.Buffer
	l := List{Board: setup(t), On: "2024-05-01", JSON: true, Out: &out}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var got []entry.Entry
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries on 2024-05-01, got %d", len(got))
	}
}

func TestListMonth(t *testing.T) {
	var out bytes.Buffer
	month := calendar.NewMonth(2024, 3)
	l := List{
		Board:    setup(t),
		Month:    &month,
		Calendar: true,
		Printer:  &printers.PrettyPrint{Out: &out},
	}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "April 2024") || !strings.Contains(s, "april") || strings.Contains(s, "first") {
		t.Fatalf("output = %s", s)
	}
}
