package calendar

import (
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/diary/pkg/entry"
)

func countKeys(cells []*string) (keys int, leading int) {
	seenKey := false
	for _, c := range cells {
		if c == nil {
			if !seenKey {
				leading++
			}
			continue
		}
		seenKey = true
		keys++
	}
	return keys, leading
}

func TestCellsAlwaysWholeWeeks(t *testing.T) {
	for year := 2019; year <= 2026; year++ {
		for month := 0; month < 12; month++ {
			cells := Cells(year, month)
			if len(cells)%7 != 0 {
				t.Fatalf("%d-%02d: %d cells is not a multiple of 7", year, month+1, len(cells))
			}
			first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
			keys, leading := countKeys(cells)
			if keys != DaysIn(first) {
				t.Fatalf("%d-%02d: %d day cells, want %d", year, month+1, keys, DaysIn(first))
			}
			if leading != int(first.Weekday()) {
				t.Fatalf("%d-%02d: %d leading blanks, want %d", year, month+1, leading, first.Weekday())
			}
			if weeks := (leading + keys + 6) / 7; len(cells)/7 != weeks {
				t.Fatalf("%d-%02d: %d rows, want %d", year, month+1, len(cells)/7, weeks)
			}
		}
	}
}

func TestCellsFebruaryNonLeap(t *testing.T) {
	cells := Cells(2023, 1)
	keys, _ := countKeys(cells)
	if keys != 28 {
		t.Fatalf("expected 28 day cells, got %d", keys)
	}
	var firstKey, lastKey string
	for _, c := range cells {
		if c == nil {
			continue
		}
		if firstKey == "" {
			firstKey = *c
		}
		lastKey = *c
	}
	if firstKey != "2023-02-01" || lastKey != "2023-02-28" {
		t.Fatalf("unexpected range %s..%s", firstKey, lastKey)
	}
}

func TestCellsMonthStartingSunday(t *testing.T) {
	// March 2020 has 31 days and starts on a Sunday.
	cells := Cells(2020, 2)
	if cells[0] == nil || *cells[0] != "2020-03-01" {
		t.Fatalf("expected no leading padding, first cell %v", cells[0])
	}
	if len(cells) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(cells))
	}
}

func TestMonthMoveRollsOverYears(t *testing.T) {
	dec := NewMonth(2024, 11)
	jan := dec.Move(1)
	if jan.Year() != 2025 || jan.Index() != 0 {
		t.Fatalf("expected January 2025, got %s", jan)
	}
	back := jan.Move(-1)
	if back.Year() != 2024 || back.Index() != 11 {
		t.Fatalf("expected December 2024, got %s", back)
	}
	if far := NewMonth(2024, 0).Move(-13); far.Year() != 2022 || far.Index() != 11 {
		t.Fatalf("expected December 2022, got %s", far)
	}
	if !jan.Contains("2025-01-31") || jan.Contains("2024-01-31") {
		t.Fatalf("Contains mismatch for %s", jan)
	}
}

func newEntry(id, date string) *entry.Entry {
	return &entry.Entry{ID: id, Date: date}
}

func TestCountByDate(t *testing.T) {
	entries := []*entry.Entry{
		newEntry("a", "2024-05-01"),
		newEntry("b", "2024-05-01T10:00:00"),
		newEntry("c", "2024-05-02"),
	}
	got := CountByDate(entries)
	if len(got) != 2 || got["2024-05-01"] != 2 || got["2024-05-02"] != 1 {
		t.Fatalf("unexpected counts %v", got)
	}

	got = CountByDate([]*entry.Entry{newEntry("x", "garbage")})
	if got["garbage"] != 1 {
		t.Fatalf("unparseable dates should keep their own key, got %v", got)
	}
}

func TestFilterAndSelectionToggle(t *testing.T) {
	entries := []*entry.Entry{
		newEntry("a", "2024-05-01"),
		newEntry("b", "2024-05-01T10:00:00"),
		newEntry("c", "2024-05-02"),
	}

	var sel Selection
	if got := Filter(entries, sel.Current()); len(got) != 3 {
		t.Fatalf("no selection should return everything, got %d", len(got))
	}

	sel.Toggle("2024-05-01")
	if got := Filter(entries, sel.Current()); len(got) != 2 {
		t.Fatalf("expected 2 entries on 2024-05-01, got %d", len(got))
	}

	sel.Toggle("2024-05-02")
	if got := Filter(entries, sel.Current()); len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("selecting another day should replace the filter, got %v", got)
	}

	sel.Toggle("2024-05-02")
	if sel.Current() != "" {
		t.Fatalf("selecting the same day again should clear, got %q", sel.Current())
	}
	if got := Filter(entries, sel.Current()); len(got) != 3 {
		t.Fatalf("cleared selection should return everything, got %d", len(got))
	}
}

func TestSelectionConcurrentToggles(t *testing.T) {
	var sel Selection
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sel.Toggle("2024-05-01")
		}()
	}
	wg.Wait()
	// An even number of clicks on the same day leaves nothing selected.
	if sel.Current() != "" {
		t.Fatalf("expected selection cleared, got %q", sel.Current())
	}
}

func TestRenderMarksCounts(t *testing.T) {
	month := NewMonth(2024, 4)
	counts := map[string]int{"2024-05-01": 2, "2024-05-31": 12}
	out := Render(month, counts, "", time.Date(2024, time.May, 3, 0, 0, 0, 0, time.Local), PlainOptions())
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "May 2024") {
		t.Fatalf("expected title, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Su") {
		t.Fatalf("expected weekday header, got %q", lines[1])
	}
	if !strings.Contains(out, " 1 2") {
		t.Fatalf("expected count for the 1st, got\n%s", out)
	}
	if !strings.Contains(out, "31 +") {
		t.Fatalf("expected overflow marker for the 31st, got\n%s", out)
	}
	if !strings.Contains(out, " 2 -") {
		t.Fatalf("expected empty marker for the 2nd, got\n%s", out)
	}
	// May 2024 spans five weeks.
	if len(lines) != 2+5 {
		t.Fatalf("expected 7 lines, got %d", len(lines))
	}
}
