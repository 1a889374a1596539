package tui

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/diary/pkg/api"
	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
)

type fakeAPI struct {
	mu      sync.Mutex
	entries []*entry.Entry
	patched map[string]bool
	deleted []string
	listErr error
}

func (f *fakeAPI) ListDiaries(context.Context) ([]*entry.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*entry.Entry, 0, len(f.entries))
	for _, e := range f.entries {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeAPI) ListPublic(context.Context) ([]*entry.Entry, error) { return nil, nil }

func (f *fakeAPI) CreateDiary(context.Context, entry.Draft) (*entry.Entry, error) {
	return &entry.Entry{}, nil
}

func (f *fakeAPI) UpdateDiary(context.Context, string, entry.Draft) (*entry.Entry, error) {
	return &entry.Entry{}, nil
}

func (f *fakeAPI) SetVisibility(_ context.Context, id string, public bool) (*api.Visibility, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.patched == nil {
		f.patched = make(map[string]bool)
	}
	f.patched[id] = public
	for _, e := range f.entries {
		if e.ID == id {
			e.IsPublic = public
		}
	}
	return &api.Visibility{ID: id, IsPublic: public}, nil
}

func (f *fakeAPI) DeleteDiary(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func (f *fakeAPI) Upload(context.Context, entry.Kind, string, io.Reader) (*api.FileRef, error) {
	return &api.FileRef{}, nil
}

func (f *fakeAPI) DeleteFile(context.Context, string) error { return nil }

var testNow = time.Date(2024, time.May, 3, 9, 0, 0, 0, time.Local)

func newTestModel(t *testing.T, f *fakeAPI) Model {
	t.Helper()
	clock := func() time.Time { return testNow }
	board := app.NewBoard(&app.Service{API: f}, app.WithClock(clock))
	m := New(context.Background(), board, WithClock(clock))
	m = run(t, m, m.Init())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

// run executes cmd and feeds its messages back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				m = run(t, m, c)
			}
			return m
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m
}

func press(t *testing.T, m Model, msgs ...tea.KeyPressMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m = next.(Model)
		// Text inputs return cursor blink ticks; only follow commands
		// once the page is back in normal mode.
		if m.mode == modeNormal {
			m = run(t, m, cmd)
		}
	}
	return m
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: string(r), Code: r}
}

func sample() *fakeAPI {
	return &fakeAPI{entries: []*entry.Entry{
		{ID: "a", Date: "2024-05-01", Content: entry.String("first"), IsPublic: true},
		{ID: "b", Date: "2024-05-01T10:00:00", Content: entry.String("second")},
		{ID: "c", Date: "2024-05-03", Content: entry.String("third")},
	}}
}

func TestViewShowsCalendarAndEntries(t *testing.T) {
	m := newTestModel(t, sample())
	view := m.View()
	for _, want := range []string{"May 2024", "first", "second", "third"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if n := len(m.entList.Items()); n != 3 {
		t.Fatalf("expected 3 items, got %d", n)
	}
}

func TestPickDayFiltersAndTogglesOff(t *testing.T) {
	m := newTestModel(t, sample())

	// Cursor starts on the 3rd; two steps left lands on the 1st.
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyLeft}, tea.KeyPressMsg{Code: tea.KeyLeft}, tea.KeyPressMsg{Code: tea.KeyEnter})
	if got := m.board.Selected(); got != "2024-05-01" {
		t.Fatalf("expected 2024-05-01 selected, got %q", got)
	}
	if n := len(m.entList.Items()); n != 2 {
		t.Fatalf("expected 2 entries on the 1st, got %d", n)
	}

	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.board.Selected() != "" {
		t.Fatalf("picking the same day again should clear the filter")
	}
	if n := len(m.entList.Items()); n != 3 {
		t.Fatalf("expected all entries, got %d", n)
	}
}

func TestMonthNavigation(t *testing.T) {
	m := newTestModel(t, sample())
	m = press(t, m, key(']'))
	if !strings.Contains(m.View(), "June 2024") {
		t.Fatalf("expected June after ]")
	}
	m = press(t, m, key('g'))
	for _, r := range "2023-12" {
		m = press(t, m, key(r))
	}
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if month := m.board.Month(); month.Year() != 2023 || month.Index() != 11 {
		t.Fatalf("expected December 2023, got %s", month)
	}
}

func TestTogglePublishFromList(t *testing.T) {
	f := sample()
	m := newTestModel(t, f)
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.focus != focusEntries {
		t.Fatalf("tab should focus the entries")
	}
	e := m.currentEntry()
	if e == nil {
		t.Fatalf("expected a selected entry")
	}
	id, was := e.ID, e.IsPublic
	m = press(t, m, key('p'))
	if got, ok := f.patched[id]; !ok || got == was {
		t.Fatalf("expected visibility of %s flipped from %v, got %v", id, was, f.patched)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	f := sample()
	m := newTestModel(t, f)
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyTab}, key('d'))
	if m.mode != modeConfirmDelete {
		t.Fatalf("expected confirm mode")
	}
	m = press(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if len(f.deleted) != 0 || m.board.PendingDelete() != "" {
		t.Fatalf("esc should cancel the delete")
	}

	target := m.currentEntry().ID
	m = press(t, m, key('d'), key('y'), key('e'), key('s'), tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(f.deleted) != 1 || f.deleted[0] != target {
		t.Fatalf("expected %s deleted, got %v", target, f.deleted)
	}
	if n := len(m.entList.Items()); n != 2 {
		t.Fatalf("expected list refreshed to 2 entries, got %d", n)
	}
}

func TestBannerOnLoadFailure(t *testing.T) {
	f := sample()
	f.listErr = &api.Error{Status: 500}
	m := newTestModel(t, f)
	if !strings.Contains(m.View(), "failed to load diaries") {
		t.Fatalf("expected banner in view:\n%s", m.View())
	}
	m = press(t, m, key('x'))
	if strings.Contains(m.View(), "failed to load diaries") {
		t.Fatalf("x should dismiss the banner")
	}
}

func TestExpiredSession(t *testing.T) {
	f := sample()
	f.listErr = &api.Error{Status: 401}
	m := newTestModel(t, f)
	if !m.Expired() {
		t.Fatalf("401 on load should mark the session expired")
	}
}
