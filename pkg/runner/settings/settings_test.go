package settings

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
)

func newStore(t *testing.T) *store.Settings {
	t.Helper()
	kv, err := store.Open(store.StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return store.NewSettings(kv)
}

func TestSettingsSetAndReset(t *testing.T) {
	st := newStore(t)
	pp := &printers.PrettyPrint{Out: &bytes.Buffer{}}

	s := Settings{Store: st, Set: []string{"gratitude=false", "learnings = true"}, Printer: pp}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	fs := st.Load()
	if fs.Visible(entry.Gratitude) || !fs.Visible(entry.Learnings) {
		t.Fatalf("settings not saved: %v", fs)
	}

	s = Settings{Store: st, Reset: true, Printer: pp}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !st.Load().Visible(entry.Gratitude) {
		t.Fatalf("reset should restore defaults")
	}
}

func TestSettingsRejectsBadAssignment(t *testing.T) {
	for _, in := range []string{"gratitude", "mood=true", "gratitude=maybe"} {
		st := newStore(t)
		s := Settings{Store: st, Set: []string{in}, Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}}}
		if err := s.Do(context.Background()); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestSettingsJSON(t *testing.T) {
	var out bytes.Buffer
	s := Settings{Store: newStore(t), JSON: true, Out: &out}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(out.String(), `"today_in_one_word": true`) {
		t.Fatalf("output = %s", out.String())
	}
}
