package logging

import "testing"

func TestNewLevels(t *testing.T) {
	for _, lvl := range []string{"", "debug", "info", "warn", "error"} {
		log, err := New(Config{Level: lvl})
		if err != nil {
			t.Fatalf("level %q: %v", lvl, err)
		}
		if log == nil {
			t.Fatalf("level %q: nil logger", lvl)
		}
	}
	if _, err := New(Config{Level: "chatty"}); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
	if _, err := New(Config{Level: "info", Format: "json"}); err != nil {
		t.Fatalf("json format: %v", err)
	}
}
