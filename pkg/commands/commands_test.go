package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/api/apitest"
	"tableflip.dev/diary/pkg/entry"
)

// run executes the command line against a fresh tree and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	prev, noColor := color.Output, color.NoColor
	color.Output, color.NoColor = &out, true
	defer func() { color.Output, color.NoColor = prev, noColor }()

	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func setup(t *testing.T) *apitest.Server {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DIARY_CONFIG_PATH", dir)
	t.Setenv("DIARY_PATH", dir)
	srv := apitest.New(t)
	t.Setenv("DIARY_SERVER", srv.URL)
	return srv
}

func TestCommandTree(t *testing.T) {
	setup(t)
	want := []string{"login", "register", "logout", "whoami", "list", "public", "show",
		"calendar", "report", "add", "edit", "publish", "delete", "ui", "settings", "key", "info", "version"}
	cmd := New()
	for _, name := range want {
		if c, _, err := cmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("missing command %q", name)
		}
	}
}

func TestNotLoggedIn(t *testing.T) {
	setup(t)
	if _, err := run(t, "list"); err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoginAddListDelete(t *testing.T) {
	srv := setup(t)

	if _, err := run(t, "login", "--email", apitest.Email, "--password", apitest.Password); err != nil {
		t.Fatalf("login: %v", err)
	}

	out, err := run(t, "add", "walked to the lake", "--date", "2024-05-01", "--weather", "sunny", "--gratitude", "sun", "--json")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	var created entry.Entry
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if created.Date != "2024-05-01" || created.Field(entry.Gratitude) != "sun" {
		t.Fatalf("created = %+v", created)
	}

	out, err = run(t, "list", "--on", "2024-05-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "walked to the lake") {
		t.Fatalf("list output = %q", out)
	}

	if _, err := run(t, "publish", created.ID, "--public"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !srv.Entry(created.ID).IsPublic {
		t.Fatalf("entry should be public")
	}

	if _, err := run(t, "delete", created.ID, "--yes"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if srv.Len() != 0 {
		t.Fatalf("entry should be deleted")
	}

	if _, err := run(t, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := run(t, "list"); err == nil {
		t.Fatalf("expected error after logout")
	}
}

func TestJSONErrors(t *testing.T) {
	setup(t)
	out, err := run(t, "list", "--json")
	if err != nil {
		t.Fatalf("json mode should report errors on stdout, got %v", err)
	}
	if !strings.Contains(out, `"error"`) {
		t.Fatalf("output = %q", out)
	}
}

func TestVersion(t *testing.T) {
	setup(t)
	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("out = %q", out)
	}
	if _, err := run(t, "version", "-o", "toml"); err == nil {
		t.Fatalf("expected an unknown format error")
	}
}
