package add

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/diary/pkg/api/apitest"
	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
)

func TestAddWithImage(t *testing.T) {
	srv := apitest.New(t)
	now := func() time.Time { return time.Date(2024, 5, 3, 9, 0, 0, 0, time.Local) }
	board := app.NewBoard(&app.Service{API: srv.Client(apitest.Token)}, app.WithClock(now))

	path := filepath.Join(t.TempDir(), "cat.png")
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	a := Add{
		Board:   board,
		Fill:    func(d *entry.Draft) { d.Content = "cat day" },
		Image:   path,
		JSON:    true,
		Out:     &out,
		Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}},
	}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if srv.Len() != 1 {
		t.Fatalf("expected one entry, got %d", srv.Len())
	}
	all := board.Entries()
	if len(all) != 1 || all[0].Date != "2024-05-03" || all[0].ImageName == nil || !srv.HasFile(*all[0].ImageName) {
		t.Fatalf("unexpected entries %+v", all)
	}
	if !bytes.Contains(out.Bytes(), []byte(`"cat day"`)) {
		t.Fatalf("json output = %s", out.String())
	}
}

func TestAddEmptyIsRejected(t *testing.T) {
	srv := apitest.New(t)
	board := app.NewBoard(&app.Service{API: srv.Client(apitest.Token)})
	a := Add{Board: board, Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}}}

	if err := a.Do(context.Background()); err == nil {
		t.Fatalf("expected validation error")
	}
	if n := len(srv.Requests("POST", "/api/diaries")); n != 0 {
		t.Fatalf("expected no request, got %d", n)
	}
}

func writePNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cat.png")
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAddEmptyWithImageUploadsNothing(t *testing.T) {
	srv := apitest.New(t)
	board := app.NewBoard(&app.Service{API: srv.Client(apitest.Token)})
	a := Add{Board: board, Image: writePNG(t), Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}}}

	if err := a.Do(context.Background()); err == nil {
		t.Fatalf("expected validation error")
	}
	if n := len(srv.Requests("POST", "/api/upload/")); n != 0 {
		t.Fatalf("expected no uploads, got %d", n)
	}
	if n := len(srv.Requests("POST", "/api/diaries")); n != 0 {
		t.Fatalf("expected no create, got %d", n)
	}
}

func TestAddFailureDeletesUpload(t *testing.T) {
	srv := apitest.New(t)
	srv.Fail["POST /api/diaries"] = 500
	board := app.NewBoard(&app.Service{API: srv.Client(apitest.Token)})
	a := Add{
		Board:   board,
		Fill:    func(d *entry.Draft) { d.Content = "cat day" },
		Image:   writePNG(t),
		Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}},
	}

	if err := a.Do(context.Background()); err == nil {
		t.Fatalf("expected create error")
	}
	if n := len(srv.Requests("POST", "/api/upload/")); n != 1 {
		t.Fatalf("expected one upload, got %d", n)
	}
	name := board.Draft(app.CreateDraft).ImageName
	if name == "" {
		t.Fatalf("draft lost the upload")
	}
	if srv.HasFile(name) {
		t.Fatalf("unsaved upload %s left on the server", name)
	}
	if n := len(srv.Requests("DELETE", "/api/files/")); n != 1 {
		t.Fatalf("expected one file delete, got %d", n)
	}
}
