package remove

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tableflip.dev/diary/pkg/api/apitest"
	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
)

func setup(t *testing.T) (*apitest.Server, *app.Board) {
	t.Helper()
	srv := apitest.New(t)
	srv.Seed(&entry.Entry{
		ID:        "e1",
		Date:      "2024-05-01",
		Content:   entry.String("x"),
		ImageName: entry.String("keep.png"),
	})
	return srv, app.NewBoard(&app.Service{API: srv.Client(apitest.Token)})
}

func TestRemoveDeclined(t *testing.T) {
	srv, board := setup(t)
	r := Remove{
		Board:   board,
		ID:      "e1",
		Confirm: func(string) (bool, error) { return false, nil },
		Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}},
	}
	if err := r.Do(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v", err)
	}
	if srv.Entry("e1") == nil || len(srv.Requests("DELETE", "/api/diaries/")) != 0 {
		t.Fatalf("nothing should be deleted")
	}
	if board.PendingDelete() != "" {
		t.Fatalf("pending delete should be cleared")
	}
}

func TestRemoveConfirmed(t *testing.T) {
	srv, board := setup(t)
	var label string
	r := Remove{
		Board: board,
		ID:    "e1",
		Confirm: func(l string) (bool, error) {
			label = l
			return true, nil
		},
		Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}},
	}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if label != "Delete the entry of 2024-05-01" {
		t.Fatalf("label = %q", label)
	}
	if srv.Entry("e1") != nil {
		t.Fatalf("entry should be gone")
	}
	if !srv.HasFile("keep.png") {
		t.Fatalf("attachments stay in storage")
	}
	if len(board.Entries()) != 0 {
		t.Fatalf("board should be refreshed")
	}
}

func TestRemoveFailureKeepsPending(t *testing.T) {
	srv, board := setup(t)
	srv.Fail["DELETE /api/diaries/"] = 500

	r := Remove{Board: board, ID: "e1", Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}}}
	if err := r.Do(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if board.PendingDelete() != "e1" {
		t.Fatalf("pending = %q", board.PendingDelete())
	}
	if board.Err() != "forced failure" {
		t.Fatalf("banner = %q", board.Err())
	}
}
