package options

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/api"
	"tableflip.dev/diary/pkg/entry"
)

func TestParseDay(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"":           "",
		"today":      "2024-03-10",
		"yesterday":  "2024-03-09",
		"2024-5-1":   "2024-05-01",
		"2023-12-31": "2023-12-31",
		"3/1":        "2024-03-01",
		"12/25":      "2023-12-25",
	}
	for in, want := range cases {
		got, err := ParseDay(in, now)
		if err != nil {
			t.Fatalf("ParseDay(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseDay(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseDay("someday", now); err == nil {
		t.Fatalf("expected an error for garbage")
	}
}

func TestGetMonth(t *testing.T) {
	now := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	o := &DateOptions{}
	m, err := o.GetMonth(now)
	if err != nil || m.Year() != 2024 || m.Index() != 2 {
		t.Fatalf("default month = %s, %v", m, err)
	}
	o.Month = "2023-11"
	m, err = o.GetMonth(now)
	if err != nil || m.Year() != 2023 || m.Index() != 10 {
		t.Fatalf("explicit month = %s, %v", m, err)
	}
	o.Month = "November"
	if _, err := o.GetMonth(now); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestDraftApplyOnlyChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "edit"}
	o := &DraftOptions{}
	fs := entry.DefaultFieldSettings()
	fs[entry.Gratitude] = false
	AddDraftArgs(cmd, o, fs, true)

	if err := cmd.ParseFlags([]string{"--events", "went hiking", "--gratitude", "sun", "--public", "--clear-image"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if f := cmd.Flags().Lookup("gratitude"); f == nil || !f.Hidden {
		t.Fatalf("hidden fields should still be registered but hidden")
	}

	d := entry.Draft{
		Date:      "2024-05-01",
		Content:   "keep me",
		ImageURL:  "/uploads/a.png",
		ImageName: "a.png",
		AudioName: "b.mp3",
	}
	o.Apply(&d, "")

	if d.Content != "keep me" || d.Date != "2024-05-01" {
		t.Fatalf("unset flags should not change the draft: %+v", d)
	}
	if d.Events != "went hiking" || d.Gratitude != "sun" || !d.IsPublic {
		t.Fatalf("set flags should be applied: %+v", d)
	}
	if d.ImageName != "" || d.ImageURL != "" || d.AudioName != "b.mp3" {
		t.Fatalf("only the image should be cleared: %+v", d)
	}
}

func TestHandleErrorJSON(t *testing.T) {
	var out bytes.Buffer
	prev := color.Output
	color.Output = &out
	defer func() { color.Output = prev }()

	plain := &OutputOptions{}
	boom := errors.New("boom")
	if err := plain.HandleError(boom); err != boom {
		t.Fatalf("text mode should return the error, got %v", err)
	}

	o := &OutputOptions{JSON: true}
	err := fmt.Errorf("delete diary request failed: %w", &api.Error{Status: 404, Message: "diary not found"})
	if got := o.HandleError(err); got != nil {
		t.Fatalf("json mode should swallow the error, got %v", got)
	}
	if want := `{"error":"diary not found","status":404}`; strings.TrimSpace(out.String()) != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}
