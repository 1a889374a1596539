package auth

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/api/apitest"
	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
)

func init() {
	color.NoColor = true
}

func newSession(t *testing.T) *store.Session {
	t.Helper()
	kv, err := store.Open(store.StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return store.NewSession(kv)
}

func TestLoginStoresSession(t *testing.T) {
	srv := apitest.New(t)
	session := newSession(t)
	var out bytes.Buffer

	l := Login{
		Client:   srv.Client(""),
		Session:  session,
		Email:    apitest.Email,
		Password: apitest.Password,
		Printer:  &printers.PrettyPrint{Out: &out},
	}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok, err := session.Token(); err != nil || tok != apitest.Token {
		t.Fatalf("token = %q, %v", tok, err)
	}
	if u := session.User(); u == nil || u.Email != apitest.Email {
		t.Fatalf("user = %+v", u)
	}
	if !strings.Contains(out.String(), "Logged in as Me") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestLoginRejectedShowsServerMessage(t *testing.T) {
	srv := apitest.New(t)
	session := newSession(t)

	l := Login{
		Client:   srv.Client(""),
		Session:  session,
		Email:    apitest.Email,
		Password: "wrong",
		Printer:  &printers.PrettyPrint{Out: &bytes.Buffer{}},
	}
	err := l.Do(context.Background())
	if err == nil || err.Error() != "invalid email or password" {
		t.Fatalf("err = %v", err)
	}
	if _, err := session.Token(); !errors.Is(err, store.ErrNoSession) {
		t.Fatalf("nothing should be stored, got %v", err)
	}
}

func TestLoginPromptsForMissingPassword(t *testing.T) {
	srv := apitest.New(t)
	var asked []string

	l := Login{
		Client:  srv.Client(""),
		Session: newSession(t),
		Email:   apitest.Email,
		Prompter: Prompter{
			Password: func(label string) (string, error) {
				asked = append(asked, label)
				return apitest.Password, nil
			},
		},
		Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}},
	}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if len(asked) != 1 || asked[0] != "Password" {
		t.Fatalf("asked = %v", asked)
	}
}

func TestLoginWithoutPrompterNeedsFlags(t *testing.T) {
	srv := apitest.New(t)
	l := Login{Client: srv.Client(""), Session: newSession(t), Email: apitest.Email}
	if err := l.Do(context.Background()); err == nil || !strings.Contains(err.Error(), "password is required") {
		t.Fatalf("err = %v", err)
	}
	if n := len(srv.Requests("POST", "/api/auth/login")); n != 0 {
		t.Fatalf("expected no request, got %d", n)
	}
}

func TestRegisterConflict(t *testing.T) {
	srv := apitest.New(t)
	r := Register{
		Login: Login{
			Client:   srv.Client(""),
			Session:  newSession(t),
			Email:    apitest.Email,
			Password: "secret",
		},
		DisplayName: "Again",
	}
	if err := r.Do(context.Background()); err == nil || err.Error() != "email already registered" {
		t.Fatalf("err = %v", err)
	}
}

func TestLogoutAndWhoAmIExpired(t *testing.T) {
	srv := apitest.New(t)
	session := newSession(t)
	if err := session.Save("stale", nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	w := WhoAmI{
		Me:      srv.Client("stale").Me,
		Session: session,
		Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}},
	}
	if err := w.Do(context.Background()); !errors.Is(err, app.ErrSessionExpired) {
		t.Fatalf("err = %v", err)
	}
	if _, err := session.Token(); !errors.Is(err, store.ErrNoSession) {
		t.Fatalf("rejected token should be cleared, got %v", err)
	}

	if err := session.Save(apitest.Token, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	var out bytes.Buffer
	w = WhoAmI{Me: srv.Client(apitest.Token).Me, Session: session, Printer: &printers.PrettyPrint{Out: &out}}
	if err := w.Do(context.Background()); err != nil {
		t.Fatalf("WhoAmI: %v", err)
	}
	if !strings.Contains(out.String(), apitest.Email) {
		t.Fatalf("output = %q", out.String())
	}

	lo := Logout{Session: session, Printer: &printers.PrettyPrint{Out: &bytes.Buffer{}}}
	if err := lo.Do(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := session.Token(); !errors.Is(err, store.ErrNoSession) {
		t.Fatalf("expected no session, got %v", err)
	}
}
