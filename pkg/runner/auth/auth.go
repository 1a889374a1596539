// Package auth signs the user in and out of the diary service.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/diary/pkg/api"
	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
)

const (
	msgLoginFailed    = "login failed"
	msgRegisterFailed = "registration failed"
)

// Authenticator is the part of the service client used to sign in.
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (*api.AuthResult, error)
	Register(ctx context.Context, reg api.Registration) (*api.AuthResult, error)
}

// Prompter reads missing credentials from the user.
type Prompter struct {
	Ask      func(label string) (string, error)
	Password func(label string) (string, error)
}

func (p Prompter) fill(v *string, label string, secret bool) error {
	if strings.TrimSpace(*v) != "" {
		return nil
	}
	read := p.Ask
	if secret {
		read = p.Password
	}
	if read == nil {
		return fmt.Errorf("%s is required", strings.ToLower(label))
	}
	s, err := read(label)
	if err != nil {
		return err
	}
	*v = s
	return nil
}

type Login struct {
	Client   Authenticator
	Session  *store.Session
	Email    string
	Password string
	Prompter Prompter

	Printer *printers.PrettyPrint
}

func (n *Login) Do(ctx context.Context) error {
	if err := n.Prompter.fill(&n.Email, "Email", false); err != nil {
		return err
	}
	if err := n.Prompter.fill(&n.Password, "Password", true); err != nil {
		return err
	}
	res, err := n.Client.Login(ctx, api.Credentials{Email: n.Email, Password: n.Password})
	if err != nil {
		return errors.New(api.Message(err, msgLoginFailed))
	}
	return n.save(res)
}

func (n *Login) save(res *api.AuthResult) error {
	if err := n.Session.Save(res.Token, &res.User); err != nil {
		return err
	}
	n.Printer.Title(fmt.Sprintf("Logged in as %s", name(&res.User)))
	return nil
}

type Register struct {
	Login
	DisplayName string
}

func (n *Register) Do(ctx context.Context) error {
	if err := n.Prompter.fill(&n.Email, "Email", false); err != nil {
		return err
	}
	if err := n.Prompter.fill(&n.DisplayName, "Display name", false); err != nil {
		return err
	}
	if err := n.Prompter.fill(&n.Password, "Password", true); err != nil {
		return err
	}
	res, err := n.Client.Register(ctx, api.Registration{
		Email:       n.Email,
		Password:    n.Password,
		DisplayName: n.DisplayName,
	})
	if err != nil {
		return errors.New(api.Message(err, msgRegisterFailed))
	}
	return n.save(res)
}

type Logout struct {
	Session *store.Session
	Printer *printers.PrettyPrint
}

func (n *Logout) Do(_ context.Context) error {
	if err := n.Session.Clear(); err != nil {
		return err
	}
	n.Printer.Title("Logged out")
	return nil
}

// WhoAmI prints the account the stored token belongs to.
type WhoAmI struct {
	Me      func(ctx context.Context) (*entry.User, error)
	Session *store.Session
	JSON    bool

	Printer *printers.PrettyPrint
	Out     io.Writer
}

func (n *WhoAmI) Do(ctx context.Context) error {
	u, err := n.Me(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			_ = n.Session.Clear()
			return app.ErrSessionExpired
		}
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, u)
	}
	n.Printer.Title(name(u))
	n.Printer.User(u)
	if token, err := n.Session.Token(); err == nil {
		if exp, ok := store.ExpiresAt(token); ok {
			n.Printer.Expiry(exp)
		}
	}
	return nil
}

func name(u *entry.User) string {
	if u == nil {
		return ""
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
