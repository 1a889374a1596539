// Package info prints where the client keeps its state and who is signed in.
package info

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/store"
)

type Info struct {
	Config  store.Config
	Session *store.Session
	Out     io.Writer
	Now     func() time.Time
}

func (n *Info) Do(_ context.Context) error {
	w := n.Out
	if w == nil {
		w = color.Output
	}
	if override := os.Getenv("DIARY_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "DIARY_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, "DIARY_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		if n.Config, err = store.LoadConfig(); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintln(w, "Config.path:  ", n.Config.BasePath())
	_, _ = fmt.Fprintln(w, "Config.server:", n.Config.Server())
	_, _ = fmt.Fprintln(w, "Config.log:   ", n.Config.LogLevel(), n.Config.LogFormat())

	if n.Session == nil {
		return nil
	}
	u := n.Session.User()
	token, err := n.Session.Token()
	switch {
	case err != nil:
		_, _ = fmt.Fprintln(w, "Session:       not logged in")
	case u != nil:
		_, _ = fmt.Fprintln(w, "Session:      ", u.Email)
	default:
		_, _ = fmt.Fprintln(w, "Session:       logged in")
	}
	if err == nil {
		now := time.Now
		if n.Now != nil {
			now = n.Now
		}
		if exp, ok := store.ExpiresAt(token); ok {
			state := "expires"
			if !now().Before(exp) {
				state = "expired"
			}
			_, _ = fmt.Fprintln(w, "Token:        ", state, exp.Local().Format(time.RFC1123))
		}
	}
	return nil
}
