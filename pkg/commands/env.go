package commands

import (
	"errors"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"tableflip.dev/diary/pkg/api"
	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/logging"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
)

// env is what every command needs to reach the server and local state.
type env struct {
	cfg      store.Config
	session  *store.Session
	settings *store.Settings
	log      *zap.SugaredLogger
	server   string
	now      func() time.Time
}

func loadEnv() (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel()
	if global.Verbose {
		level = "debug"
	}
	log, err := logging.New(logging.Config{Level: level, Format: cfg.LogFormat()})
	if err != nil {
		return nil, err
	}
	kv, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	server := cfg.Server()
	if global.Server != "" {
		server = global.Server
	}
	return &env{
		cfg:      cfg,
		session:  store.NewSession(kv),
		settings: store.NewSettings(kv),
		log:      log,
		server:   server,
		now:      time.Now,
	}, nil
}

// client returns an unauthenticated client.
func (e *env) client() *api.Client {
	return api.NewClient(e.server, api.WithLogger(e.log))
}

// authed returns a client carrying the stored token. A token that is
// already past its expiry is cleared instead of being sent.
func (e *env) authed() (*api.Client, error) {
	token, err := e.session.Token()
	if err != nil {
		if errors.Is(err, store.ErrNoSession) {
			return nil, app.ErrNotLoggedIn
		}
		return nil, err
	}
	if e.session.Expired(e.now()) {
		_ = e.session.Clear()
		return nil, app.ErrSessionExpired
	}
	return e.client().WithToken(token), nil
}

func (e *env) board() (*app.Board, *api.Client, error) {
	c, err := e.authed()
	if err != nil {
		return nil, nil, err
	}
	b := app.NewBoard(&app.Service{API: c},
		app.WithLogger(e.log),
		app.WithClock(e.now),
		app.OnSessionExpired(e.session.Clear),
	)
	return b, c, nil
}

func (e *env) printer(showID bool, fileURL func(string) string) *printers.PrettyPrint {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = w
	}
	return &printers.PrettyPrint{
		ShowID:  showID,
		Width:   width,
		Fields:  e.settings.Load(),
		FileURL: fileURL,
		Now:     e.now,
	}
}

func newService(c *api.Client) *app.Service {
	return &app.Service{API: c}
}

// expired turns a rejected token into ErrSessionExpired and forgets it.
func (e *env) expired(err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		_ = e.session.Clear()
		return app.ErrSessionExpired
	}
	return err
}

// fieldSettings reads the stored field settings while the command tree is
// built, so hidden fields can be left out of help. Defaults on any error.
func fieldSettings() entry.FieldSettings {
	cfg, err := store.LoadConfig()
	if err != nil {
		return entry.DefaultFieldSettings()
	}
	kv, err := store.Open(cfg)
	if err != nil {
		return entry.DefaultFieldSettings()
	}
	return store.NewSettings(kv).Load()
}
