package store

import (
	"errors"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Keys under which the client keeps its local state.
const (
	tokenKey    = "diary_token"
	userKey     = "diary_user"
	settingsKey = "diary-field-settings"
)

// KV is the local key/value store the client persists into.
type KV interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Erase(key string) error
	Has(key string) bool
}

// Open creates a diskv backed KV rooted at cfg.BasePath().
func Open(cfg Config) (KV, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	basePath := cfg.BasePath()
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, err
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		CacheSizeMax: 64 * 1024,
		FilePerm:     0o600,
		PathPerm:     0o700,
	})}, nil
}

type persistence struct {
	d *diskv.Diskv
}

func (p *persistence) Read(key string) ([]byte, error) { return p.d.Read(key) }
func (p *persistence) Write(key string, val []byte) error {
	return p.d.Write(key, val)
}
func (p *persistence) Has(key string) bool { return p.d.Has(key) }

// Erase removes key; erasing a missing key is not an error.
func (p *persistence) Erase(key string) error {
	if !p.d.Has(key) {
		return nil
	}
	return p.d.Erase(key)
}

func flatTransform(string) []string { return []string{} }

// isNotExist reports whether err means the key was never written.
func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
