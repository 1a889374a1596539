package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tableflip.dev/diary/pkg/entry"
)

// ErrNoSession is returned when no token has been stored.
var ErrNoSession = errors.New("store: no session")

// Session is the stored credential of the logged in user. The token and the
// cached user are written and cleared together.
type Session struct {
	kv KV
}

func NewSession(kv KV) *Session {
	return &Session{kv: kv}
}

// Save stores the token and the user it belongs to.
func (s *Session) Save(token string, user *entry.User) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("store: empty token")
	}
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := s.kv.Write(userKey, data); err != nil {
			return fmt.Errorf("store: save user: %w", err)
		}
	}
	if err := s.kv.Write(tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("store: save token: %w", err)
	}
	return nil
}

// Token returns the stored bearer token or ErrNoSession.
func (s *Session) Token() (string, error) {
	data, err := s.kv.Read(tokenKey)
	if err != nil {
		if isNotExist(err) {
			return "", ErrNoSession
		}
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

// User returns the cached user, or nil when none is stored or it cannot be
// decoded.
func (s *Session) User() *entry.User {
	data, err := s.kv.Read(userKey)
	if err != nil {
		return nil
	}
	var u entry.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil
	}
	return &u
}

// Clear forgets the token and the cached user.
func (s *Session) Clear() error {
	return errors.Join(s.kv.Erase(tokenKey), s.kv.Erase(userKey))
}

// Expired reports whether the stored token carries an exp claim in the past.
// The signature is not checked; the service remains the authority.
func (s *Session) Expired(now time.Time) bool {
	token, err := s.Token()
	if err != nil {
		return true
	}
	exp, ok := ExpiresAt(token)
	return ok && !now.Before(exp)
}

// ExpiresAt reads the exp claim of a JWT without verifying it.
func ExpiresAt(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
