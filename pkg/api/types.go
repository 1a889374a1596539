package api

import (
	"errors"
	"fmt"

	"tableflip.dev/diary/pkg/entry"
)

// ErrUnauthorized is wrapped by errors for 401 responses.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-2xx response from the diary service.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Unwrap() error {
	if e.Status == 401 {
		return ErrUnauthorized
	}
	return nil
}

// Message returns the message the service sent with err, or fallback when
// err carries none.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Credentials are sent to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is sent to the register endpoint.
type Registration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// AuthResult is returned by login and register.
type AuthResult struct {
	Token string     `json:"token"`
	User  entry.User `json:"user"`
}

// FileRef is the stored reference for an uploaded attachment.
type FileRef struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Visibility is the body and response of the visibility endpoint.
type Visibility struct {
	ID       string `json:"id,omitempty"`
	IsPublic bool   `json:"is_public"`
}

type messageResponse struct {
	Message string `json:"message"`
}
