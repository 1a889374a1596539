package app

import (
	"context"
	"errors"
	"io"
	"sort"

	"tableflip.dev/diary/pkg/api"
	"tableflip.dev/diary/pkg/entry"
)

var (
	ErrNoAPI          = errors.New("app: no api configured")
	ErrNotFound       = errors.New("app: entry not found")
	ErrNotLoggedIn    = errors.New("app: not logged in, run `diary login` first")
	ErrSessionExpired = errors.New("app: session expired, run `diary login` again")
	ErrNotOwned       = errors.New("app: entry belongs to another author")
)

// API is the subset of the diary service the app drives.
type API interface {
	ListDiaries(ctx context.Context) ([]*entry.Entry, error)
	ListPublic(ctx context.Context) ([]*entry.Entry, error)
	CreateDiary(ctx context.Context, d entry.Draft) (*entry.Entry, error)
	UpdateDiary(ctx context.Context, id string, d entry.Draft) (*entry.Entry, error)
	SetVisibility(ctx context.Context, id string, public bool) (*api.Visibility, error)
	DeleteDiary(ctx context.Context, id string) error
	Upload(ctx context.Context, kind entry.Kind, filename string, r io.Reader) (*api.FileRef, error)
	DeleteFile(ctx context.Context, name string) error
}

// Service provides the diary operations shared by the CLI and the terminal UI.
type Service struct {
	API API
}

// Entries lists the user's entries, newest day first.
func (s *Service) Entries(ctx context.Context) ([]*entry.Entry, error) {
	if s.API == nil {
		return nil, ErrNoAPI
	}
	all, err := s.API.ListDiaries(ctx)
	if err != nil {
		return nil, err
	}
	sortEntries(all)
	return all, nil
}

// Public lists the public feed, newest day first.
func (s *Service) Public(ctx context.Context) ([]*entry.Entry, error) {
	if s.API == nil {
		return nil, ErrNoAPI
	}
	all, err := s.API.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	sortEntries(all)
	return all, nil
}

// Create submits a validated draft.
func (s *Service) Create(ctx context.Context, d entry.Draft) (*entry.Entry, error) {
	if s.API == nil {
		return nil, ErrNoAPI
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return s.API.CreateDiary(ctx, d)
}

// Update replaces entry id with a validated draft.
func (s *Service) Update(ctx context.Context, id string, d entry.Draft) (*entry.Entry, error) {
	if s.API == nil {
		return nil, ErrNoAPI
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return s.API.UpdateDiary(ctx, id, d)
}

// SetVisibility publishes or hides entry id.
func (s *Service) SetVisibility(ctx context.Context, id string, public bool) error {
	if s.API == nil {
		return ErrNoAPI
	}
	_, err := s.API.SetVisibility(ctx, id, public)
	return err
}

// Delete removes entry id. Attachments stay in storage.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.API == nil {
		return ErrNoAPI
	}
	return s.API.DeleteDiary(ctx, id)
}

// Upload stores one attachment and returns its reference.
func (s *Service) Upload(ctx context.Context, kind entry.Kind, filename string, r io.Reader) (entry.Attachment, error) {
	if s.API == nil {
		return entry.Attachment{}, ErrNoAPI
	}
	ref, err := s.API.Upload(ctx, kind, filename, r)
	if err != nil {
		return entry.Attachment{}, err
	}
	return entry.Attachment{URL: ref.URL, Name: ref.Name}, nil
}

// DeleteFile removes a stored attachment by name.
func (s *Service) DeleteFile(ctx context.Context, name string) error {
	if s.API == nil {
		return ErrNoAPI
	}
	return s.API.DeleteFile(ctx, name)
}

// Find returns the entry with id from entries.
func Find(entries []*entry.Entry, id string) (*entry.Entry, error) {
	for _, e := range entries {
		if e != nil && e.ID == id {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

// StaleAttachments lists the stored file names the draft no longer
// references: a slot counts when the original name is set and differs from
// the draft's, including a draft that cleared it.
func StaleAttachments(original *entry.Entry, d entry.Draft) []string {
	if original == nil {
		return nil
	}
	var stale []string
	for _, k := range []entry.Kind{entry.Image, entry.Audio} {
		before := entry.DraftFromEntry(original).Attachment(k).Name
		if before != "" && before != d.Attachment(k).Name {
			stale = append(stale, before)
		}
	}
	return stale
}

func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left, right := entries[i], entries[j]
		if left == nil || right == nil {
			return left != nil
		}
		lk, rk := left.DateKey(), right.DateKey()
		if lk != rk {
			return lk > rk
		}
		lt, rt := left.Created.Time, right.Created.Time
		if !lt.Equal(rt) {
			return lt.After(rt)
		}
		return left.ID < right.ID
	})
}
