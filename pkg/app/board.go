package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/diary/pkg/api"
	"tableflip.dev/diary/pkg/calendar"
	"tableflip.dev/diary/pkg/entry"
)

// Banner messages used when the service does not say what went wrong.
const (
	msgLoadFailed       = "failed to load diaries"
	msgSaveFailed       = "failed to save diary"
	msgUpdateFailed     = "failed to update diary"
	msgVisibilityFailed = "failed to update visibility"
	msgDeleteFailed     = "failed to delete diary"
	msgUploadFailed     = "upload failed"
)

var (
	ErrNoEditSession  = errors.New("app: no entry is being edited")
	ErrNothingPending = errors.New("app: no delete is pending")
	ErrBusy           = errors.New("app: a save is already in progress")
)

// DraftTarget selects which form an operation works on.
type DraftTarget int

const (
	CreateDraft DraftTarget = iota
	EditDraft
)

func (t DraftTarget) String() string {
	if t == EditDraft {
		return "edit"
	}
	return "create"
}

// EditState is the lifecycle of the single edit session.
type EditState int

const (
	EditClosed EditState = iota
	Editing
	Submitting
)

func (s EditState) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return "closed"
	}
}

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithLogger sets the logger for swallowed failures.
func WithLogger(log *zap.SugaredLogger) BoardOption {
	return func(b *Board) {
		if log != nil {
			b.log = log
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) BoardOption {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// OnSessionExpired is called when the service rejects the stored token
// during a refresh. It should forget the stored credentials.
func OnSessionExpired(fn func() error) BoardOption {
	return func(b *Board) { b.onExpired = fn }
}

// Board is the state of the diary list page: the entries fetched from the
// service, the calendar month and selection, the create and edit drafts, the
// pending delete and the error banner. Every successful mutation is
// followed by a full refresh; the entry list is never patched locally.
type Board struct {
	svc       *Service
	log       *zap.SugaredLogger
	now       func() time.Time
	onExpired func() error

	selection calendar.Selection

	mu            sync.Mutex
	entries       []*entry.Entry
	month         calendar.Month
	create        entry.Draft
	edit          entry.Draft
	editing       *entry.Entry
	editState     EditState
	editSeq       int
	pendingDelete string
	banner        string
	loading       bool
}

// NewBoard creates a board over svc showing the current month.
func NewBoard(svc *Service, opts ...BoardOption) *Board {
	b := &Board{
		svc: svc,
		log: zap.NewNop().Sugar(),
		now: time.Now,
	}
	for _, o := range opts {
		o(b)
	}
	now := b.now()
	b.month = calendar.MonthOf(now)
	b.create = entry.NewDraft(now)
	return b
}

// Refresh reloads the entry list from the service. A 401 clears the session
// and returns ErrSessionExpired. The calendar selection is left alone.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	b.loading = true
	b.mu.Unlock()

	all, err := b.svc.Entries(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading = false
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			b.entries = nil
			b.banner = ErrSessionExpired.Error()
			if b.onExpired != nil {
				if cerr := b.onExpired(); cerr != nil {
					b.log.Debugw("clear session failed", "error", cerr)
				}
			}
			return ErrSessionExpired
		}
		b.banner = api.Message(err, msgLoadFailed)
		return err
	}
	b.entries = all
	return nil
}

// Entries returns every loaded entry.
func (b *Board) Entries() []*entry.Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*entry.Entry(nil), b.entries...)
}

// Visible returns the loaded entries narrowed to the selected day.
func (b *Board) Visible() []*entry.Entry {
	return calendar.Filter(b.Entries(), b.selection.Current())
}

// Counts returns the number of loaded entries per day.
func (b *Board) Counts() map[string]int {
	return calendar.CountByDate(b.Entries())
}

// SelectDate toggles the day filter and returns the resulting selection.
func (b *Board) SelectDate(key string) string {
	return b.selection.Toggle(entry.DateKey(key))
}

// ClearSelection shows every entry again.
func (b *Board) ClearSelection() {
	b.selection.Clear()
}

// Selected is the day the list is filtered to, or "".
func (b *Board) Selected() string {
	return b.selection.Current()
}

// Month is the month shown on the calendar.
func (b *Board) Month() calendar.Month {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.month
}

// MoveMonth shifts the calendar by offset months.
func (b *Board) MoveMonth(offset int) calendar.Month {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.month = b.month.Move(offset)
	return b.month
}

// ShowMonth jumps the calendar to the month containing t.
func (b *Board) ShowMonth(t time.Time) {
	b.mu.Lock()
	b.month = calendar.MonthOf(t)
	b.mu.Unlock()
}

// Err is the banner message, or "" when there is none.
func (b *Board) Err() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.banner
}

// DismissError clears the banner.
func (b *Board) DismissError() {
	b.mu.Lock()
	b.banner = ""
	b.mu.Unlock()
}

// Loading reports whether a request started by the board is in flight.
func (b *Board) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Draft returns a copy of the selected form.
func (b *Board) Draft(target DraftTarget) entry.Draft {
	b.mu.Lock()
	defer b.mu.Unlock()
	if target == EditDraft {
		return b.edit
	}
	return b.create
}

// UpdateDraft applies fn to the selected form. Editing the edit form
// requires an open session that is not being submitted.
func (b *Board) UpdateDraft(target DraftTarget, fn func(d *entry.Draft)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if target == EditDraft {
		if b.editState != Editing {
			return ErrNoEditSession
		}
		fn(&b.edit)
		return nil
	}
	fn(&b.create)
	return nil
}

// UploadFile opens path and uploads it with Upload.
func (b *Board) UploadFile(ctx context.Context, target DraftTarget, kind entry.Kind, path string) error {
	f, err := os.Open(path)
	if err != nil {
		b.setBanner(msgUploadFailed)
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return b.Upload(ctx, target, kind, filepath.Base(path), f)
}

// UploadFiles uploads image then audio into the target draft, skipping
// empty paths, and returns the stored names of the files that went up. On
// error the names uploaded so far are still returned.
func (b *Board) UploadFiles(ctx context.Context, target DraftTarget, image, audio string) ([]string, error) {
	var names []string
	for _, f := range []struct {
		kind entry.Kind
		path string
	}{{entry.Image, image}, {entry.Audio, audio}} {
		if f.path == "" {
			continue
		}
		if err := b.UploadFile(ctx, target, f.kind, f.path); err != nil {
			return names, err
		}
		d := b.Draft(target)
		names = append(names, d.Attachment(f.kind).Name)
	}
	return names, nil
}

// DiscardUploads deletes files uploaded for a draft that was never saved.
// Failures are logged and ignored.
func (b *Board) DiscardUploads(ctx context.Context, names []string) {
	b.cleanup(ctx, names)
}

// Upload sends one file and writes the returned reference into the
// selected form's slot for kind, replacing what was there. On failure the
// form is left as it was. The previously attached file is never deleted
// here; an edit submit cleans it up.
func (b *Board) Upload(ctx context.Context, target DraftTarget, kind entry.Kind, filename string, r io.Reader) error {
	b.mu.Lock()
	if target == EditDraft && b.editState != Editing {
		b.mu.Unlock()
		return ErrNoEditSession
	}
	seq := b.editSeq
	b.mu.Unlock()

	att, err := b.svc.Upload(ctx, kind, filename, r)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.banner = api.Message(err, msgUploadFailed)
		return err
	}
	if target == EditDraft {
		// The session the file was picked for is gone.
		if b.editState != Editing || b.editSeq != seq {
			b.log.Debugw("dropping upload for closed edit session", "name", att.Name)
			return ErrNoEditSession
		}
		b.edit.SetAttachment(kind, att)
		return nil
	}
	b.create.SetAttachment(kind, att)
	return nil
}

// SubmitCreate validates and submits the create form, then resets it and
// refreshes. A draft with no text is rejected without any request.
func (b *Board) SubmitCreate(ctx context.Context) (*entry.Entry, error) {
	b.mu.Lock()
	if b.loading {
		b.mu.Unlock()
		return nil, ErrBusy
	}
	d := b.create
	b.banner = ""
	if err := d.Validate(); err != nil {
		b.banner = err.Error()
		b.mu.Unlock()
		return nil, err
	}
	b.loading = true
	b.mu.Unlock()

	created, err := b.svc.Create(ctx, d)

	b.mu.Lock()
	b.loading = false
	if err != nil {
		b.banner = api.Message(err, msgSaveFailed)
		b.mu.Unlock()
		return nil, err
	}
	b.create = entry.NewDraft(b.now())
	b.mu.Unlock()

	return created, b.Refresh(ctx)
}

// OpenEdit starts an edit session for entry id, replacing any open one.
func (b *Board) OpenEdit(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.editState == Submitting {
		return ErrBusy
	}
	e, err := Find(b.entries, id)
	if err != nil {
		return err
	}
	if e.HasAuthor() {
		return ErrNotOwned
	}
	cp := *e
	b.editing = &cp
	b.edit = entry.DraftFromEntry(e)
	b.editState = Editing
	b.editSeq++
	b.banner = ""
	return nil
}

// Editing returns the entry as it was when the session opened, or nil.
func (b *Board) Editing() *entry.Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.editState == EditClosed {
		return nil
	}
	return b.editing
}

// EditState reports where the edit session is in its lifecycle.
func (b *Board) EditState() EditState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.editState
}

// CancelEdit discards the edit draft. A session being submitted cannot be
// cancelled.
func (b *Board) CancelEdit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.editState == Submitting {
		return
	}
	b.closeEditLocked()
}

func (b *Board) closeEditLocked() {
	b.editState = EditClosed
	b.editing = nil
	b.edit = entry.Draft{}
}

// SubmitEdit validates and saves the edit draft. After the update succeeds
// the files the draft no longer references are deleted concurrently;
// failures there are logged and ignored. Once they settle the list is
// refreshed and the session closed. When the update fails no file is
// touched and the session stays open with its draft.
func (b *Board) SubmitEdit(ctx context.Context) error {
	b.mu.Lock()
	if b.editState != Editing {
		state := b.editState
		b.mu.Unlock()
		if state == Submitting {
			return ErrBusy
		}
		return ErrNoEditSession
	}
	b.banner = ""
	d := b.edit
	original := b.editing
	if err := d.Validate(); err != nil {
		b.banner = err.Error()
		b.mu.Unlock()
		return err
	}
	b.editState = Submitting
	b.loading = true
	b.mu.Unlock()

	if _, err := b.svc.Update(ctx, original.ID, d); err != nil {
		b.mu.Lock()
		b.editState = Editing
		b.loading = false
		b.banner = api.Message(err, msgUpdateFailed)
		b.mu.Unlock()
		return err
	}

	b.cleanup(ctx, StaleAttachments(original, d))

	err := b.Refresh(ctx)

	b.mu.Lock()
	b.loading = false
	b.closeEditLocked()
	b.mu.Unlock()
	return err
}

// cleanup deletes names concurrently and waits for all of them.
func (b *Board) cleanup(ctx context.Context, names []string) {
	if len(names) == 0 {
		return
	}
	var g errgroup.Group
	for _, name := range names {
		g.Go(func() error {
			if err := b.svc.DeleteFile(ctx, name); err != nil {
				b.log.Debugw("attachment cleanup failed", "name", name, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// ToggleVisibility flips is_public on one of the user's entries and
// refreshes.
func (b *Board) ToggleVisibility(ctx context.Context, id string) error {
	b.mu.Lock()
	e, err := Find(b.entries, id)
	if err != nil {
		b.mu.Unlock()
		return err
	}
	if e.HasAuthor() {
		b.mu.Unlock()
		return ErrNotOwned
	}
	public := !e.IsPublic
	b.mu.Unlock()

	if err := b.svc.SetVisibility(ctx, id, public); err != nil {
		b.setBanner(api.Message(err, msgVisibilityFailed))
		return err
	}
	return b.Refresh(ctx)
}

// RequestDelete asks for confirmation before deleting entry id.
func (b *Board) RequestDelete(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := Find(b.entries, id)
	if err != nil {
		return err
	}
	if e.HasAuthor() {
		return ErrNotOwned
	}
	b.pendingDelete = id
	return nil
}

// PendingDelete is the entry waiting for confirmation, or "".
func (b *Board) PendingDelete() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pendingDelete
}

// CancelDelete drops the pending delete.
func (b *Board) CancelDelete() {
	b.mu.Lock()
	b.pendingDelete = ""
	b.mu.Unlock()
}

// ConfirmDelete deletes the pending entry and refreshes. Attachments of the
// deleted entry are left in storage. On failure the confirmation stays
// pending.
func (b *Board) ConfirmDelete(ctx context.Context) error {
	b.mu.Lock()
	id := b.pendingDelete
	b.mu.Unlock()
	if id == "" {
		return ErrNothingPending
	}

	if err := b.svc.Delete(ctx, id); err != nil {
		b.setBanner(api.Message(err, msgDeleteFailed))
		return err
	}

	b.mu.Lock()
	if b.pendingDelete == id {
		b.pendingDelete = ""
	}
	b.mu.Unlock()
	return b.Refresh(ctx)
}

func (b *Board) setBanner(msg string) {
	b.mu.Lock()
	b.banner = msg
	b.mu.Unlock()
}
