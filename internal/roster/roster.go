// Package roster keeps the locally cached student list in step with the
// backend and manages the single record being edited in place.
//
// The cache is replaced wholesale on every refresh and every successful
// mutation ends with a refresh, so the list converges on whatever the
// backend holds; the last refresh wins.
package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aanand-mishra/student-registration/internal/types"
)

// Messages shown to the user.
const (
	MsgIncompleteDraft = "Full Name and Email are required"
	MsgConfirmDelete   = "Are you sure?"
	MsgUpdated         = "Student updated successfully!"
	MsgDeleted         = "Student deleted successfully!"
)

var (
	// ErrNoDraft is returned by draft operations when nothing is being edited.
	ErrNoDraft = errors.New("no record is being edited")

	// ErrDraftIncomplete is returned by CommitEdit when the draft's full
	// name or email is empty. Only those two fields are checked here.
	ErrDraftIncomplete = errors.New(MsgIncompleteDraft)
)

// Backend is the collaborator holding the authoritative collection.
type Backend interface {
	ListStudents(ctx context.Context) ([]types.Student, error)
	UpdateStudent(ctx context.Context, id types.ID, s types.Student) (types.Student, error)
	DeleteStudent(ctx context.Context, id types.ID) error
}

// Prompter asks the user things that block the screen.
type Prompter interface {
	// Alert shows a message the user must acknowledge.
	Alert(msg string)
}

// Confirmer asks for a yes/no answer before a destructive action.
type Confirmer interface {
	Confirm(msg string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(msg string) bool

func (f ConfirmFunc) Confirm(msg string) bool { return f(msg) }

// Roster is the list controller. It is safe for concurrent use; network
// calls are made without holding the lock.
type Roster struct {
	backend  Backend
	prompter Prompter
	log      *slog.Logger

	mu           sync.Mutex
	students     []types.Student
	loading      bool
	draft        *types.Student
	notification string
}

// New returns a roster that has not fetched anything yet.
func New(backend Backend, prompter Prompter, log *slog.Logger) *Roster {
	if log == nil {
		log = slog.Default()
	}
	return &Roster{
		backend:  backend,
		prompter: prompter,
		log:      log,
		students: []types.Student{},
		loading:  true,
	}
}

// Refresh replaces the cached list with the backend's collection, in the
// order the backend returned it, and clears the loading state. On error
// the cache and the loading state are left untouched.
func (r *Roster) Refresh(ctx context.Context) error {
	students, err := r.backend.ListStudents(ctx)
	if err != nil {
		r.log.Error("failed to fetch students", slog.String("error", err.Error()))
		return fmt.Errorf("roster.Refresh: %w", err)
	}

	r.mu.Lock()
	r.students = slices.Clone(students)
	r.loading = false
	r.mu.Unlock()

	r.log.Debug("students refreshed", slog.Int("count", len(students)))
	return nil
}

// BeginEdit starts editing a copy of record. Any unsaved draft is
// discarded.
func (r *Roster) BeginEdit(record types.Student) {
	r.mu.Lock()
	defer r.mu.Unlock()
	draft := record
	r.draft = &draft
}

// EditField overwrites one field of the draft.
func (r *Roster) EditField(name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.draft == nil {
		return fmt.Errorf("roster.EditField: %w", ErrNoDraft)
	}
	if err := r.draft.Set(name, value); err != nil {
		return fmt.Errorf("roster.EditField: %w", err)
	}
	return nil
}

// CancelEdit drops the draft without saving.
func (r *Roster) CancelEdit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft = nil
}

// CommitEdit saves the draft. Only the full name and email are required
// to be non-empty here; when either is missing the user is alerted and
// nothing is sent. On success the draft is cleared, the user is notified
// and the list is refreshed. On failure the draft is kept for a retry.
func (r *Roster) CommitEdit(ctx context.Context) error {
	r.mu.Lock()
	if r.draft == nil {
		r.mu.Unlock()
		return fmt.Errorf("roster.CommitEdit: %w", ErrNoDraft)
	}
	draft := *r.draft
	r.mu.Unlock()

	if draft.FullName == "" || draft.Email == "" {
		if r.prompter != nil {
			r.prompter.Alert(MsgIncompleteDraft)
		}
		return ErrDraftIncomplete
	}

	if _, err := r.backend.UpdateStudent(ctx, draft.ID, draft); err != nil {
		r.log.Error("failed to update student",
			slog.String("id", string(draft.ID)),
			slog.String("error", err.Error()))
		return fmt.Errorf("roster.CommitEdit: %w", err)
	}

	r.mu.Lock()
	r.draft = nil
	r.notification = MsgUpdated
	r.mu.Unlock()

	r.log.Info("student updated", slog.String("id", string(draft.ID)))
	return r.Refresh(ctx)
}

// DeleteRecord removes the record with the given id after the user
// confirms. Declining is not an error and changes nothing. A backend
// failure is logged and returned; the screens do not display it.
func (r *Roster) DeleteRecord(ctx context.Context, id types.ID, confirm Confirmer) error {
	if confirm == nil || !confirm.Confirm(MsgConfirmDelete) {
		return nil
	}

	if err := r.backend.DeleteStudent(ctx, id); err != nil {
		r.log.Error("failed to delete student",
			slog.String("id", string(id)),
			slog.String("error", err.Error()))
		return fmt.Errorf("roster.DeleteRecord: %w", err)
	}

	r.mu.Lock()
	r.notification = MsgDeleted
	r.mu.Unlock()

	r.log.Info("student deleted", slog.String("id", string(id)))
	return r.Refresh(ctx)
}

// Students returns a copy of the cached list.
func (r *Roster) Students() []types.Student {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.students)
}

// Loading reports whether no refresh has succeeded yet.
func (r *Roster) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Draft returns a copy of the record being edited.
func (r *Roster) Draft() (types.Student, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.draft == nil {
		return types.Student{}, false
	}
	return *r.draft, true
}

// Notification returns the pending success message, or "".
func (r *Roster) Notification() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notification
}

// DismissNotification clears the pending success message.
func (r *Roster) DismissNotification() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notification = ""
}
