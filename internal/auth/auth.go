// Package auth gates navigation to the student list by looking the
// supplied credentials up in the full record set.
//
// This is a plaintext, client-side record lookup: no hashing, no rate
// limiting, no session token. It reproduces how the registration backend
// is used and must not be mistaken for an authentication mechanism.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aanand-mishra/student-registration/internal/route"
	"github.com/aanand-mishra/student-registration/internal/types"
)

// Messages shown on the login screen.
const (
	MsgInvalidCredentials = "Invalid email or password!"
	MsgBackendFailure     = "Something went wrong. Try again."
	MsgSuccess            = "Login Successful!"
)

// ErrInvalidCredentials means no record matched.
var ErrInvalidCredentials = errors.New(MsgInvalidCredentials)

// FindMatch returns the first record whose email and password equal the
// credentials exactly (case-sensitive).
func FindMatch(creds types.Credentials, all []types.Student) (types.Student, bool) {
	for _, s := range all {
		if s.Email == creds.Email && s.Password == creds.Password {
			return s, true
		}
	}
	return types.Student{}, false
}

// Lister fetches every record from the backend.
type Lister interface {
	ListStudents(ctx context.Context) ([]types.Student, error)
}

// LoginForm is the login screen's controller.
type LoginForm struct {
	lister Lister
	nav    route.Navigator
	log    *slog.Logger

	mu        sync.Mutex
	creds     types.Credentials
	message   string
	succeeded bool
}

// NewLoginForm returns an empty login form.
func NewLoginForm(lister Lister, nav route.Navigator, log *slog.Logger) *LoginForm {
	if log == nil {
		log = slog.Default()
	}
	return &LoginForm{lister: lister, nav: nav, log: log}
}

// SetField writes "email" or "password" and clears the error line.
func (f *LoginForm) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch name {
	case types.FieldEmail:
		f.creds.Email = value
	case types.FieldPassword:
		f.creds.Password = value
	default:
		return fmt.Errorf("auth.SetField: %w: %q", types.ErrUnknownField, name)
	}
	f.message = ""
	return nil
}

// Submit fetches all records and looks the credentials up. A match sets
// the success flag and requests the list screen.
func (f *LoginForm) Submit(ctx context.Context) (types.Student, error) {
	f.mu.Lock()
	creds := f.creds
	f.mu.Unlock()

	all, err := f.lister.ListStudents(ctx)
	if err != nil {
		f.log.Error("login lookup failed", slog.String("error", err.Error()))
		f.setMessage(MsgBackendFailure)
		return types.Student{}, fmt.Errorf("auth.Submit: %w", err)
	}

	match, ok := FindMatch(creds, all)
	if !ok {
		f.log.Info("login rejected", slog.String("email", creds.Email))
		f.setMessage(MsgInvalidCredentials)
		return types.Student{}, ErrInvalidCredentials
	}

	f.mu.Lock()
	f.succeeded = true
	f.message = ""
	f.mu.Unlock()

	f.log.Info("login accepted", slog.String("id", string(match.ID)))
	if f.nav != nil {
		f.nav.Navigate(route.List)
	}
	return match, nil
}

func (f *LoginForm) setMessage(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = msg
}

// Credentials returns the values typed so far.
func (f *LoginForm) Credentials() types.Credentials {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creds
}

// Message returns the error line, or "".
func (f *LoginForm) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Succeeded reports whether the last submission matched a record.
func (f *LoginForm) Succeeded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.succeeded
}

// DismissNotification clears the success flag.
func (f *LoginForm) DismissNotification() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.succeeded = false
}
