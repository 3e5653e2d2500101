// Package form holds the registration form's state: the draft field
// values, the per-field error messages, the transient success flag and
// the password visibility toggle.
package form

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/aanand-mishra/student-registration/internal/route"
	"github.com/aanand-mishra/student-registration/internal/types"
	"github.com/aanand-mishra/student-registration/internal/validation"
)

// SuccessMessage is shown once a registration has been accepted.
const SuccessMessage = "Registration submitted successfully!"

// Creator is the backend collaborator that stores a new record.
type Creator interface {
	CreateStudent(ctx context.Context, s types.Student) (types.Student, error)
}

// Form is the registration form controller. It is safe for concurrent
// use so a screen can render while a submission is in flight.
type Form struct {
	creator Creator
	nav     route.Navigator
	log     *slog.Logger

	mu           sync.Mutex
	values       types.Student
	errors       validation.Errors
	succeeded    bool
	showPassword bool
}

// New returns an empty form that submits through creator and moves to
// the login screen through nav once a registration succeeds.
func New(creator Creator, nav route.Navigator, log *slog.Logger) *Form {
	if log == nil {
		log = slog.Default()
	}
	return &Form{
		creator: creator,
		nav:     nav,
		log:     log,
		errors:  validation.Errors{},
	}
}

// SetField overwrites one field and clears that field's error. Other
// fields and their errors are left as they are; nothing is re-validated.
func (f *Form) SetField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.values.Set(name, value); err != nil {
		return fmt.Errorf("form.SetField: %w", err)
	}
	delete(f.errors, name)
	return nil
}

// TogglePasswordVisibility flips whether the password is rendered in
// clear. It only affects display.
func (f *Form) TogglePasswordVisibility() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showPassword = !f.showPassword
}

// Submit validates the current values. With any field error the errors
// are stored and returned as validation.Errors and the backend is not
// called. Otherwise the record is created; on success the form resets,
// the success flag is set and the login screen is requested. A backend
// failure is logged and returned, the values stay for a retry and no
// field error is recorded.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	candidate := f.values
	errs := validation.Validate(candidate)
	f.errors = errs
	f.mu.Unlock()

	if len(errs) > 0 {
		f.log.Debug("registration rejected by validation",
			slog.Any("fields", errs.Fields()))
		return errs
	}

	created, err := f.creator.CreateStudent(ctx, candidate)
	if err != nil {
		f.log.Error("failed to save registration",
			slog.String("error", err.Error()))
		return fmt.Errorf("form.Submit: %w", err)
	}

	f.mu.Lock()
	f.values = types.Student{}
	f.errors = validation.Errors{}
	f.showPassword = false
	f.succeeded = true
	f.mu.Unlock()

	f.log.Info("student registered", slog.String("id", string(created.ID)))

	if f.nav != nil {
		f.nav.Navigate(route.Login)
	}
	return nil
}

// DismissNotification clears the success flag once the notification has
// been shown.
func (f *Form) DismissNotification() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.succeeded = false
}

// Values returns a copy of the current field values.
func (f *Form) Values() types.Student {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() validation.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errors)
}

// FieldError returns the stored error for one field, or "".
func (f *Form) FieldError(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[name]
}

// Succeeded reports whether the last submission was accepted and the
// notification has not been dismissed.
func (f *Form) Succeeded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.succeeded
}

// ShowPassword reports the visibility toggle.
func (f *Form) ShowPassword() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.showPassword
}
