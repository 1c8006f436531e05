package forms

import (
	"context"
	"fmt"
	"sync"

	"foro_backend/internal/feature/validation"
)

// Authenticator performs the one backend call a login submit makes.
type Authenticator interface {
	SubmitLogin(ctx context.Context, email, password string) error
}

// LoginFields is a snapshot of the login form's raw values.
type LoginFields struct {
	Email    string
	Password string
}

// LoginErrors is a snapshot of the per-field error slots.
type LoginErrors struct {
	Email    string
	Password string
}

// LoginForm is the state container behind the login screen.
type LoginForm struct {
	auth Authenticator

	mu     sync.Mutex
	fields LoginFields
	errs   LoginErrors
	status Status
	notify notifier
}

// NewLoginForm creates an idle login form.
func NewLoginForm(auth Authenticator) *LoginForm {
	return &LoginForm{auth: auth}
}

// OnStatus registers a listener invoked after every status change. The
// listener runs outside the container lock and sees transitions in order.
func (f *LoginForm) OnStatus(fn func(Status)) {
	f.notify.setListener(fn)
}

// SetEmail updates the email value and re-validates only that field.
func (f *LoginForm) SetEmail(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Email = v
	f.errs.Email = validation.Email(v)
}

// SetPassword updates the password value. At keystroke level a login
// password only needs to be non-empty; no length rule applies to existing
// accounts.
func (f *LoginForm) SetPassword(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Password = v
	f.errs.Password = ""
}

// Fields returns a snapshot of the raw values.
func (f *LoginForm) Fields() LoginFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Errors returns a snapshot of the error slots.
func (f *LoginForm) Errors() LoginErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}

// Status returns the current submission status.
func (f *LoginForm) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// ValidateAll writes every error slot atomically and reports validity.
func (f *LoginForm) ValidateAll() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateAllLocked()
}

func (f *LoginForm) validateAllLocked() bool {
	f.errs = LoginErrors{
		Email:    validation.EmailRequired(f.fields.Email),
		Password: requiredOnly(f.fields.Password),
	}
	return f.errs == LoginErrors{}
}

func requiredOnly(s string) string {
	if s == "" {
		return validation.MsgRequired
	}
	return ""
}

// Submit validates, then performs the authentication call. Guarded no-op
// while loading; fields reset on success.
func (f *LoginForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.status.State == StateLoading {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	if !f.validateAllLocked() {
		f.setStatusLocked(Status{State: StateError, Message: msgCheckFields})
		f.mu.Unlock()
		return ErrInvalidForm
	}
	fields := f.fields
	f.setStatusLocked(Status{State: StateLoading})
	f.mu.Unlock()

	err := f.auth.SubmitLogin(ctx, fields.Email, fields.Password)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.setStatusLocked(Status{State: StateError, Message: fmt.Sprintf("%v", err)})
		return err
	}
	f.fields = LoginFields{}
	f.errs = LoginErrors{}
	f.setStatusLocked(Status{State: StateSuccess, Message: msgLoginOK})
	return nil
}

// Reset returns the form to its default state. Idempotent.
func (f *LoginForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = LoginFields{}
	f.errs = LoginErrors{}
	f.setStatusLocked(Status{State: StateIdle})
}

// ClearStatus returns the status to Idle, keeping field values.
func (f *LoginForm) ClearStatus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setStatusLocked(Status{State: StateIdle})
}

func (f *LoginForm) setStatusLocked(s Status) {
	f.status = s
	f.notify.notify(s)
}
