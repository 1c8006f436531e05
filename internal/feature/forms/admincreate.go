package forms

import (
	"context"
	"fmt"
	"sync"

	"foro_backend/internal/feature/validation"
)

// AccountCreator performs the one backend call an admin-creation submit
// makes: registering an account on behalf of another user.
type AccountCreator interface {
	SubmitAccount(ctx context.Context, name, email, password string) error
}

// AdminCreateFields is a snapshot of the admin-creation form's raw values.
type AdminCreateFields struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// AdminCreateErrors is a snapshot of the per-field error slots.
type AdminCreateErrors struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// AdminCreateForm is the state container behind the admin's create-user
// screen. Same rules as registration, minus the terms checkbox: the admin
// is not the account holder.
type AdminCreateForm struct {
	creator AccountCreator

	mu     sync.Mutex
	fields AdminCreateFields
	errs   AdminCreateErrors
	status Status
	notify notifier
}

// NewAdminCreateForm creates an idle admin-creation form.
func NewAdminCreateForm(creator AccountCreator) *AdminCreateForm {
	return &AdminCreateForm{creator: creator}
}

// OnStatus registers a listener invoked after every status change. The
// listener runs outside the container lock and sees transitions in order.
func (f *AdminCreateForm) OnStatus(fn func(Status)) {
	f.notify.setListener(fn)
}

// SetName updates the name value and re-validates only that field.
func (f *AdminCreateForm) SetName(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Name = v
	f.errs.Name = validation.Name(v)
}

// SetEmail updates the email value and re-validates only that field.
func (f *AdminCreateForm) SetEmail(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Email = v
	f.errs.Email = validation.Email(v)
}

// SetPassword updates the password and re-validates it together with the
// dependent confirmation field.
func (f *AdminCreateForm) SetPassword(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Password = v
	f.errs.Password = validation.Password(v)
	f.errs.Confirm = validation.PasswordsMatch(v, f.fields.Confirm)
}

// SetConfirm updates the confirmation and re-validates the match.
func (f *AdminCreateForm) SetConfirm(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Confirm = v
	f.errs.Confirm = validation.PasswordsMatch(f.fields.Password, v)
}

// Fields returns a snapshot of the raw values.
func (f *AdminCreateForm) Fields() AdminCreateFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Errors returns a snapshot of the error slots.
func (f *AdminCreateForm) Errors() AdminCreateErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}

// Status returns the current submission status.
func (f *AdminCreateForm) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// ValidateAll writes every error slot atomically and reports validity.
func (f *AdminCreateForm) ValidateAll() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateAllLocked()
}

func (f *AdminCreateForm) validateAllLocked() bool {
	f.errs = AdminCreateErrors{
		Name:     validation.NameRequired(f.fields.Name),
		Email:    validation.EmailRequired(f.fields.Email),
		Password: validation.PasswordRequired(f.fields.Password),
		Confirm:  validation.PasswordsMatchRequired(f.fields.Password, f.fields.Confirm),
	}
	return f.errs == AdminCreateErrors{}
}

// Submit validates, then performs the account-creation call. Guarded no-op
// while loading; fields reset on success.
func (f *AdminCreateForm) Submit(ctx context.Context) error {
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

	err := f.creator.SubmitAccount(ctx, fields.Name, fields.Email, fields.Password)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.setStatusLocked(Status{State: StateError, Message: fmt.Sprintf("%s: %v", msgOperationFailed, err)})
		return err
	}
	f.fields = AdminCreateFields{}
	f.errs = AdminCreateErrors{}
	f.setStatusLocked(Status{State: StateSuccess, Message: msgAdminCreateOK})
	return nil
}

// Reset returns the form to its default state. Idempotent.
func (f *AdminCreateForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = AdminCreateFields{}
	f.errs = AdminCreateErrors{}
	f.setStatusLocked(Status{State: StateIdle})
}

// ClearStatus returns the status to Idle, keeping field values.
func (f *AdminCreateForm) ClearStatus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setStatusLocked(Status{State: StateIdle})
}

func (f *AdminCreateForm) setStatusLocked(s Status) {
	f.status = s
	f.notify.notify(s)
}
