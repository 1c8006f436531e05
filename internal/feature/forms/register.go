package forms

import (
	"context"
	"fmt"
	"sync"

	"foro_backend/internal/feature/validation"
)

// Registrar performs the one backend call a registration submit makes.
// Defined here, by the consumer; the wiring layer adapts the auth service.
type Registrar interface {
	SubmitRegistration(ctx context.Context, name, email, password string, acceptedTerms bool) error
}

// RegisterFields is a snapshot of the registration form's raw values.
type RegisterFields struct {
	Name          string
	Email         string
	Password      string
	Confirm       string
	AcceptedTerms bool
}

// RegisterErrors is a snapshot of the per-field error slots. Empty string
// means no error.
type RegisterErrors struct {
	Name     string
	Email    string
	Password string
	Confirm  string
	Terms    string
}

// RegisterForm is the state container behind the registration screen.
type RegisterForm struct {
	registrar Registrar

	mu     sync.Mutex
	fields RegisterFields
	errs   RegisterErrors
	status Status
	notify notifier
}

// NewRegisterForm creates an idle registration form.
func NewRegisterForm(registrar Registrar) *RegisterForm {
	return &RegisterForm{registrar: registrar}
}

// OnStatus registers a listener invoked after every status change. The
// listener runs outside the container lock and sees transitions in order.
func (f *RegisterForm) OnStatus(fn func(Status)) {
	f.notify.setListener(fn)
}

// SetName updates the name value and re-validates only that field.
func (f *RegisterForm) SetName(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Name = v
	f.errs.Name = validation.Name(v)
}

// SetEmail updates the email value and re-validates only that field.
func (f *RegisterForm) SetEmail(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Email = v
	f.errs.Email = validation.Email(v)
}

// SetPassword updates the password and re-validates it together with the
// confirmation, which depends on it.
func (f *RegisterForm) SetPassword(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Password = v
	f.errs.Password = validation.Password(v)
	f.errs.Confirm = validation.PasswordsMatch(v, f.fields.Confirm)
}

// SetConfirm updates the confirmation and re-validates the match.
func (f *RegisterForm) SetConfirm(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.Confirm = v
	f.errs.Confirm = validation.PasswordsMatch(f.fields.Password, v)
}

// SetAcceptedTerms updates the terms checkbox and clears its error.
func (f *RegisterForm) SetAcceptedTerms(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields.AcceptedTerms = v
	if v {
		f.errs.Terms = ""
	}
}

// Fields returns a snapshot of the raw values.
func (f *RegisterForm) Fields() RegisterFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Errors returns a snapshot of the error slots.
func (f *RegisterForm) Errors() RegisterErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}

// Status returns the current submission status.
func (f *RegisterForm) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// ValidateAll runs every rule at submit severity and writes all error slots
// atomically. It is the single source of truth for "may I submit".
func (f *RegisterForm) ValidateAll() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateAllLocked()
}

func (f *RegisterForm) validateAllLocked() bool {
	f.errs = RegisterErrors{
		Name:     validation.NameRequired(f.fields.Name),
		Email:    validation.EmailRequired(f.fields.Email),
		Password: validation.PasswordRequired(f.fields.Password),
		Confirm:  validation.PasswordsMatchRequired(f.fields.Password, f.fields.Confirm),
		Terms:    validation.TermsAccepted(f.fields.AcceptedTerms),
	}
	return f.errs == RegisterErrors{}
}

// Submit validates, then performs the registration call. It is a guarded
// no-op while a previous submit is still loading. On success the fields
// reset to defaults.
func (f *RegisterForm) Submit(ctx context.Context) error {
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

	err := f.registrar.SubmitRegistration(ctx, fields.Name, fields.Email, fields.Password, fields.AcceptedTerms)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.setStatusLocked(Status{State: StateError, Message: fmt.Sprintf("%s: %v", msgOperationFailed, err)})
		return err
	}
	f.fields = RegisterFields{}
	f.errs = RegisterErrors{}
	f.setStatusLocked(Status{State: StateSuccess, Message: msgRegisterOK})
	return nil
}

// Reset returns the form to its default state. Idempotent, no backend side
// effects.
func (f *RegisterForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = RegisterFields{}
	f.errs = RegisterErrors{}
	f.setStatusLocked(Status{State: StateIdle})
}

// ClearStatus returns the status to Idle, keeping field values.
func (f *RegisterForm) ClearStatus() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setStatusLocked(Status{State: StateIdle})
}

// setStatusLocked must be called with f.mu held. Delivery to the listener
// is queued, so it happens outside the lock and in transition order.
func (f *RegisterForm) setStatusLocked(s Status) {
	f.status = s
	f.notify.notify(s)
}
