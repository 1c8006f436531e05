// Package forms holds the observable state containers behind the login,
// registration and admin-creation screens.
//
// A container owns its screen's raw field values, the matching per-field
// error slots and a coarse submission status. Field edits re-validate
// synchronously; Submit runs exactly one backend call and maps the outcome
// back into the status. Containers are constructed once at the application
// root and passed by reference, independent of any UI lifecycle: a result
// arriving after the screen went away is just another state write.
package forms

import (
	"errors"
	"sync"
)

// State is the coarse submission state of a form.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Status pairs the submission state with its user-facing message. Success
// and Error carry a message; Idle and Loading do not.
type Status struct {
	State   State
	Message string
}

// ErrSubmitInFlight is returned by Submit while a previous submission is
// still running. The duplicate attempt has no side effects.
var ErrSubmitInFlight = errors.New("submit already in flight")

// ErrInvalidForm is returned by Submit when validation fails; the per-field
// error slots carry the detail.
var ErrInvalidForm = errors.New("form validation failed")

// notifier delivers status values to the registered listener strictly in
// the order they were produced. Values queue while a delivery goroutine is
// running, so the listener runs outside any container lock and may re-enter
// the container, yet never observes Loading after Success or Error.
type notifier struct {
	mu      sync.Mutex
	fn      func(Status)
	queue   []Status
	running bool
}

func (n *notifier) setListener(fn func(Status)) {
	n.mu.Lock()
	n.fn = fn
	n.mu.Unlock()
}

func (n *notifier) notify(s Status) {
	n.mu.Lock()
	if n.fn == nil {
		n.mu.Unlock()
		return
	}
	n.queue = append(n.queue, s)
	if n.running {
		n.mu.Unlock()
		return
	}
	n.running = true
	n.mu.Unlock()
	go n.drain()
}

func (n *notifier) drain() {
	for {
		n.mu.Lock()
		if len(n.queue) == 0 {
			n.running = false
			n.mu.Unlock()
			return
		}
		s := n.queue[0]
		n.queue = n.queue[1:]
		fn := n.fn
		n.mu.Unlock()
		fn(s)
	}
}

// User-facing status messages.
const (
	msgCheckFields     = "Revisa los campos"
	msgRegisterOK      = "Registro completado"
	msgLoginOK         = "Sesión iniciada"
	msgAdminCreateOK   = "Usuario creado"
	msgOperationFailed = "No se pudo completar la operación"
)
