// Package usecase implements the admin console: the remote-snapshot
// authentication subsystem.
//
// This is deliberately separate from the local credential session in
// feature/auth. The console authenticates against a client-held snapshot of
// the user directory, as the original application did, and the two session
// sources are never reconciled.
package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	authdomain "foro_backend/internal/feature/auth/domain"
	"foro_backend/internal/feature/auth/domain/entity"
	"foro_backend/internal/feature/validation"
)

// Directory lists the known users. Implemented by the remote gateway,
// optionally wrapped by the redis cache decorator.
type Directory interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
}

// FormResetter clears a dependent form's state. Implemented by the forms
// containers.
type FormResetter interface {
	Reset()
}

// Console holds the admin surface's state: the directory snapshot, the
// loading flag and the console session.
type Console struct {
	directory Directory
	dependent FormResetter
	log       zerolog.Logger

	mu      sync.Mutex
	users   []entity.User
	loading bool
	session *entity.User
}

// NewConsole creates a console over the given directory. dependent may be
// nil when no form needs resetting on logout.
func NewConsole(directory Directory, dependent FormResetter, log zerolog.Logger) *Console {
	return &Console{directory: directory, dependent: dependent, log: log}
}

// LoadUsers refreshes the directory snapshot. Failures are suppressed: they
// are logged and the previous snapshot stays visible, so a transient network
// blip never blocks the console. Concurrent loads race benignly; the last
// completed fetch wins.
func (c *Console) LoadUsers(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	users, err := c.directory.ListUsers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.log.Warn().Err(err).Msg("user directory refresh failed, keeping previous snapshot")
		return
	}
	c.users = users
}

// Loading reports whether a directory fetch is in flight.
func (c *Console) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Users returns the current snapshot.
func (c *Console) Users() []entity.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.User, len(c.users))
	copy(out, c.users)
	return out
}

// Authenticate scans the snapshot for a user whose email matches
// case-insensitively, whose password verifies against the stored hash and
// whose role is administrator. Which of the three checks failed is not
// distinguishable from the outside: every failure is
// authdomain.ErrInvalidCredentials.
func (c *Console) Authenticate(email, password string) (*entity.User, error) {
	if validation.EmailRequired(email) != "" || password == "" {
		return nil, authdomain.ErrInvalidCredentials
	}

	c.mu.Lock()
	snapshot := c.users
	c.mu.Unlock()

	for i := range snapshot {
		u := &snapshot[i]
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			continue
		}
		if !u.Role.IsAdmin() {
			continue
		}
		found := *u
		c.mu.Lock()
		c.session = &found
		c.mu.Unlock()
		c.log.Info().Uint("user_id", found.ID).Msg("admin console session opened")
		return &found, nil
	}
	return nil, authdomain.ErrInvalidCredentials
}

// CurrentAdmin returns the console session, nil when closed.
func (c *Console) CurrentAdmin() *entity.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Logout clears the console session and resets the dependent form.
func (c *Console) Logout() {
	c.mu.Lock()
	c.session = nil
	dependent := c.dependent
	c.mu.Unlock()
	if dependent != nil {
		dependent.Reset()
	}
}
