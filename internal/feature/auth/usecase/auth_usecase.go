// Package usecase implements the business logic for the auth feature.
//
// This is the canonical session source: registration and login run against
// the locally persisted credential store, and the resulting session lives in
// process memory only (cleared on logout or restart). The admin console's
// snapshot-based authentication is a separate subsystem; see feature/admin.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"foro_backend/internal/feature/auth/domain"
	"foro_backend/internal/feature/auth/domain/entity"
	"foro_backend/internal/feature/validation"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention the interface is defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns domain.ErrEmailAlreadyExists
	// when the email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user matching the email address,
	// case-insensitively. Returns domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves the user with the given id.
	// Returns domain.ErrUserNotFound when absent.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// Service implements local registration, login and the in-memory session.
type Service struct {
	users UserRepository
	log   zerolog.Logger

	mu      sync.Mutex
	current *entity.User
}

// NewService creates a Service over the given repository.
func NewService(users UserRepository, log zerolog.Logger) *Service {
	return &Service{users: users, log: log}
}

// Register hashes the password and persists a new user with the default
// RoleUser access level. The caller is expected to have run form validation;
// the password length floor is still enforced here as a last line.
func (s *Service) Register(ctx context.Context, name, email, password string, acceptedTerms bool) (*entity.User, error) {
	if utf8.RuneCountInString(password) < validation.MinPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters long", validation.MinPasswordLen)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:          name,
		Email:         strings.TrimSpace(email),
		PasswordHash:  string(hashed),
		AcceptedTerms: acceptedTerms,
		Role:          entity.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// dummyHash keeps bcrypt.CompareHashAndPassword on the code path even when
// the email is unknown, so login latency does not reveal account existence.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Login authenticates against the local store and installs the session.
// Unknown email and wrong password both return domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.users.FindByEmail(ctx, email)

	hash := dummyHash
	if err == nil {
		hash = user.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	if err != nil || compareErr != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	s.log.Info().Uint("user_id", user.ID).Msg("session opened")
	return user, nil
}

// CurrentUser returns the logged-in user, or nil when no session is open.
func (s *Service) CurrentUser() *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Logout clears the in-memory session. Safe to call with no session open.
func (s *Service) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
