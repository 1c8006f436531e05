// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations. These represent business
// failures and are mapped to user-facing messages by upper layers.
var (
	// ErrEmailAlreadyExists indicates that a user with the given email is
	// already registered.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrUserNotFound indicates that no user matched the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates a failed login. Unknown email, wrong
	// password and insufficient role all collapse into this one error so
	// callers cannot probe which part failed.
	ErrInvalidCredentials = errors.New("credenciales incorrectas")
)
