// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered forum user.
type User struct {
	// ID is the unique identifier for the user. Local and remote ids are
	// independent numbering spaces; this field holds whichever space the
	// surrounding repository works in.
	ID uint

	// Name is the display name shown next to publications and comments.
	Name string

	// Email is the address used for authentication. Unique, compared
	// case-insensitively.
	Email string

	// PasswordHash is the bcrypt hash of the user's password. Plaintext
	// passwords are never stored or transmitted.
	PasswordHash string

	// AcceptedTerms records whether the user accepted the terms of use at
	// registration.
	AcceptedTerms bool

	// Role is the user's access level.
	Role Role

	CreatedAt time.Time
	UpdatedAt time.Time
}
