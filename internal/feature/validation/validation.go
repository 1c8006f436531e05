// Package validation holds the pure field rules behind the form containers.
//
// Each rule returns the user-facing message for the failed check, or the
// empty string when the value passes. The plain variants are lenient about
// empty input so a field is not flagged while the user is still typing; the
// Required variants additionally reject empty input and are used at
// submit time.
package validation

import (
	"regexp"
	"unicode/utf8"
)

// MinNameLen and MinPasswordLen are the minimum accepted lengths, counted
// in runes.
const (
	MinNameLen     = 2
	MinPasswordLen = 6
)

// User-facing messages, one per rule.
const (
	MsgRequired          = "Campo obligatorio"
	MsgNameTooShort      = "El nombre es demasiado corto"
	MsgEmailInvalid      = "Correo electrónico no válido"
	MsgPasswordTooShort  = "La contraseña debe tener al menos 6 caracteres"
	MsgPasswordsMismatch = "Las contraseñas no coinciden"
	MsgTermsNotAccepted  = "Debes aceptar los términos y condiciones"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Name flags a non-empty name shorter than MinNameLen.
func Name(s string) string {
	if s != "" && utf8.RuneCountInString(s) < MinNameLen {
		return MsgNameTooShort
	}
	return ""
}

// NameRequired additionally rejects the empty name.
func NameRequired(s string) string {
	if s == "" {
		return MsgRequired
	}
	return Name(s)
}

// Email flags a non-empty address that does not look like local@domain.tld.
func Email(s string) string {
	if s != "" && !emailRegex.MatchString(s) {
		return MsgEmailInvalid
	}
	return ""
}

// EmailRequired additionally rejects the empty address.
func EmailRequired(s string) string {
	if s == "" {
		return MsgRequired
	}
	return Email(s)
}

// Password flags a non-empty password shorter than MinPasswordLen.
func Password(s string) string {
	if s != "" && utf8.RuneCountInString(s) < MinPasswordLen {
		return MsgPasswordTooShort
	}
	return ""
}

// PasswordRequired additionally rejects the empty password.
func PasswordRequired(s string) string {
	if s == "" {
		return MsgRequired
	}
	return Password(s)
}

// PasswordsMatch flags a non-empty confirmation that differs from the
// password. An empty confirmation is not flagged while typing.
func PasswordsMatch(password, confirm string) string {
	if confirm != "" && password != confirm {
		return MsgPasswordsMismatch
	}
	return ""
}

// PasswordsMatchRequired additionally rejects the empty confirmation.
func PasswordsMatchRequired(password, confirm string) string {
	if confirm == "" {
		return MsgRequired
	}
	return PasswordsMatch(password, confirm)
}

// TermsAccepted flags an unchecked terms box.
func TermsAccepted(accepted bool) string {
	if !accepted {
		return MsgTermsNotAccepted
	}
	return ""
}
