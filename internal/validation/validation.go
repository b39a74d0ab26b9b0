// Package validation holds the pure input-policy checks shared by the auth
// handlers. All checks run in a fixed order so the first violation reported
// for a given input is deterministic.
package validation

import "strings"

// Reason classifies a validation failure for callers that branch on the
// kind of violation rather than the message.
type Reason string

const (
	MissingField      Reason = "missing_field"
	WeakPassword      Reason = "weak_password"
	PasswordUnchanged Reason = "password_unchanged"
	InvalidName       Reason = "invalid_name"
)

type Error struct {
	Reason  Reason
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// The exact special-character set the password policy accepts.
const specialChars = `!@#$%^&*(),.?":{}|<>`

// Password checks the account password policy: at least 8 characters with
// one uppercase letter, one lowercase letter, one digit and one special
// character.
func Password(p string) error {
	if len(p) < 8 {
		return &Error{
			Reason:  WeakPassword,
			Field:   "newPassword",
			Message: "New password must be at least 8 characters long",
		}
	}
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return &Error{
			Reason:  WeakPassword,
			Field:   "newPassword",
			Message: "Password must contain uppercase, lowercase, number, and special character",
		}
	}
	return nil
}

// NewPassword validates a password change: the policy check runs first,
// then the new password must differ from the old one (exact, case-sensitive
// comparison).
func NewPassword(oldPassword, newPassword string) error {
	if err := Password(newPassword); err != nil {
		return err
	}
	if oldPassword == newPassword {
		return &Error{
			Reason:  PasswordUnchanged,
			Field:   "newPassword",
			Message: "New password must be different from current password",
		}
	}
	return nil
}

// Name trims n and enforces the display-name length bounds, returning the
// trimmed value on success.
func Name(n string) (string, error) {
	t := strings.TrimSpace(n)
	if len(t) < 2 || len(t) > 50 {
		return "", &Error{
			Reason:  InvalidName,
			Field:   "name",
			Message: "Name must be between 2 and 50 characters",
		}
	}
	return t, nil
}

// Require reports a MissingField violation with msg when any of the values
// is empty. Required-field checks always precede content checks.
func Require(msg string, values ...string) error {
	for _, v := range values {
		if v == "" {
			return &Error{Reason: MissingField, Message: msg}
		}
	}
	return nil
}
