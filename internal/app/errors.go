package app

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password so responses do not enable account enumeration.
	ErrInvalidCredentials = errors.New("Invalid email or password")

	// ErrDuplicateEmail is returned when signup hits the unique email index.
	// The message stays generic about which field conflicted.
	ErrDuplicateEmail = errors.New("Duplicate email entered")

	// ErrInvalidBookID is returned before any store access when a book ID is
	// not a well-formed identifier.
	ErrInvalidBookID = errors.New("Please enter correct ID.")

	// ErrBookNotFound covers both genuinely missing books and books owned by
	// another user; the two cases are indistinguishable to the caller.
	ErrBookNotFound = errors.New("Book not found.")
)

// FieldViolation describes a single invalid input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates all violations found in one input shape.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}
