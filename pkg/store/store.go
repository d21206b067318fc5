package store

import (
	"errors"

	"bookstore/pkg/domain"
)

// ErrDuplicateEmail is returned by SaveUser when the email is already taken.
var ErrDuplicateEmail = errors.New("duplicate email")

// BookFilter narrows owner-scoped book listings.
type BookFilter struct {
	// Keyword matches the title as a case-insensitive substring when non-empty.
	Keyword string
	Limit   int
	Offset  int
}

// Store defines persistence operations for users and books.
// Every book query is owner-scoped; a book belonging to another owner is
// indistinguishable from a missing one.
type Store interface {
	// users
	SaveUser(domain.User) error
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id string) (domain.User, bool, error)

	// books
	SaveBook(domain.Book) error
	ListBooksByOwner(ownerID string, filter BookFilter) ([]domain.Book, error)
	GetBookByOwner(id, ownerID string) (domain.Book, bool, error)
	DeleteBookByOwner(id, ownerID string) error
}

// SessionStore issues and validates session tokens.
type SessionStore interface {
	NewSession(userID string) (string, error)
	GetUserIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}
