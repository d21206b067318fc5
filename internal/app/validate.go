package app

import (
	"fmt"
	"net/mail"
	"strings"

	"bookstore/pkg/domain"
)

const minPasswordLength = 6

// ValidateSignUp checks a signup payload and returns nil or a
// *ValidationError carrying every violation.
func ValidateSignUp(name, email, password string) error {
	var violations []FieldViolation
	if strings.TrimSpace(name) == "" {
		violations = append(violations, FieldViolation{Field: "name", Message: "name is required"})
	}
	violations = append(violations, credentialViolations(email, password)...)
	return asValidationError(violations)
}

// ValidateLogin checks a login payload.
func ValidateLogin(email, password string) error {
	return asValidationError(credentialViolations(email, password))
}

func credentialViolations(email, password string) []FieldViolation {
	var violations []FieldViolation
	if strings.TrimSpace(email) == "" {
		violations = append(violations, FieldViolation{Field: "email", Message: "email is required"})
	} else if !isWellFormedEmail(email) {
		violations = append(violations, FieldViolation{Field: "email", Message: "Please enter valid email"})
	}
	if password == "" {
		violations = append(violations, FieldViolation{Field: "password", Message: "password is required"})
	} else if len(password) < minPasswordLength {
		violations = append(violations, FieldViolation{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		})
	}
	return violations
}

// NewBookInput is the payload for creating a book.
type NewBookInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Author      string          `json:"author"`
	Price       float64         `json:"price"`
	Category    domain.Category `json:"category"`
}

// BookPatch is a partial update; nil fields are left untouched.
type BookPatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Author      *string          `json:"author"`
	Price       *float64         `json:"price"`
	Category    *domain.Category `json:"category"`
}

// ValidateNewBook checks a creation payload.
func ValidateNewBook(in NewBookInput) error {
	return asValidationError(bookViolations(in.Title, in.Description, in.Author, in.Price, in.Category))
}

// ValidateBook checks a full book record, used after a patch is merged so the
// result obeys the same rules as a fresh creation.
func ValidateBook(b domain.Book) error {
	return asValidationError(bookViolations(b.Title, b.Description, b.Author, b.Price, b.Category))
}

func bookViolations(title, description, author string, price float64, category domain.Category) []FieldViolation {
	var violations []FieldViolation
	if strings.TrimSpace(title) == "" {
		violations = append(violations, FieldViolation{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(description) == "" {
		violations = append(violations, FieldViolation{Field: "description", Message: "description is required"})
	}
	if strings.TrimSpace(author) == "" {
		violations = append(violations, FieldViolation{Field: "author", Message: "author is required"})
	}
	if price <= 0 {
		violations = append(violations, FieldViolation{Field: "price", Message: "price must be greater than zero"})
	}
	if !category.Valid() {
		violations = append(violations, FieldViolation{Field: "category", Message: "category must be one of the known categories"})
	}
	return violations
}

func isWellFormedEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func asValidationError(violations []FieldViolation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}
