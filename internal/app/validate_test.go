package app

import (
	"errors"
	"testing"

	"bookstore/pkg/domain"
)

func violationFields(t *testing.T, err error) map[string]bool {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	fields := make(map[string]bool, len(vErr.Violations))
	for _, v := range vErr.Violations {
		fields[v.Field] = true
	}
	return fields
}

func TestValidateSignUp(t *testing.T) {
	if err := ValidateSignUp("Gamba", "gamba@gmail.com", "123456"); err != nil {
		t.Fatalf("expected valid signup, got %v", err)
	}

	fields := violationFields(t, ValidateSignUp("", "", ""))
	for _, want := range []string{"name", "email", "password"} {
		if !fields[want] {
			t.Fatalf("expected violation on %q, got %v", want, fields)
		}
	}

	fields = violationFields(t, ValidateSignUp("Gamba", "not-an-email", "123456"))
	if !fields["email"] || len(fields) != 1 {
		t.Fatalf("expected only email violation, got %v", fields)
	}

	fields = violationFields(t, ValidateSignUp("Gamba", "gamba@gmail.com", "12345"))
	if !fields["password"] || len(fields) != 1 {
		t.Fatalf("expected only password violation, got %v", fields)
	}
}

func TestValidateLogin(t *testing.T) {
	if err := ValidateLogin("gamba@gmail.com", "123456"); err != nil {
		t.Fatalf("expected valid login, got %v", err)
	}
	fields := violationFields(t, ValidateLogin("bad email", "short"))
	if !fields["email"] || !fields["password"] {
		t.Fatalf("expected email and password violations, got %v", fields)
	}
}

func TestValidateNewBook(t *testing.T) {
	valid := NewBookInput{
		Title:       "Book 4",
		Description: "This is book 4",
		Author:      "Caveman",
		Price:       200,
		Category:    domain.CategoryAdventure,
	}
	if err := ValidateNewBook(valid); err != nil {
		t.Fatalf("expected valid book, got %v", err)
	}

	fields := violationFields(t, ValidateNewBook(NewBookInput{Price: -1, Category: "Cooking"}))
	for _, want := range []string{"title", "description", "author", "price", "category"} {
		if !fields[want] {
			t.Fatalf("expected violation on %q, got %v", want, fields)
		}
	}
}

func TestValidateBookAfterPatch(t *testing.T) {
	book := domain.Book{
		Title:       "",
		Description: "d",
		Author:      "a",
		Price:       10,
		Category:    domain.CategoryCrime,
	}
	fields := violationFields(t, ValidateBook(book))
	if !fields["title"] || len(fields) != 1 {
		t.Fatalf("expected only title violation, got %v", fields)
	}
}
