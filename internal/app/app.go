package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore/internal/util"
	"bookstore/pkg/auth"
	"bookstore/pkg/domain"
	"bookstore/pkg/store"
)

const defaultPageSize = 2

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	JWTIssuer     string
	JWTAudience   string
	JWTLeeway     time.Duration
	SessionTTL    time.Duration
	PageSize      int
	Store         store.Store
	Sessions      store.SessionStore
}

// App is the core application service wiring together storage, sessions, and
// the owner-scoped book logic.
type App struct {
	store    store.Store
	sessions store.SessionStore
	pageSize int
}

// New constructs the application with database storage and session management.
func New(cfg Config) (*App, error) {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}

	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}

	sessionStore := cfg.Sessions
	if sessionStore == nil {
		var revoker store.TokenRevoker
		if strings.TrimSpace(cfg.RedisAddr) != "" {
			revoker = store.NewRedisTokenRevoker(cfg.RedisAddr, cfg.RedisPassword)
		} else {
			revoker = store.NewMemoryTokenRevoker()
		}
		jwtStore, err := store.NewJWTSessionStore(cfg.JWTSecret, cfg.SessionTTL, revoker, store.JWTOptions{
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
			Leeway:   cfg.JWTLeeway,
		})
		if err != nil {
			return nil, fmt.Errorf("init jwt session store: %w", err)
		}
		sessionStore = jwtStore
	}

	return &App{
		store:    dataStore,
		sessions: sessionStore,
		pageSize: cfg.PageSize,
	}, nil
}

// SignUp registers a new user and issues a session token bound to its ID.
func (a *App) SignUp(name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if err := ValidateSignUp(name, email, password); err != nil {
		return "", err
	}
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:           util.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.store.SaveUser(user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return "", ErrDuplicateEmail
		}
		return "", fmt.Errorf("save user: %w", err)
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return token, nil
}

// Login validates credentials and issues a session token. Unknown email and
// wrong password fail with the identical error.
func (a *App) Login(email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := ValidateLogin(email, password); err != nil {
		return "", err
	}
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("fetch user: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return token, nil
}

// UserFromToken resolves a user from a session token. A token whose subject
// no longer exists is treated as unauthenticated.
func (a *App) UserFromToken(token string) (domain.User, bool) {
	uid, ok, err := a.sessions.GetUserIDByToken(token)
	if err != nil || !ok {
		return domain.User{}, false
	}
	user, found, err := a.store.GetUserByID(uid)
	if err != nil || !found {
		return domain.User{}, false
	}
	return user, true
}

// Logout revokes a session token until its natural expiry.
func (a *App) Logout(token string) error {
	return a.sessions.DeleteSession(token)
}

// ListBooks returns one page of the caller's books, optionally narrowed by a
// case-insensitive keyword match on the title. Non-positive pages are clamped
// to the first page.
func (a *App) ListBooks(caller domain.User, page int, keyword string) ([]domain.Book, error) {
	if page < 1 {
		page = 1
	}
	return a.store.ListBooksByOwner(caller.ID, store.BookFilter{
		Keyword: keyword,
		Limit:   a.pageSize,
		Offset:  a.pageSize * (page - 1),
	})
}

// CreateBook validates the input, stamps the caller as owner, and inserts.
func (a *App) CreateBook(caller domain.User, in NewBookInput) (domain.Book, error) {
	if err := ValidateNewBook(in); err != nil {
		return domain.Book{}, err
	}
	now := time.Now().UTC()
	book := domain.Book{
		ID:          util.NewID(),
		OwnerID:     caller.ID,
		Title:       in.Title,
		Description: in.Description,
		Author:      in.Author,
		Price:       in.Price,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.SaveBook(book); err != nil {
		return domain.Book{}, fmt.Errorf("save book: %w", err)
	}
	return book, nil
}

// GetBook retrieves one of the caller's books. The ID syntax is checked
// before any store access; a book owned by someone else reads as missing.
func (a *App) GetBook(caller domain.User, id string) (domain.Book, error) {
	if !util.IsValidID(id) {
		return domain.Book{}, ErrInvalidBookID
	}
	book, ok, err := a.store.GetBookByOwner(id, caller.ID)
	if err != nil {
		return domain.Book{}, fmt.Errorf("fetch book: %w", err)
	}
	if !ok {
		return domain.Book{}, ErrBookNotFound
	}
	return book, nil
}

// UpdateBook applies a partial patch to one of the caller's books. The owned
// record is confirmed to exist first, then the merged result is validated and
// persisted under the same owner-scoped filter.
func (a *App) UpdateBook(caller domain.User, id string, patch BookPatch) (domain.Book, error) {
	if !util.IsValidID(id) {
		return domain.Book{}, ErrInvalidBookID
	}
	book, ok, err := a.store.GetBookByOwner(id, caller.ID)
	if err != nil {
		return domain.Book{}, fmt.Errorf("fetch book: %w", err)
	}
	if !ok {
		return domain.Book{}, ErrBookNotFound
	}
	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.Description != nil {
		book.Description = *patch.Description
	}
	if patch.Author != nil {
		book.Author = *patch.Author
	}
	if patch.Price != nil {
		book.Price = *patch.Price
	}
	if patch.Category != nil {
		book.Category = *patch.Category
	}
	if err := ValidateBook(book); err != nil {
		return domain.Book{}, err
	}
	book.UpdatedAt = time.Now().UTC()
	if err := a.store.SaveBook(book); err != nil {
		return domain.Book{}, fmt.Errorf("update book: %w", err)
	}
	return book, nil
}

// DeleteBook removes one of the caller's books after confirming it exists.
func (a *App) DeleteBook(caller domain.User, id string) error {
	_, ok, err := a.store.GetBookByOwner(id, caller.ID)
	if err != nil {
		return fmt.Errorf("fetch book: %w", err)
	}
	if !ok {
		return ErrBookNotFound
	}
	if err := a.store.DeleteBookByOwner(id, caller.ID); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}
