package store

import (
	"strings"
	"sync"

	"bookstore/pkg/domain"
)

// MemoryStore keeps users and books in-process. It mirrors GormStore behavior
// closely enough to back the service in tests and local development.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]domain.User // key: user ID
	email  map[string]string      // email -> user ID
	books  map[string]domain.Book
	orders []string // book IDs in insertion order
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]domain.User),
		email: make(map[string]string),
		books: make(map[string]domain.Book),
	}
}

// SaveUser registers a user, enforcing email uniqueness.
func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.email[u.Email]; ok && existing != u.ID {
		return ErrDuplicateEmail
	}
	m.users[u.ID] = u
	m.email[u.Email] = u.ID
	return nil
}

// GetUserByEmail looks up a user by email.
func (m *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.email[email]; ok {
		u, exists := m.users[id]
		return u, exists, nil
	}
	return domain.User{}, false, nil
}

// GetUserByID returns a user by ID.
func (m *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// SaveBook stores or replaces a book record and tracks insertion order.
func (m *MemoryStore) SaveBook(b domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.books[b.ID]; !exists {
		m.orders = append(m.orders, b.ID)
	}
	m.books[b.ID] = b
	return nil
}

// ListBooksByOwner returns the owner's books in insertion order, filtered and
// windowed like the SQL implementation.
func (m *MemoryStore) ListBooksByOwner(ownerID string, filter BookFilter) ([]domain.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keyword := strings.ToLower(filter.Keyword)
	matched := make([]domain.Book, 0, len(m.orders))
	for _, id := range m.orders {
		b, ok := m.books[id]
		if !ok || b.OwnerID != ownerID {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(b.Title), keyword) {
			continue
		}
		matched = append(matched, b)
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []domain.Book{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// GetBookByOwner retrieves a book scoped to its owner.
func (m *MemoryStore) GetBookByOwner(id, ownerID string) (domain.Book, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[id]
	if !ok || b.OwnerID != ownerID {
		return domain.Book{}, false, nil
	}
	return b, true, nil
}

// DeleteBookByOwner removes a book when the owner matches.
func (m *MemoryStore) DeleteBookByOwner(id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok || b.OwnerID != ownerID {
		return nil
	}
	delete(m.books, id)
	filtered := m.orders[:0]
	for _, item := range m.orders {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	m.orders = filtered
	return nil
}
