package userrepo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samdev/lexibase/internal/domain/account"
)

// MemoryRepository provides an in-memory account store for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	users   map[string]account.User
	hashes  map[string]string
	byID    map[uuid.UUID]string
	pending map[string]account.PendingUser
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:   make(map[string]account.User),
		hashes:  make(map[string]string),
		byID:    make(map[uuid.UUID]string),
		pending: make(map[string]account.PendingUser),
	}
}

// FindByID returns the principal by identifier.
func (r *MemoryRepository) FindByID(_ context.Context, id uuid.UUID) (account.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email, ok := r.byID[id]
	if !ok {
		return account.User{}, false, nil
	}
	return r.users[email], true, nil
}

// FindByEmail returns the principal by address.
func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (account.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	return u, ok, nil
}

// FindHashByEmail returns the credential row by address.
func (r *MemoryRepository) FindHashByEmail(_ context.Context, email string) (account.HashedUser, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	if !ok {
		return account.HashedUser{}, false, nil
	}
	return account.HashedUser{ID: u.ID, Email: u.Email, PasswordHash: r.hashes[email]}, true, nil
}

// Exists reports whether the address is taken, pending included.
func (r *MemoryRepository) Exists(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.users[email]; ok {
		return true, nil
	}
	_, ok := r.pending[email]
	return ok, nil
}

// CreatePending stores an unverified registration.
func (r *MemoryRepository) CreatePending(_ context.Context, p account.PendingUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.CreatedAt = time.Now().UTC()
	r.pending[p.Email] = p
	return nil
}

// FetchPending returns an unverified registration by address.
func (r *MemoryRepository) FetchPending(_ context.Context, email string) (account.PendingUser, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pending[email]
	return p, ok, nil
}

// Promote moves a pending registration into the verified set.
func (r *MemoryRepository) Promote(_ context.Context, email string) (account.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[email]
	if !ok {
		return account.User{}, errors.New("no pending registration")
	}
	u := account.User{ID: uuid.New(), Email: email, CreatedAt: time.Now().UTC()}
	r.users[email] = u
	r.hashes[email] = p.PasswordHash
	r.byID[u.ID] = email
	delete(r.pending, email)
	return u, nil
}

// ResetVerificationToken swaps the token on a pending registration. A
// missing row is a no-op, matching the Postgres UPDATE's zero-row case:
// resending after promotion must not leak whether the address exists.
func (r *MemoryRepository) ResetVerificationToken(_ context.Context, email, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[email]
	if !ok {
		return nil
	}
	p.VerificationToken = token
	r.pending[email] = p
	return nil
}

// UpdatePassword replaces the stored hash.
func (r *MemoryRepository) UpdatePassword(_ context.Context, email, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[email]; !ok {
		return errors.New("no such user")
	}
	r.hashes[email] = passwordHash
	return nil
}

var _ account.Repository = (*MemoryRepository)(nil)
