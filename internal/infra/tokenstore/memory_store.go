package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/samdev/lexibase/internal/domain/account"
)

type entry struct {
	email     string
	expiresAt time.Time
}

// MemoryStore holds one-time tokens in process memory for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

// Save stores the token with its TTL.
func (s *MemoryStore) Save(_ context.Context, token, email string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.entries[token] = entry{email: email, expiresAt: exp}
	return nil
}

// Fetch returns the email the token was issued for.
func (s *MemoryStore) Fetch(_ context.Context, token string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if hasExpired(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return "", false, nil
	}
	return e.email, true, nil
}

// Delete removes a redeemed token.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ account.TokenStore = (*MemoryStore)(nil)
