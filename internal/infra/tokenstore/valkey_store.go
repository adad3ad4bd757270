package tokenstore

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/samdev/lexibase/internal/domain/account"
)

// ValkeyStore keeps one-time tokens in a Valkey-compatible database,
// leaning on server-side expiry instead of a cleanup job.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "reset"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Save stores the token with a server-side TTL.
func (s *ValkeyStore) Save(ctx context.Context, token, email string, ttl time.Duration) error {
	cmd := s.client.B().Set().Key(s.key(token)).Value(email).Ex(ttl).Build()
	return s.client.Do(ctx, cmd).Error()
}

// Fetch returns the email the token was issued for. A key Valkey has
// already expired reads as a miss, not an error.
func (s *ValkeyStore) Fetch(ctx context.Context, token string) (string, bool, error) {
	cmd := s.client.B().Get().Key(s.key(token)).Build()
	email, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return email, true, nil
}

// Delete removes a redeemed token.
func (s *ValkeyStore) Delete(ctx context.Context, token string) error {
	cmd := s.client.B().Del().Key(s.key(token)).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(token string) string {
	return s.prefix + ":token:" + token
}

var _ account.TokenStore = (*ValkeyStore)(nil)
