package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samdev/lexibase/internal/domain/account"
)

// PostgresStore keeps one-time tokens in the reset_password_tokens
// table. Expiry is enforced on read; redeemed and stale rows are
// deleted rather than swept.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a store backed by Postgres.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Save stores the token alongside its expiry instant.
func (s *PostgresStore) Save(ctx context.Context, token, email string, ttl time.Duration) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO reset_password_tokens (token, email, expires_at)
		VALUES ($1, $2, $3)
	`, token, email, time.Now().Add(ttl).UTC())
	return err
}

// Fetch returns the email the token was issued for; expired rows read
// as a miss.
func (s *PostgresStore) Fetch(ctx context.Context, token string) (string, bool, error) {
	var email string
	err := s.pool.QueryRow(ctx, `
		SELECT email
		FROM reset_password_tokens
		WHERE token = $1 AND expires_at > now()
	`, token).Scan(&email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return email, true, nil
}

// Delete removes a redeemed token.
func (s *PostgresStore) Delete(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM reset_password_tokens WHERE token = $1`, token)
	return err
}

var _ account.TokenStore = (*PostgresStore)(nil)
