package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samdev/lexibase/internal/domain/account"
)

// PostgresRepository persists accounts in Postgres. Verified accounts
// live in users; unverified registrations wait in pending_users.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// FindByID loads the principal row for a session subject.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (account.User, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, created_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

// FindByEmail loads the principal row by address.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (account.User, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, created_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

// FindHashByEmail loads the credential row for login.
func (r *PostgresRepository) FindHashByEmail(ctx context.Context, email string) (account.HashedUser, bool, error) {
	var u account.HashedUser
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return account.HashedUser{}, false, nil
	}
	if err != nil {
		return account.HashedUser{}, false, err
	}
	return u, true, nil
}

// Exists reports whether the address is taken in either table.
func (r *PostgresRepository) Exists(ctx context.Context, email string) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
		    OR EXISTS (SELECT 1 FROM pending_users WHERE email = $1)
	`, email).Scan(&taken)
	return taken, err
}

// CreatePending parks a registration until its email is verified.
func (r *PostgresRepository) CreatePending(ctx context.Context, p account.PendingUser) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pending_users (email, password, verification_token)
		VALUES ($1, $2, $3)
	`, p.Email, p.PasswordHash, p.VerificationToken)
	return err
}

// FetchPending retrieves a parked registration.
func (r *PostgresRepository) FetchPending(ctx context.Context, email string) (account.PendingUser, bool, error) {
	var p account.PendingUser
	var created time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT email, password, verification_token, created_at
		FROM pending_users
		WHERE email = $1
	`, email).Scan(&p.Email, &p.PasswordHash, &p.VerificationToken, &created)
	if errors.Is(err, pgx.ErrNoRows) {
		return account.PendingUser{}, false, nil
	}
	if err != nil {
		return account.PendingUser{}, false, err
	}
	p.CreatedAt = created.UTC()
	return p, true, nil
}

// Promote moves a pending registration into users atomically.
func (r *PostgresRepository) Promote(ctx context.Context, email string) (account.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return account.User{}, err
	}
	defer tx.Rollback(ctx)

	var u account.User
	var created time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password)
		SELECT email, password FROM pending_users WHERE email = $1
		RETURNING id, email, created_at
	`, email).Scan(&u.ID, &u.Email, &created)
	if err != nil {
		return account.User{}, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM pending_users WHERE email = $1`, email); err != nil {
		return account.User{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return account.User{}, err
	}
	u.CreatedAt = created.UTC()
	return u, nil
}

// ResetVerificationToken replaces the token on a pending registration.
func (r *PostgresRepository) ResetVerificationToken(ctx context.Context, email, token string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE pending_users
		SET verification_token = $1
		WHERE email = $2
	`, token, email)
	return err
}

// UpdatePassword stores a fresh hash for a verified account.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password = $1
		WHERE email = $2
	`, passwordHash, email)
	return err
}

func scanUser(row pgx.Row) (account.User, bool, error) {
	var u account.User
	var created time.Time
	err := row.Scan(&u.ID, &u.Email, &created)
	if errors.Is(err, pgx.ErrNoRows) {
		return account.User{}, false, nil
	}
	if err != nil {
		return account.User{}, false, err
	}
	u.CreatedAt = created.UTC()
	return u, true, nil
}

var _ account.Repository = (*PostgresRepository)(nil)
