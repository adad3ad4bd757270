package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the storage collaborator for accounts. Implementations
// return raw storage errors; the service converts them into domain
// failures at the call site.
type Repository interface {
	// FindByID loads the principal for a verified session subject.
	FindByID(ctx context.Context, id uuid.UUID) (User, bool, error)
	// FindHashByEmail loads the credential row for login.
	FindHashByEmail(ctx context.Context, email string) (HashedUser, bool, error)
	// FindByEmail loads a verified account by address.
	FindByEmail(ctx context.Context, email string) (User, bool, error)
	// Exists reports whether the address is taken, pending included.
	Exists(ctx context.Context, email string) (bool, error)
	// CreatePending parks a registration until the email is verified.
	CreatePending(ctx context.Context, pending PendingUser) error
	// FetchPending retrieves a parked registration by address.
	FetchPending(ctx context.Context, email string) (PendingUser, bool, error)
	// Promote moves a pending registration into the users table.
	Promote(ctx context.Context, email string) (User, error)
	// ResetVerificationToken replaces the token on a pending registration.
	ResetVerificationToken(ctx context.Context, email, token string) error
	// UpdatePassword stores a fresh hash for a verified account.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}
