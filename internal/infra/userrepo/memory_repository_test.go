package userrepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samdev/lexibase/internal/domain/account"
)

func TestMemoryRepository_PendingLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.CreatePending(ctx, account.PendingUser{
		Email:             "user@example.com",
		PasswordHash:      "hash",
		VerificationToken: "tok-1",
	}))

	require.NoError(t, repo.ResetVerificationToken(ctx, "user@example.com", "tok-2"))
	p, found, err := repo.FetchPending(ctx, "user@example.com")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "tok-2", p.VerificationToken)

	user, err := repo.Promote(ctx, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, "user@example.com", user.Email)

	_, found, err = repo.FetchPending(ctx, "user@example.com")
	require.NoError(t, err)
	require.False(t, found)
}

// The Postgres twin's UPDATE silently matches zero rows when no pending
// registration exists; the memory twin must behave the same so a resend
// after promotion takes the identical path in tests and production.
func TestMemoryRepository_ResetTokenWithoutPendingRowIsNoOp(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.ResetVerificationToken(ctx, "ghost@example.com", "tok"))

	require.NoError(t, repo.CreatePending(ctx, account.PendingUser{Email: "user@example.com", PasswordHash: "hash"}))
	_, err := repo.Promote(ctx, "user@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.ResetVerificationToken(ctx, "user@example.com", "tok"))
}
