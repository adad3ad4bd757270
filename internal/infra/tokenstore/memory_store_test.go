package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveFetchDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-1", "user@example.com", time.Hour))

	email, ok, err := store.Fetch(ctx, "tok-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "user@example.com", email)

	require.NoError(t, store.Delete(ctx, "tok-1"))

	_, ok, err = store.Fetch(ctx, "tok-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStore_ExpiryReadsAsMiss(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok-1", "user@example.com", -time.Second))

	_, ok, err := store.Fetch(ctx, "tok-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStore_UnknownTokenIsMiss(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Fetch(context.Background(), "never-issued")
	require.NoError(t, err)
	require.False(t, ok)
}
