package memory

import (
	"context"
	"testing"

	"chatrelay/domain/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadStore_GetMissing(t *testing.T) {
	store := NewThreadStore()

	_, err := store.Get(context.Background(), "ada@example.com")

	assert.ErrorIs(t, err, chat.ErrThreadNotFound)
}

func TestThreadStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewThreadStore()
	record := chat.NewThreadRecord("ada@example.com", "thread-1")

	require.NoError(t, store.Create(ctx, record))

	got, err := store.Get(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "thread-1", got.ThreadID)
	assert.False(t, got.ReadAlong)
}

func TestThreadStore_CreateIsImmutable(t *testing.T) {
	ctx := context.Background()
	store := NewThreadStore()

	require.NoError(t, store.Create(ctx, chat.NewThreadRecord("ada@example.com", "thread-1")))
	err := store.Create(ctx, chat.NewThreadRecord("ada@example.com", "thread-2"))

	assert.ErrorIs(t, err, chat.ErrThreadExists)

	got, err := store.Get(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "thread-1", got.ThreadID, "the first stored thread id must stick")
}

func TestThreadStore_SetReadAlong(t *testing.T) {
	ctx := context.Background()
	store := NewThreadStore()

	assert.ErrorIs(t, store.SetReadAlong(ctx, "ada@example.com", true), chat.ErrThreadNotFound)

	require.NoError(t, store.Create(ctx, chat.NewThreadRecord("ada@example.com", "thread-1")))
	require.NoError(t, store.SetReadAlong(ctx, "ada@example.com", true))

	got, err := store.Get(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, got.ReadAlong)
}

func TestThreadCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache := NewThreadCache()
	record := chat.NewThreadRecord("ada@example.com", "thread-1")

	_, ok := cache.Get(ctx, "ada@example.com")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, record, 60))

	got, ok := cache.Get(ctx, "ada@example.com")
	require.True(t, ok)
	assert.Equal(t, "thread-1", got.ThreadID)
}

func TestThreadCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache := NewThreadCache()

	require.NoError(t, cache.Set(ctx, chat.NewThreadRecord("ada@example.com", "thread-1"), -1))

	_, ok := cache.Get(ctx, "ada@example.com")
	assert.False(t, ok, "expired entries must not be served")
}
