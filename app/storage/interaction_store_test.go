package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractionStore_SetGet(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewInteractionStore[string](ctx, time.Minute)
	require.NoError(t, store.Set(ctx, "cid-1", "value-1"))

	got, err := store.Get(ctx, "cid-1")
	require.NoError(t, err)
	assert.Equal(t, "value-1", got)
}

func TestInteractionStore_EmptyCorrelationID(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewInteractionStore[string](ctx, time.Minute)
	assert.Error(t, store.Set(ctx, "", "value"))
}

func TestInteractionStore_Expiry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewInteractionStore[int](ctx, time.Nanosecond)
	require.NoError(t, store.Set(ctx, "cid-2", 42))

	time.Sleep(5 * time.Millisecond)
	_, err := store.Get(ctx, "cid-2")
	assert.Error(t, err)
}

func TestInteractionStore_Delete(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewInteractionStore[string](ctx, time.Minute)
	require.NoError(t, store.Set(ctx, "cid-3", "value"))
	store.Delete(ctx, "cid-3")

	_, err := store.Get(ctx, "cid-3")
	assert.Error(t, err)
}
