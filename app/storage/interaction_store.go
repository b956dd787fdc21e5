package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ISInterface defines the behavior for the interaction store using Generics [T]
type ISInterface[T any] interface {
	Set(ctx context.Context, correlationID string, interaction T) error
	Delete(ctx context.Context, correlationID string)
	Get(ctx context.Context, correlationID string) (T, error)
}

// interactionItem holds the data and the expiration timestamp
type interactionItem[T any] struct {
	value      T
	expiryTime int64 // UnixNano for high-performance comparison
}

// InteractionStore manages short-lived interaction state keyed by correlation ID.
type InteractionStore[T any] struct {
	store map[string]interactionItem[T]
	mu    sync.RWMutex
	ttl   time.Duration
}

const DefaultInteractionStoreTTL = 15 * time.Minute

func NewInteractionStore[T any](ctx context.Context, ttl time.Duration) ISInterface[T] {
	is := &InteractionStore[T]{
		store: make(map[string]interactionItem[T]),
		ttl:   ttl,
	}
	// The cleanup interval can be a fraction of the TTL or a fixed 1m
	go is.startJanitor(ctx, 1*time.Minute)
	return is
}

func (ts *InteractionStore[T]) Set(ctx context.Context, correlationID string, interaction T) error {
	if correlationID == "" {
		return errors.New("correlation ID is empty")
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.store[correlationID] = interactionItem[T]{
		value:      interaction,
		expiryTime: time.Now().Add(ts.ttl).UnixNano(),
	}

	slog.DebugContext(ctx, "InteractionStore: Stored item", "correlation_id", correlationID)
	return nil
}

func (ts *InteractionStore[T]) Get(ctx context.Context, correlationID string) (T, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	item, exists := ts.store[correlationID]
	if !exists || time.Now().UnixNano() > item.expiryTime {
		var zero T
		return zero, errors.New("item not found or expired")
	}

	return item.value, nil
}

func (ts *InteractionStore[T]) Delete(ctx context.Context, correlationID string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	delete(ts.store, correlationID)
}

// startJanitor runs in the background and removes expired keys at a fixed interval
func (ts *InteractionStore[T]) startJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ts.performCleanup()
		}
	}
}

func (ts *InteractionStore[T]) performCleanup() {
	now := time.Now().UnixNano()

	ts.mu.Lock()
	defer ts.mu.Unlock()

	initialSize := len(ts.store)
	for id, item := range ts.store {
		if now > item.expiryTime {
			delete(ts.store, id)
		}
	}

	removed := initialSize - len(ts.store)
	if removed > 0 {
		slog.Debug("InteractionStore: Cleanup complete",
			"removed_count", removed,
			"remaining_count", len(ts.store))
	}
}
