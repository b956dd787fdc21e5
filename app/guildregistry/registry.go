// Package guildregistry keeps the per-guild setup records (channels, panel
// and status message IDs) the background workers consult. Records live in a
// bigcache instance so a burst of guild setups never grows the GC heap.
package guildregistry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	guildevents "github.com/brauliorg12/apex-range-sub001/app/events/guild"
)

// ErrNotFound is returned when a guild has no recorded setup.
var ErrNotFound = errors.New("guildregistry: no setup record for guild")

// Registry stores and retrieves guild setup records.
type Registry interface {
	Save(record guildevents.GuildSetupCompletedEvent) error
	Get(guildID string) (guildevents.GuildSetupCompletedEvent, error)
	Delete(guildID string) error
	GuildIDs() []string
}

type cacheRegistry struct {
	cache *bigcache.BigCache
}

// New creates a registry backed by an in-memory bigcache with the given
// record lifetime. A zero ttl keeps records for the default 24h.
func New(ctx context.Context, ttl time.Duration) (Registry, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cache, err := bigcache.New(ctx, bigcache.DefaultConfig(ttl))
	if err != nil {
		return nil, fmt.Errorf("failed to create guild registry cache: %w", err)
	}
	return &cacheRegistry{cache: cache}, nil
}

func (r *cacheRegistry) Save(record guildevents.GuildSetupCompletedEvent) error {
	if record.GuildID == "" {
		return errors.New("guildregistry: record has no guild ID")
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal setup record: %w", err)
	}
	return r.cache.Set(record.GuildID, data)
}

func (r *cacheRegistry) Get(guildID string) (guildevents.GuildSetupCompletedEvent, error) {
	var record guildevents.GuildSetupCompletedEvent
	data, err := r.cache.Get(guildID)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return record, ErrNotFound
		}
		return record, err
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("failed to unmarshal setup record: %w", err)
	}
	return record, nil
}

func (r *cacheRegistry) Delete(guildID string) error {
	err := r.cache.Delete(guildID)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil
	}
	return err
}

// GuildIDs lists every guild with a live setup record.
func (r *cacheRegistry) GuildIDs() []string {
	var ids []string
	it := r.cache.Iterator()
	for it.SetNext() {
		entry, err := it.Value()
		if err != nil {
			continue
		}
		ids = append(ids, entry.Key())
	}
	return ids
}
