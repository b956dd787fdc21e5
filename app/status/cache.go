// Package status polls the Apex Legends API and keeps the latest snapshot in
// an explicitly owned cache that the embed renderers read from.
package status

import (
	"sync"
	"time"
)

// ServiceStatus is the state of one upstream service group (login, oauth...).
type ServiceStatus struct {
	Name    string
	Healthy bool
	Detail  string
}

// Snapshot is one observation of the Apex API status.
type Snapshot struct {
	Services    []ServiceStatus
	RetrievedAt time.Time
	FetchError  string
}

// Healthy reports whether every observed service is up.
func (s Snapshot) Healthy() bool {
	if s.FetchError != "" || len(s.Services) == 0 {
		return false
	}
	for _, svc := range s.Services {
		if !svc.Healthy {
			return false
		}
	}
	return true
}

// Cache holds the most recent snapshot. It is constructed once and injected
// wherever the status is read, so tests can own their instance.
type Cache struct {
	mu   sync.RWMutex
	snap Snapshot
	set  bool
}

func NewCache() *Cache {
	return &Cache{}
}

// Set replaces the stored snapshot.
func (c *Cache) Set(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	c.set = true
}

// Snapshot returns the stored snapshot and whether one was ever set.
func (c *Cache) Snapshot() (Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap, c.set
}
