package status

import (
	"context"
	"log/slog"
	"time"
)

// Poller refreshes the status cache on a fixed interval until its context
// is cancelled.
type Poller struct {
	client   Client
	cache    *Cache
	interval time.Duration
	logger   *slog.Logger
}

func NewPoller(client Client, cache *Cache, interval time.Duration, logger *slog.Logger) *Poller {
	return &Poller{client: client, cache: cache, interval: interval, logger: logger}
}

// Run blocks, polling until ctx is done. The first poll happens immediately.
func (p *Poller) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	snap, err := p.client.Fetch(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "Apex status poll failed", "error", err)
		// Store the failed snapshot too so the embed can say the API is
		// unreachable instead of showing stale data as current.
	}
	p.cache.Set(snap)
}
