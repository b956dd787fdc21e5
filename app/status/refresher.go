package status

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	discord "github.com/brauliorg12/apex-range-sub001/app/discordgo"
	guildevents "github.com/brauliorg12/apex-range-sub001/app/events/guild"
	"github.com/brauliorg12/apex-range-sub001/app/guildregistry"
)

// Refresher keeps the per-guild status messages in sync with the cache. It
// learns about new messages from guild setup events (via the watermill
// router) and re-renders every registered message on a fixed interval.
type Refresher struct {
	session  discord.Session
	registry guildregistry.Registry
	cache    *Cache
	interval time.Duration
	logger   *slog.Logger
}

func NewRefresher(session discord.Session, registry guildregistry.Registry, cache *Cache, interval time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{
		session:  session,
		registry: registry,
		cache:    cache,
		interval: interval,
		logger:   logger,
	}
}

// RegisterHandlers subscribes the refresher to the setup events it consumes.
func (r *Refresher) RegisterHandlers(router *message.Router, subscriber message.Subscriber) {
	router.AddNoPublisherHandler(
		"status.refresh_on_guild_setup",
		guildevents.GuildSetupCompletedTopic,
		subscriber,
		r.HandleSetupCompleted,
	)
}

// HandleSetupCompleted records the new guild and renders its status message
// immediately. Undecodable or incomplete events are dropped, not retried.
func (r *Refresher) HandleSetupCompleted(msg *message.Message) error {
	ctx := msg.Context()

	var event guildevents.GuildSetupCompletedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		r.logger.ErrorContext(ctx, "Failed to decode setup completed event", "error", err)
		return nil
	}
	if event.ControlChannelID == "" || event.StatusMessageID == "" {
		return nil
	}

	if err := r.registry.Save(event); err != nil {
		r.logger.ErrorContext(ctx, "Failed to record guild setup",
			"guild_id", event.GuildID,
			"error", err)
		return nil
	}

	r.logger.InfoContext(ctx, "Tracking status message",
		"guild_id", event.GuildID,
		"channel_id", event.ControlChannelID,
		"message_id", event.StatusMessageID)
	r.refresh(ctx, event)
	return nil
}

// Run re-renders every registered status message on the poll interval until
// ctx is done.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

func (r *Refresher) refreshAll(ctx context.Context) {
	for _, guildID := range r.registry.GuildIDs() {
		record, err := r.registry.Get(guildID)
		if err != nil {
			continue
		}
		r.refresh(ctx, record)
	}
}

func (r *Refresher) refresh(ctx context.Context, record guildevents.GuildSetupCompletedEvent) {
	snap, known := r.cache.Snapshot()
	if _, err := r.session.ChannelMessageEditEmbed(record.ControlChannelID, record.StatusMessageID, Embed(snap, known)); err != nil {
		r.logger.WarnContext(ctx, "Failed to refresh status message",
			"guild_id", record.GuildID,
			"channel_id", record.ControlChannelID,
			"message_id", record.StatusMessageID,
			"error", err)
	}
}
