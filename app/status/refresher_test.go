package status

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	discord "github.com/brauliorg12/apex-range-sub001/app/discordgo"
	guildevents "github.com/brauliorg12/apex-range-sub001/app/events/guild"
	"github.com/brauliorg12/apex-range-sub001/app/eventbus"
	"github.com/brauliorg12/apex-range-sub001/app/guildregistry"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresher_TracksAndEditsStatusMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := eventbus.NewEventBus(logger)
	defer bus.Close()

	cache := NewCache()
	cache.Set(Snapshot{
		Services:    []ServiceStatus{{Name: "Origin_login", Healthy: true, Detail: "EU-West: UP"}},
		RetrievedAt: time.Now(),
	})

	var mu sync.Mutex
	var edited []string
	fake := discord.NewFakeSession()
	fake.ChannelMessageEditEmbedFunc = func(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
		mu.Lock()
		defer mu.Unlock()
		edited = append(edited, channelID+"/"+messageID)
		return &discordgo.Message{ID: messageID, ChannelID: channelID}, nil
	}

	registry, err := guildregistry.New(ctx, time.Hour)
	require.NoError(t, err)

	refresher := NewRefresher(fake, registry, cache, time.Hour, logger)

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NopLogger{})
	require.NoError(t, err)
	refresher.RegisterHandlers(router, bus)
	go func() { _ = router.Run(ctx) }()
	<-router.Running()

	msg, err := eventbus.NewMessage(guildevents.GuildSetupCompletedEvent{
		GuildID:          "guild-1",
		ControlChannelID: "ctrl-1",
		StatusMessageID:  "status-msg-1",
	})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(guildevents.GuildSetupCompletedTopic, msg))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(edited) > 0 && edited[0] == "ctrl-1/status-msg-1"
	}, 2*time.Second, 20*time.Millisecond)

	record, err := registry.Get("guild-1")
	require.NoError(t, err)
	assert.Equal(t, "ctrl-1", record.ControlChannelID)
}

func TestRefresher_IgnoresEventWithoutStatusMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fake := discord.NewFakeSession()
	edits := 0
	fake.ChannelMessageEditEmbedFunc = func(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
		edits++
		return nil, nil
	}

	registry, err := guildregistry.New(ctx, time.Hour)
	require.NoError(t, err)

	refresher := NewRefresher(fake, registry, NewCache(), time.Hour, logger)

	msg, err := eventbus.NewMessage(guildevents.GuildSetupCompletedEvent{GuildID: "guild-1"})
	require.NoError(t, err)
	require.NoError(t, refresher.HandleSetupCompleted(msg))

	assert.Empty(t, registry.GuildIDs())
	assert.Zero(t, edits)
}

func TestRefresher_DropsUndecodableEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry, err := guildregistry.New(ctx, time.Hour)
	require.NoError(t, err)

	refresher := NewRefresher(discord.NewFakeSession(), registry, NewCache(), time.Hour, logger)

	msg := message.NewMessage("m-1", []byte("not json"))
	require.NoError(t, refresher.HandleSetupCompleted(msg))
	assert.Empty(t, registry.GuildIDs())
}
