package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	discord "github.com/brauliorg12/apex-range-sub001/app/discordgo"
	"github.com/brauliorg12/apex-range-sub001/app/eventbus"
	"github.com/brauliorg12/apex-range-sub001/app/guildregistry"
	"github.com/brauliorg12/apex-range-sub001/app/rank"
	"github.com/brauliorg12/apex-range-sub001/app/setup"
	"github.com/brauliorg12/apex-range-sub001/app/status"
	"github.com/brauliorg12/apex-range-sub001/app/storage"
	"github.com/brauliorg12/apex-range-sub001/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

type stubStatusClient struct{}

func (stubStatusClient) Fetch(ctx context.Context) (status.Snapshot, error) {
	return status.Snapshot{RetrievedAt: time.Now()}, nil
}

func newTestBot(t *testing.T, fake *discord.FakeSession) *DiscordBot {
	t.Helper()
	logger := testLogger()
	cfg := &config.Config{
		Discord: config.DiscordConfig{DiscordAppID: "app-1", GuildID: "guild-1"},
		Setup: config.SetupConfig{
			AdminChannelName:  "apex-admin",
			PublicChannelName: "apex-rangos",
		},
	}
	bus := eventbus.NewEventBus(logger)
	t.Cleanup(func() { _ = bus.Close() })

	cache := status.NewCache()
	store := storage.NewInteractionStore[setup.PendingSetup](context.Background(), time.Minute)
	executor := setup.NewExecutor(fake, logger, cfg, cache)
	setupManager := setup.NewSetupManager(fake, bus, logger, cfg, store, executor)
	rankManager := rank.NewManager(fake, logger)
	poller := status.NewPoller(stubStatusClient{}, cache, time.Hour, logger)
	registry, err := guildregistry.New(context.Background(), time.Hour)
	require.NoError(t, err)
	refresher := status.NewRefresher(fake, registry, cache, time.Hour, logger)

	return NewDiscordBot(fake, cfg, logger, bus, setupManager, rankManager, poller, refresher)
}

func TestRun_RegistrarFailureAbortsBeforeOpen(t *testing.T) {
	fake := discord.NewFakeSession()
	bot := newTestBot(t, fake)
	bot.commandRegistrar = func(_ discord.Session, _, _ string) error {
		return errors.New("boom")
	}

	err := bot.Run(context.Background())
	require.Error(t, err)
	assert.NotContains(t, fake.Trace(), "Open")
}

func TestRun_RegistersHandlersAndOpens(t *testing.T) {
	fake := discord.NewFakeSession()
	bot := newTestBot(t, fake)

	var registrarCalls []string
	bot.commandRegistrar = func(_ discord.Session, appID, guildID string) error {
		registrarCalls = append(registrarCalls, appID+"/"+guildID)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bot.Run(ctx) }()

	assert.Eventually(t, func() bool {
		trace := fake.Trace()
		for _, step := range trace {
			if step == "Open" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}

	assert.Equal(t, []string{"app-1/guild-1"}, registrarCalls)

	handlerCount := 0
	for _, step := range fake.Trace() {
		if step == "AddHandler" {
			handlerCount++
		}
	}
	assert.Equal(t, 2, handlerCount, "interaction and ready handlers")
}
