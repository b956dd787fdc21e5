package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/brauliorg12/apex-range-sub001/app/bot"
	discord "github.com/brauliorg12/apex-range-sub001/app/discordgo"
	"github.com/brauliorg12/apex-range-sub001/app/eventbus"
	"github.com/brauliorg12/apex-range-sub001/app/guildregistry"
	"github.com/brauliorg12/apex-range-sub001/app/health"
	"github.com/brauliorg12/apex-range-sub001/app/rank"
	"github.com/brauliorg12/apex-range-sub001/app/setup"
	"github.com/brauliorg12/apex-range-sub001/app/status"
	"github.com/brauliorg12/apex-range-sub001/app/storage"
	"github.com/brauliorg12/apex-range-sub001/config"
	"github.com/bwmarrin/discordgo"
)

func main() {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil)).With(
		"service", cfg.Service.Name)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventBus := eventbus.NewEventBus(logger)

	discordSession, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}
	discordSession.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages

	session := discord.NewDiscordSession(discordSession, logger)

	statusCache := status.NewCache()
	statusClient := status.NewClient(cfg.Apex.APIURL, cfg.Apex.APIKey)
	poller := status.NewPoller(statusClient, statusCache, cfg.Apex.PollInterval, logger)

	registry, err := guildregistry.New(ctx, 0)
	if err != nil {
		log.Fatalf("Failed to create guild registry: %v", err)
	}
	refresher := status.NewRefresher(session, registry, statusCache, cfg.Apex.PollInterval, logger)

	pendingStore := storage.NewInteractionStore[setup.PendingSetup](ctx, storage.DefaultInteractionStoreTTL)
	executor := setup.NewExecutor(session, logger, cfg, statusCache)
	setupManager := setup.NewSetupManager(session, eventBus, logger, cfg, pendingStore, executor)
	rankManager := rank.NewManager(session, logger)

	discordBot := bot.NewDiscordBot(session, cfg, logger, eventBus, setupManager, rankManager, poller, refresher)

	healthHandler := health.NewHandler(cfg.Service.Name)
	healthHandler.SetReadyCheck(func() bool {
		_, ok := statusCache.Snapshot()
		return ok
	})
	go func() {
		if err := healthHandler.StartServer(cfg.Service.HealthAddr); err != nil {
			logger.Error("Health server stopped", "error", err)
		}
	}()

	go func() {
		if err := discordBot.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("Discord bot error", "error", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down gracefully...")
	cancel()

	discordBot.Close()

	if err := eventBus.Close(); err != nil {
		logger.Error("Failed to close event bus", "error", err)
	}

	logger.Info("Shutdown complete.")
}
