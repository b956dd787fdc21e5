// Package bot assembles the Discord session, the interaction registry and
// the background workers into one runnable unit.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	discord "github.com/brauliorg12/apex-range-sub001/app/discordgo"
	"github.com/brauliorg12/apex-range-sub001/app/eventbus"
	"github.com/brauliorg12/apex-range-sub001/app/interactions"
	"github.com/brauliorg12/apex-range-sub001/app/rank"
	"github.com/brauliorg12/apex-range-sub001/app/setup"
	"github.com/brauliorg12/apex-range-sub001/app/status"
	"github.com/brauliorg12/apex-range-sub001/config"
	"github.com/bwmarrin/discordgo"
)

type DiscordBot struct {
	Session      discord.Session
	Logger       *slog.Logger
	Config       *config.Config
	EventBus     eventbus.EventBus
	SetupManager setup.SetupManager
	RankManager  rank.Manager
	Poller       *status.Poller
	Refresher    *status.Refresher

	// commandRegistrar is swappable in tests.
	commandRegistrar func(session discord.Session, appID, guildID string) error
}

func NewDiscordBot(
	session discord.Session,
	cfg *config.Config,
	logger *slog.Logger,
	eventBus eventbus.EventBus,
	setupManager setup.SetupManager,
	rankManager rank.Manager,
	poller *status.Poller,
	refresher *status.Refresher,
) *DiscordBot {
	return &DiscordBot{
		Session:          session,
		Logger:           logger,
		Config:           cfg,
		EventBus:         eventBus,
		SetupManager:     setupManager,
		RankManager:      rankManager,
		Poller:           poller,
		Refresher:        refresher,
		commandRegistrar: setup.RegisterCommand,
	}
}

// Run registers the slash commands and interaction handlers, starts the
// status workers and opens the gateway connection. It blocks until ctx is
// cancelled.
func (bot *DiscordBot) Run(ctx context.Context) error {
	// Register slash commands before opening the session.
	if err := bot.commandRegistrar(bot.Session, bot.Config.Discord.DiscordAppID, bot.Config.Discord.GuildID); err != nil {
		return fmt.Errorf("failed to register slash commands: %w", err)
	}
	bot.Logger.InfoContext(ctx, "Slash commands registered")

	registry := interactions.NewRegistry()
	setup.RegisterHandlers(registry, bot.SetupManager)
	rank.RegisterHandlers(registry, bot.RankManager)

	bot.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		registry.HandleInteraction(s, i)
	})
	bot.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		bot.Logger.InfoContext(ctx, "Discord bot is connected and ready",
			"username", r.User.Username,
			"guilds", len(r.Guilds))
	})

	router, err := message.NewRouter(message.RouterConfig{}, watermill.NopLogger{})
	if err != nil {
		return fmt.Errorf("failed to create message router: %w", err)
	}
	bot.Refresher.RegisterHandlers(router, bot.EventBus)

	go bot.Poller.Run(ctx)
	go func() {
		if err := router.Run(ctx); err != nil {
			bot.Logger.ErrorContext(ctx, "Message router stopped", "error", err)
		}
	}()
	go func() {
		if err := bot.Refresher.Run(ctx); err != nil && err != context.Canceled {
			bot.Logger.ErrorContext(ctx, "Status refresher stopped", "error", err)
		}
	}()

	if err := bot.Session.Open(); err != nil {
		return fmt.Errorf("error opening discord connection: %w", err)
	}

	<-ctx.Done()
	return ctx.Err()
}

// Close shuts down the gateway connection.
func (bot *DiscordBot) Close() {
	if err := bot.Session.Close(); err != nil {
		bot.Logger.Error("Error closing discord session", "error", err)
	}
}
