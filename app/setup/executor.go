package setup

import (
	"context"
	"fmt"
	"log/slog"

	discord "github.com/brauliorg12/apex-range-sub001/app/discordgo"
	"github.com/brauliorg12/apex-range-sub001/app/rank"
	"github.com/brauliorg12/apex-range-sub001/app/status"
	"github.com/brauliorg12/apex-range-sub001/config"
	"github.com/bwmarrin/discordgo"
)

// ExecResult describes everything the executor created or reused.
type ExecResult struct {
	ControlChannelID   string
	ControlChannelName string
	PanelChannelID     string
	PanelChannelName   string
	PanelMessageID     string
	StatusMessageID    string
	RankRoleIDs        map[string]string // rank slug -> role ID
}

// Executor performs the Discord mutations for a confirmed setup.
type Executor interface {
	Execute(ctx context.Context, guildID, adminUserID string, opts SetupOptions) (*ExecResult, error)
}

type discordExecutor struct {
	session     discord.Session
	logger      *slog.Logger
	config      *config.Config
	statusCache *status.Cache
}

// NewExecutor creates the executor that provisions channels, roles and the
// rank panel.
func NewExecutor(session discord.Session, logger *slog.Logger, cfg *config.Config, statusCache *status.Cache) Executor {
	return &discordExecutor{
		session:     session,
		logger:      logger,
		config:      cfg,
		statusCache: statusCache,
	}
}

// Execute provisions the guild according to the mode payload: resolve or
// create the channel pair, create the missing rank roles, publish the rank
// panel in the public channel and the server status embed in the control
// channel.
func (e *discordExecutor) Execute(ctx context.Context, guildID, adminUserID string, opts SetupOptions) (*ExecResult, error) {
	control, panel, err := e.resolveChannels(ctx, guildID, opts)
	if err != nil {
		return nil, err
	}

	roleIDs, err := e.createRankRoles(ctx, guildID)
	if err != nil {
		return nil, err
	}

	var panelMsg *discordgo.Message
	err = discord.RetryDiscordAPI(e.logger, "publish_rank_panel", func() error {
		var sendErr error
		panelMsg, sendErr = e.session.ChannelMessageSendComplex(panel.ID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{rank.PanelEmbed()},
			Components: rank.PanelComponents(),
		})
		return sendErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to publish rank panel in %s: %w", panel.ID, err)
	}

	snap, known := e.statusCache.Snapshot()
	var statusMsg *discordgo.Message
	err = discord.RetryDiscordAPI(e.logger, "publish_status_embed", func() error {
		var sendErr error
		statusMsg, sendErr = e.session.ChannelMessageSendComplex(control.ID, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{status.Embed(snap, known)},
		})
		return sendErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to publish status embed in %s: %w", control.ID, err)
	}

	e.logger.InfoContext(ctx, "Guild setup executed",
		"guild_id", guildID,
		"admin_user_id", adminUserID,
		"mode", string(opts.Mode()),
		"control_channel_id", control.ID,
		"panel_channel_id", panel.ID,
		"rank_roles", len(roleIDs))

	return &ExecResult{
		ControlChannelID:   control.ID,
		ControlChannelName: control.Name,
		PanelChannelID:     panel.ID,
		PanelChannelName:   panel.Name,
		PanelMessageID:     panelMsg.ID,
		StatusMessageID:    statusMsg.ID,
		RankRoleIDs:        roleIDs,
	}, nil
}

func (e *discordExecutor) resolveChannels(ctx context.Context, guildID string, opts SetupOptions) (control, panel *discordgo.Channel, err error) {
	switch o := opts.(type) {
	case ExistingOptions:
		control, err = e.session.GetChannel(o.ControlChannelID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch control channel %s: %w", o.ControlChannelID, err)
		}
		panel, err = e.session.GetChannel(o.PanelChannelID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to fetch panel channel %s: %w", o.PanelChannelID, err)
		}
		return control, panel, nil
	case ManualOptions:
		return e.createOrFindPair(ctx, guildID, o.AdminChannelName, o.PublicChannelName)
	default:
		return e.createOrFindPair(ctx, guildID, e.config.Setup.AdminChannelName, e.config.Setup.PublicChannelName)
	}
}

func (e *discordExecutor) createOrFindPair(ctx context.Context, guildID, adminName, publicName string) (*discordgo.Channel, *discordgo.Channel, error) {
	control, err := e.createOrFindChannel(ctx, guildID, adminName)
	if err != nil {
		return nil, nil, err
	}
	panel, err := e.createOrFindChannel(ctx, guildID, publicName)
	if err != nil {
		return nil, nil, err
	}
	return control, panel, nil
}

// createOrFindChannel reuses an existing text channel with the requested
// name before creating a new one, so re-running setup is idempotent.
func (e *discordExecutor) createOrFindChannel(ctx context.Context, guildID, name string) (*discordgo.Channel, error) {
	channels, err := e.session.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild channels: %w", err)
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == name {
			e.logger.InfoContext(ctx, "Reusing existing channel",
				"guild_id", guildID,
				"channel_id", ch.ID,
				"name", name)
			return ch, nil
		}
	}
	var created *discordgo.Channel
	err = discord.RetryDiscordAPI(e.logger, "create_channel", func() error {
		var createErr error
		created, createErr = e.session.GuildChannelCreate(guildID, name, discordgo.ChannelTypeGuildText)
		return createErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create channel %q: %w", name, err)
	}
	e.logger.InfoContext(ctx, "Created channel",
		"guild_id", guildID,
		"channel_id", created.ID,
		"name", name)
	return created, nil
}

// createRankRoles ensures one role per ladder rank, reusing roles that
// already carry a ladder name.
func (e *discordExecutor) createRankRoles(ctx context.Context, guildID string) (map[string]string, error) {
	guild, err := e.session.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild: %w", err)
	}
	existing := make(map[string]string, len(guild.Roles))
	for _, role := range guild.Roles {
		existing[role.Name] = role.ID
	}

	roleIDs := make(map[string]string, len(rank.Ranks()))
	for _, r := range rank.Ranks() {
		if id, ok := existing[r.Name]; ok {
			roleIDs[r.Slug] = id
			continue
		}
		color := r.Color
		var created *discordgo.Role
		err := discord.RetryDiscordAPI(e.logger, "create_rank_role", func() error {
			var createErr error
			created, createErr = e.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
				Name:  r.Name,
				Color: &color,
			})
			return createErr
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create role %q: %w", r.Name, err)
		}
		e.logger.InfoContext(ctx, "Created rank role",
			"guild_id", guildID,
			"role_id", created.ID,
			"name", r.Name)
		roleIDs[r.Slug] = created.ID
	}
	return roleIDs, nil
}
