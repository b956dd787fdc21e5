// Package setup implements the guild setup wizard: mode selection prompts,
// the manual-mode modal, the confirmation pipeline and the executor that
// creates the rank channels, roles and panel.
package setup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	discord "github.com/brauliorg12/apex-range-sub001/app/discordgo"
	"github.com/brauliorg12/apex-range-sub001/app/eventbus"
	"github.com/brauliorg12/apex-range-sub001/app/storage"
	"github.com/brauliorg12/apex-range-sub001/config"
	"github.com/bwmarrin/discordgo"
)

const (
	colorSuccess = 0x2ecc71
	colorError   = 0xe74c3c
	colorInfo    = 0xe67e22
)

// SetupManager is the surface the interaction registry talks to.
type SetupManager interface {
	HandleSetupCommand(ctx context.Context, i *discordgo.InteractionCreate) error
	HandleManualModalSubmit(ctx context.Context, i *discordgo.InteractionCreate) error
	HandleSetupConfirmation(ctx context.Context, i *discordgo.InteractionCreate) error
	HandleSetupCancel(ctx context.Context, i *discordgo.InteractionCreate) error
}

// PendingSetup is the request-scoped state stored between the command (or
// modal submit) and the confirmation button press.
type PendingSetup struct {
	Mode              Mode
	ControlChannelID  string
	PanelChannelID    string
	AdminChannelName  string
	PublicChannelName string
}

type setupManager struct {
	session          discord.Session
	publisher        eventbus.EventBus
	logger           *slog.Logger
	config           *config.Config
	pendingStore     storage.ISInterface[PendingSetup]
	executor         Executor
	operationWrapper func(ctx context.Context, opName string, fn func(ctx context.Context) error) error
}

// NewSetupManager creates a new SetupManager instance.
func NewSetupManager(
	session discord.Session,
	publisher eventbus.EventBus,
	logger *slog.Logger,
	cfg *config.Config,
	pendingStore storage.ISInterface[PendingSetup],
	executor Executor,
) SetupManager {
	return &setupManager{
		session:      session,
		publisher:    publisher,
		logger:       logger,
		config:       cfg,
		pendingStore: pendingStore,
		executor:     executor,
		operationWrapper: func(ctx context.Context, opName string, fn func(ctx context.Context) error) error {
			return wrapSetupOperation(ctx, opName, fn, logger)
		},
	}
}

// hasAdminPermissions checks if the user has administrator permissions.
func (s *setupManager) hasAdminPermissions(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	return i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

func infoEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: title, Description: description, Color: colorInfo}
}

func errorEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: title, Description: description, Color: colorError}
}

func successEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: title, Description: description, Color: colorSuccess}
}

// respondEphemeral sends the initial interaction response.
func (s *setupManager) respondEphemeral(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return s.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

// ackDeferred acknowledges a component press so later edits replace the
// prompt message. At most one acknowledgement per interaction.
func (s *setupManager) ackDeferred(i *discordgo.InteractionCreate) error {
	return s.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// editResponse replaces the displayed prompt with an embed, clearing any
// buttons that were attached to it.
func (s *setupManager) editResponse(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	empty := []discordgo.MessageComponent{}
	_, err := s.session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &empty,
	})
	return err
}

// wrapSetupOperation wraps setup operations with timing and error logging.
func wrapSetupOperation(ctx context.Context, opName string, fn func(ctx context.Context) error, logger *slog.Logger) error {
	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	if logger == nil {
		return err
	}
	if err != nil {
		logger.ErrorContext(ctx, "Setup operation failed",
			"operation", opName,
			"duration_sec", fmt.Sprintf("%.2f", duration.Seconds()),
			"error", err)
	} else {
		logger.InfoContext(ctx, "Setup operation completed",
			"operation", opName,
			"duration_sec", fmt.Sprintf("%.2f", duration.Seconds()))
	}
	return err
}
