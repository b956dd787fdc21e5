package rank

import (
	"context"
	"fmt"
	"log/slog"

	discord "github.com/brauliorg12/apex-range-sub001/app/discordgo"
	"github.com/bwmarrin/discordgo"
)

// Manager handles the rank panel button presses.
type Manager interface {
	HandleRankButton(ctx context.Context, i *discordgo.InteractionCreate) error
}

type rankManager struct {
	session          discord.Session
	logger           *slog.Logger
	operationWrapper func(ctx context.Context, opName string, fn func(ctx context.Context) error) error
}

// NewManager creates a rank panel Manager.
func NewManager(session discord.Session, logger *slog.Logger) Manager {
	return &rankManager{
		session: session,
		logger:  logger,
		operationWrapper: func(ctx context.Context, opName string, fn func(ctx context.Context) error) error {
			return wrapRankOperation(ctx, opName, fn, logger)
		},
	}
}

// HandleRankButton assigns the pressed rank role to the user, removing any
// other rank role they hold. Roles are matched by ladder name so the panel
// keeps working when the bot restarts without persisted state.
func (m *rankManager) HandleRankButton(ctx context.Context, i *discordgo.InteractionCreate) error {
	return m.operationWrapper(ctx, "handle_rank_button", func(ctx context.Context) error {
		selected, ok := FromCustomID(i.MessageComponentData().CustomID)
		if !ok {
			return fmt.Errorf("unknown rank custom ID %q", i.MessageComponentData().CustomID)
		}
		if i.Member == nil || i.Member.User == nil {
			return fmt.Errorf("rank button pressed outside a guild")
		}
		userID := i.Member.User.ID

		guild, err := m.session.Guild(i.GuildID)
		if err != nil {
			m.respondError(i, "No pude leer los roles del servidor. Inténtalo de nuevo.")
			return fmt.Errorf("failed to get guild info: %w", err)
		}

		roleByName := make(map[string]string, len(guild.Roles))
		for _, role := range guild.Roles {
			roleByName[role.Name] = role.ID
		}

		selectedRoleID, ok := roleByName[selected.Name]
		if !ok {
			m.respondError(i, "El rol de rango ya no existe. Pide a un administrador que repita la configuración.")
			return fmt.Errorf("rank role %q not found in guild %s", selected.Name, i.GuildID)
		}

		// Drop any other rank role first so a player never holds two ranks.
		for _, held := range i.Member.Roles {
			for _, r := range ranks {
				if r.Name == selected.Name {
					continue
				}
				if roleID, ok := roleByName[r.Name]; ok && roleID == held {
					if err := m.session.GuildMemberRoleRemove(i.GuildID, userID, roleID); err != nil {
						m.logger.WarnContext(ctx, "Failed to remove previous rank role",
							"guild_id", i.GuildID,
							"user_id", userID,
							"role_id", roleID,
							"error", err)
					}
				}
			}
		}

		if err := m.session.GuildMemberRoleAdd(i.GuildID, userID, selectedRoleID); err != nil {
			m.respondError(i, "No pude asignarte el rol. Revisa los permisos del bot.")
			return fmt.Errorf("failed to add rank role: %w", err)
		}

		m.logger.InfoContext(ctx, "Assigned rank role",
			"guild_id", i.GuildID,
			"user_id", userID,
			"rank", selected.Slug)

		return m.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("%s Ahora tienes el rango **%s**.", selected.Emoji, selected.Name),
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	})
}

func (m *rankManager) respondError(i *discordgo.InteractionCreate, msg string) {
	err := m.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", msg),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil && m.logger != nil {
		m.logger.Error("Failed to send rank error response", "error", err)
	}
}

func wrapRankOperation(ctx context.Context, opName string, fn func(ctx context.Context) error, logger *slog.Logger) error {
	err := fn(ctx)
	if err != nil && logger != nil {
		logger.ErrorContext(ctx, "Rank operation failed", "operation", opName, "error", err)
	}
	return err
}
