package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/brauliorg12/apex-range-sub001/app/permissions"
	"github.com/bwmarrin/discordgo"
)

// validateAccess checks that the invoking user and the bot can both view the
// channel. Each failing branch is terminal and reports with party-specific
// wording.
func (s *setupManager) validateAccess(ctx context.Context, i *discordgo.InteractionCreate, guild *discordgo.Guild, botMember *discordgo.Member, channel *discordgo.Channel) bool {
	userOK, err := permissions.CanView(i.Member, guild, channel)
	if err != nil {
		s.reportInternalError(ctx, i, fmt.Errorf("user visibility check: %w", err))
		return false
	}
	if !userOK {
		s.logger.WarnContext(ctx, "User cannot view channel",
			"guild_id", i.GuildID,
			"channel_id", channel.ID)
		s.mustEdit(ctx, i, errorEmbed(
			"Sin acceso al canal",
			fmt.Sprintf("No tienes acceso a <#%s>. Pide permiso de visualización y vuelve a intentarlo.", channel.ID),
		))
		return false
	}

	botOK, err := permissions.CanView(botMember, guild, channel)
	if err != nil {
		s.reportInternalError(ctx, i, fmt.Errorf("bot visibility check: %w", err))
		return false
	}
	if !botOK {
		s.logger.WarnContext(ctx, "Bot cannot view channel",
			"guild_id", i.GuildID,
			"channel_id", channel.ID)
		s.mustEdit(ctx, i, errorEmbed(
			"El bot no puede ver el canal",
			fmt.Sprintf("No puedo ver <#%s>. Concédeme permiso de visualización y vuelve a intentarlo.", channel.ID),
		))
		return false
	}

	return true
}

// validateBotPermissions runs the catalog check against each candidate
// channel in order, failing fast on the first channel with a missing
// capability. Existing mode requires the pre-resolved pair; its absence is an
// internal consistency error, not a permission gap.
func (s *setupManager) validateBotPermissions(ctx context.Context, i *discordgo.InteractionCreate, mode Mode, guild *discordgo.Guild, botMember *discordgo.Member, channels []*discordgo.Channel) bool {
	if mode == ModeExisting && len(channels) != 2 {
		s.reportInternalError(ctx, i, fmt.Errorf("existing mode expected 2 channels, got %d", len(channels)))
		return false
	}

	for _, channel := range channels {
		missing, err := permissions.Missing(botMember, guild, channel, permissions.Catalog())
		if err != nil {
			s.reportInternalError(ctx, i, fmt.Errorf("permission check on channel %s: %w", channel.ID, err))
			return false
		}
		if len(missing) > 0 {
			s.logger.WarnContext(ctx, "Bot is missing permissions",
				"guild_id", i.GuildID,
				"channel_id", channel.ID,
				"missing", requirementNames(missing))
			s.mustEdit(ctx, i, missingPermissionsEmbed(channel.ID, missing))
			return false
		}
	}
	return true
}

func missingPermissionsEmbed(channelID string, missing []permissions.Requirement) *discordgo.MessageEmbed {
	var b strings.Builder
	fmt.Fprintf(&b, "Me faltan permisos en <#%s>:\n\n", channelID)
	for _, req := range missing {
		fmt.Fprintf(&b, "• **%s** (%s) — %s\n", req.Name, req.Description, req.Details)
	}
	b.WriteString("\nConcede esos permisos al rol del bot y repite la configuración.")
	return errorEmbed("Permisos insuficientes del bot", b.String())
}

func requirementNames(reqs []permissions.Requirement) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.Name)
	}
	return out
}

// reportInternalError logs an unexpected failure and shows the generic
// internal-error embed.
func (s *setupManager) reportInternalError(ctx context.Context, i *discordgo.InteractionCreate, err error) {
	s.logger.ErrorContext(ctx, "Internal error during setup validation",
		"guild_id", i.GuildID,
		"error", err)
	s.mustEdit(ctx, i, errorEmbed(
		"Error interno",
		"Algo salió mal durante la validación. Inténtalo de nuevo en unos minutos.",
	))
}

// mustEdit edits the prompt and only logs when the edit itself fails; the
// flow is already on a failure path.
func (s *setupManager) mustEdit(ctx context.Context, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if err := s.editResponse(i, embed); err != nil {
		s.logger.ErrorContext(ctx, "Failed to edit setup response",
			"guild_id", i.GuildID,
			"error", err)
	}
}
