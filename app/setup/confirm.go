package setup

import (
	"context"
	"fmt"
	"time"

	guildevents "github.com/brauliorg12/apex-range-sub001/app/events/guild"
	"github.com/brauliorg12/apex-range-sub001/app/eventbus"
	"github.com/bwmarrin/discordgo"
)

// confirmState is a stage of the confirmation pipeline. The pipeline only
// moves forward; every stage either advances or terminates in stateFailed.
type confirmState int

const (
	stateStarted confirmState = iota
	stateResolvingChannels
	stateResolvingActors
	stateValidatingAccess
	stateValidatingPermissions
	stateBuildingOptions
	stateExecuting
	statePublishing
	stateSucceeded
	stateFailed
)

func (s confirmState) String() string {
	switch s {
	case stateStarted:
		return "started"
	case stateResolvingChannels:
		return "resolving_channels"
	case stateResolvingActors:
		return "resolving_actors"
	case stateValidatingAccess:
		return "validating_access"
	case stateValidatingPermissions:
		return "validating_permissions"
	case stateBuildingOptions:
		return "building_options"
	case stateExecuting:
		return "executing"
	case statePublishing:
		return "publishing"
	case stateSucceeded:
		return "succeeded"
	case stateFailed:
		return "failed"
	}
	return "unknown"
}

// HandleSetupConfirmation runs the confirmation pipeline after the admin
// presses Confirmar: resolve channels and actors, validate access and bot
// permissions, build the mode payload, run the executor and announce the
// result. Validation failures edit the prompt in place and stop; the
// executor is never reached unless everything before it passed.
func (s *setupManager) HandleSetupConfirmation(ctx context.Context, i *discordgo.InteractionCreate) error {
	return s.operationWrapper(ctx, "handle_setup_confirmation", func(ctx context.Context) error {
		customID := i.MessageComponentData().CustomID
		state := stateStarted

		transition := func(next confirmState) {
			s.logger.InfoContext(ctx, "Setup confirmation state change",
				"guild_id", i.GuildID,
				"from", state.String(),
				"to", next.String())
			state = next
		}

		if err := s.ackDeferred(i); err != nil {
			return fmt.Errorf("failed to acknowledge confirmation: %w", err)
		}

		mode, ok := modeFromCustomID(customID)
		if !ok {
			transition(stateFailed)
			s.mustEdit(ctx, i, errorEmbed(
				"Solicitud desconocida",
				"No reconozco esta confirmación. Ejecuta `/apex-setup` de nuevo.",
			))
			return fmt.Errorf("unrecognized confirm custom ID %q", customID)
		}

		// Existing mode works on the caller-provided pair; the other
		// modes validate against the channel the command ran in.
		transition(stateResolvingChannels)
		var pair *ChannelPair
		var candidates []*discordgo.Channel
		if mode == ModeExisting {
			pair = s.extractChannels(ctx, customID)
			if pair == nil {
				transition(stateFailed)
				s.mustEdit(ctx, i, errorEmbed(
					"Canales no disponibles",
					"No pude resolver los dos canales indicados. Comprueba que existen, que son canales de texto y que puedo verlos, y vuelve a ejecutar `/apex-setup`.",
				))
				return nil
			}
			candidates = []*discordgo.Channel{pair.Control, pair.Panel}
		} else {
			channel, err := s.session.GetChannel(i.ChannelID)
			if err != nil || channel == nil {
				transition(stateFailed)
				s.reportInternalError(ctx, i, fmt.Errorf("resolve interaction channel %s: %w", i.ChannelID, err))
				return nil
			}
			candidates = []*discordgo.Channel{channel}
		}

		transition(stateResolvingActors)
		guild, err := s.session.Guild(i.GuildID)
		if err != nil || guild == nil {
			transition(stateFailed)
			s.reportInternalError(ctx, i, fmt.Errorf("resolve guild %s: %w", i.GuildID, err))
			return nil
		}
		botUser, err := s.session.GetBotUser()
		if err != nil || botUser == nil {
			transition(stateFailed)
			s.reportInternalError(ctx, i, fmt.Errorf("resolve bot user: %w", err))
			return nil
		}
		botMember, err := s.session.GuildMember(i.GuildID, botUser.ID)
		if err != nil || botMember == nil {
			transition(stateFailed)
			s.reportInternalError(ctx, i, fmt.Errorf("resolve bot member: %w", err))
			return nil
		}

		transition(stateValidatingAccess)
		for _, channel := range candidates {
			if !s.validateAccess(ctx, i, guild, botMember, channel) {
				transition(stateFailed)
				return nil
			}
		}

		transition(stateValidatingPermissions)
		if !s.validateBotPermissions(ctx, i, mode, guild, botMember, candidates) {
			transition(stateFailed)
			return nil
		}

		transition(stateBuildingOptions)
		raw := s.rawOptionsFor(ctx, mode, customID)
		opts := buildOptions(mode, pair, raw)

		transition(stateExecuting)
		result, err := s.runExecutor(ctx, i.GuildID, adminUserID(i), opts)
		if err != nil {
			transition(stateFailed)
			s.logger.ErrorContext(ctx, "Setup execution failed",
				"guild_id", i.GuildID,
				"mode", string(mode),
				"error", err)
			s.publishSetupFailed(ctx, i.GuildID, mode, err)
			s.mustEdit(ctx, i, errorEmbed(
				"La configuración falló",
				"No pude completar la configuración. Es posible que haya quedado a medias; revisa los canales y roles creados antes de reintentar.",
			))
			return nil
		}

		transition(statePublishing)
		s.publishSetupCompleted(ctx, i, mode, result)

		transition(stateSucceeded)
		s.mustEdit(ctx, i, successEmbed(
			"✅ Configuración completada",
			fmt.Sprintf(
				"Canal de administración: <#%s>\nPanel público: <#%s>\nRoles de rango creados: **%d**\n\nLos jugadores ya pueden elegir su rango desde el panel.",
				result.ControlChannelID,
				result.PanelChannelID,
				len(result.RankRoleIDs),
			),
		))
		return nil
	})
}

// rawOptionsFor recovers the stored manual channel names. Auto and existing
// modes carry no raw names. When the pending entry has expired the flow
// continues with the configured default names so the executor never sees an
// empty channel name.
func (s *setupManager) rawOptionsFor(ctx context.Context, mode Mode, customID string) RawOptions {
	if mode != ModeManual {
		return RawOptions{}
	}
	defaults := RawOptions{
		AdminChannelName:  s.config.Setup.AdminChannelName,
		PublicChannelName: s.config.Setup.PublicChannelName,
	}
	cid := correlationIDFromCustomID(customID)
	if cid == "" {
		return defaults
	}
	pending, err := s.pendingStore.Get(ctx, cid)
	if err != nil {
		s.logger.WarnContext(ctx, "Pending setup expired, falling back to default channel names",
			"correlation_id", cid,
			"admin_channel", defaults.AdminChannelName,
			"public_channel", defaults.PublicChannelName)
		return defaults
	}
	return RawOptions{
		AdminChannelName:  pending.AdminChannelName,
		PublicChannelName: pending.PublicChannelName,
	}
}

// runExecutor invokes the executor with panic recovery so a bug in the
// creation path degrades into a failed setup instead of a crashed handler.
func (s *setupManager) runExecutor(ctx context.Context, guildID, adminUserID string, opts SetupOptions) (result *ExecResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("setup executor panicked: %v", r)
		}
	}()
	return s.executor.Execute(ctx, guildID, adminUserID, opts)
}

func adminUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	return ""
}

func (s *setupManager) publishSetupCompleted(ctx context.Context, i *discordgo.InteractionCreate, mode Mode, result *ExecResult) {
	guildName := ""
	if g, err := s.session.Guild(i.GuildID); err == nil && g != nil {
		guildName = g.Name
	}
	event := guildevents.GuildSetupCompletedEvent{
		GuildID:            i.GuildID,
		GuildName:          guildName,
		AdminUserID:        adminUserID(i),
		Mode:               string(mode),
		ControlChannelID:   result.ControlChannelID,
		ControlChannelName: result.ControlChannelName,
		PanelChannelID:     result.PanelChannelID,
		PanelChannelName:   result.PanelChannelName,
		PanelMessageID:     result.PanelMessageID,
		StatusMessageID:    result.StatusMessageID,
		RankRoleIDs:        result.RankRoleIDs,
		SetupCompletedAt:   time.Now().UTC(),
	}
	msg, err := eventbus.NewMessage(event)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build setup completed event",
			"guild_id", i.GuildID,
			"error", err)
		return
	}
	if err := s.publisher.Publish(guildevents.GuildSetupCompletedTopic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish setup completed event",
			"guild_id", i.GuildID,
			"error", err)
	}
}

func (s *setupManager) publishSetupFailed(ctx context.Context, guildID string, mode Mode, cause error) {
	event := guildevents.GuildSetupFailedEvent{
		GuildID:  guildID,
		Mode:     string(mode),
		Reason:   cause.Error(),
		FailedAt: time.Now().UTC(),
	}
	msg, err := eventbus.NewMessage(event)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to build setup failed event",
			"guild_id", guildID,
			"error", err)
		return
	}
	if err := s.publisher.Publish(guildevents.GuildSetupFailedTopic, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish setup failed event",
			"guild_id", guildID,
			"error", err)
	}
}
