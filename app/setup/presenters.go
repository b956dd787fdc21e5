package setup

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// HandleSetupCommand handles /apex-setup: it validates the caller and shows
// the informational confirmation prompt for the requested mode.
func (s *setupManager) HandleSetupCommand(ctx context.Context, i *discordgo.InteractionCreate) error {
	return s.operationWrapper(ctx, "handle_setup_command", func(ctx context.Context) error {
		if !s.hasAdminPermissions(i) {
			return s.respondEphemeral(i, errorEmbed(
				"Permisos insuficientes",
				"Necesitas permisos de **Administrador** para configurar Apex Range.",
			), nil)
		}

		mode, controlID, panelID := readCommandOptions(i)
		s.logger.InfoContext(ctx, "Setup command received",
			"guild_id", i.GuildID,
			"mode", string(mode))

		switch mode {
		case ModeManual:
			return s.sendManualModal(ctx, i)
		case ModeExisting:
			return s.presentExistingPrompt(ctx, i, controlID, panelID)
		default:
			return s.presentAutoPrompt(ctx, i)
		}
	})
}

// readCommandOptions pulls the mode and the optional channel pair out of the
// slash command options.
func readCommandOptions(i *discordgo.InteractionCreate) (Mode, string, string) {
	mode := ModeAuto
	var controlID, panelID string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "modo":
			switch Mode(opt.StringValue()) {
			case ModeManual:
				mode = ModeManual
			case ModeExisting:
				mode = ModeExisting
			}
		case "canal_admin":
			if ch := opt.ChannelValue(nil); ch != nil {
				controlID = ch.ID
			}
		case "canal_publico":
			if ch := opt.ChannelValue(nil); ch != nil {
				panelID = ch.ID
			}
		}
	}
	return mode, controlID, panelID
}

func (s *setupManager) presentAutoPrompt(ctx context.Context, i *discordgo.InteractionCreate) error {
	embed := infoEmbed(
		"⚙️ Configuración automática",
		fmt.Sprintf(
			"Crearé el canal de administración **#%s**, el canal público **#%s**, los roles de rango de Apex y publicaré el panel de selección.\n\n¿Quieres continuar?",
			s.config.Setup.AdminChannelName,
			s.config.Setup.PublicChannelName,
		),
	)
	return s.respondEphemeral(i, embed, confirmCancelRow(confirmAutoCustomID))
}

func (s *setupManager) presentExistingPrompt(ctx context.Context, i *discordgo.InteractionCreate, controlID, panelID string) error {
	// Both channels travel together; a half-specified pair is a
	// configuration inconsistency, not something to guess around.
	if controlID == "" || panelID == "" {
		return s.respondEphemeral(i, errorEmbed(
			"Faltan canales",
			"Para usar canales existentes debes indicar **canal_admin** y **canal_publico** a la vez.",
		), nil)
	}

	correlationID := newSetupCorrelationID()
	pending := PendingSetup{
		Mode:             ModeExisting,
		ControlChannelID: controlID,
		PanelChannelID:   panelID,
	}
	if err := s.pendingStore.Set(ctx, correlationID, pending); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store pending setup",
			"guild_id", i.GuildID,
			"correlation_id", correlationID,
			"error", err)
		return s.respondEphemeral(i, errorEmbed(
			"Error interno",
			"No pude preparar la configuración. Inténtalo de nuevo.",
		), nil)
	}

	embed := infoEmbed(
		"⚙️ Usar canales existentes",
		fmt.Sprintf(
			"Usaré <#%s> como canal de administración y <#%s> como panel público. Crearé los roles de rango y publicaré el panel ahí.\n\n¿Quieres continuar?",
			controlID, panelID,
		),
	)
	return s.respondEphemeral(i, embed, confirmCancelRow(withCorrelationID(confirmExistingCustomID, correlationID)))
}

// HandleSetupCancel dismisses the confirmation prompt.
func (s *setupManager) HandleSetupCancel(ctx context.Context, i *discordgo.InteractionCreate) error {
	return s.operationWrapper(ctx, "handle_setup_cancel", func(ctx context.Context) error {
		if err := s.ackDeferred(i); err != nil {
			return fmt.Errorf("failed to acknowledge cancel: %w", err)
		}
		s.logger.InfoContext(ctx, "Setup cancelled by user", "guild_id", i.GuildID)
		return s.editResponse(i, infoEmbed("Configuración cancelada", "No se ha realizado ningún cambio."))
	})
}

func confirmCancelRow(confirmCustomID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Confirmar",
					Style:    discordgo.SuccessButton,
					CustomID: confirmCustomID,
				},
				discordgo.Button{
					Label:    "Cancelar",
					Style:    discordgo.DangerButton,
					CustomID: cancelCustomID,
				},
			},
		},
	}
}
