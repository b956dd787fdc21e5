package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// sendManualModal shows the manual-mode modal asking for the two channel
// names.
func (s *setupManager) sendManualModal(ctx context.Context, i *discordgo.InteractionCreate) error {
	correlationID := newSetupCorrelationID()

	s.logger.InfoContext(ctx, "Sending manual setup modal",
		"guild_id", i.GuildID,
		"correlation_id", correlationID)

	err := s.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			Title:    "⚙️ Configuración manual",
			CustomID: withCorrelationID(manualModalCustomID, correlationID),
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "canal_admin",
							Label:       "Nombre del canal de administración",
							Style:       discordgo.TextInputShort,
							Placeholder: s.config.Setup.AdminChannelName,
							Required:    true,
							MaxLength:   90,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "canal_publico",
							Label:       "Nombre del canal público de rangos",
							Style:       discordgo.TextInputShort,
							Placeholder: s.config.Setup.PublicChannelName,
							Required:    true,
							MaxLength:   90,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send manual setup modal: %w", err)
	}
	return nil
}

// HandleManualModalSubmit stores the submitted channel names and shows the
// manual-mode confirmation prompt.
func (s *setupManager) HandleManualModalSubmit(ctx context.Context, i *discordgo.InteractionCreate) error {
	return s.operationWrapper(ctx, "handle_manual_modal_submit", func(ctx context.Context) error {
		data := i.ModalSubmitData()

		correlationID := correlationIDFromCustomID(data.CustomID)
		if correlationID == "" {
			correlationID = newSetupCorrelationID()
		}

		adminName, publicName := readModalChannelNames(data)

		// The names travel together: both present or the submission is
		// inconsistent.
		if (adminName == "") != (publicName == "") {
			return s.respondEphemeral(i, errorEmbed(
				"Datos incompletos",
				"Debes indicar el nombre de **ambos** canales.",
			), nil)
		}

		pending := PendingSetup{
			Mode:              ModeManual,
			AdminChannelName:  adminName,
			PublicChannelName: publicName,
		}
		if err := s.pendingStore.Set(ctx, correlationID, pending); err != nil {
			s.logger.ErrorContext(ctx, "Failed to store pending manual setup",
				"guild_id", i.GuildID,
				"correlation_id", correlationID,
				"error", err)
			return s.respondEphemeral(i, errorEmbed(
				"Error interno",
				"No pude preparar la configuración. Inténtalo de nuevo.",
			), nil)
		}

		embed := infoEmbed(
			"⚙️ Configuración manual",
			fmt.Sprintf(
				"Crearé el canal de administración **#%s**, el canal público **#%s**, los roles de rango y publicaré el panel.\n\n¿Quieres continuar?",
				adminName, publicName,
			),
		)
		return s.respondEphemeral(i, embed, confirmCancelRow(withCorrelationID(confirmManualCustomID, correlationID)))
	})
}

// readModalChannelNames extracts the two text inputs, tolerating value and
// pointer component variants.
func readModalChannelNames(data discordgo.ModalSubmitInteractionData) (adminName, publicName string) {
	getRow := func(mc discordgo.MessageComponent) (discordgo.ActionsRow, bool) {
		switch v := mc.(type) {
		case discordgo.ActionsRow:
			return v, true
		case *discordgo.ActionsRow:
			if v != nil {
				return *v, true
			}
		}
		return discordgo.ActionsRow{}, false
	}
	getText := func(mc discordgo.MessageComponent) (discordgo.TextInput, bool) {
		switch v := mc.(type) {
		case discordgo.TextInput:
			return v, true
		case *discordgo.TextInput:
			if v != nil {
				return *v, true
			}
		}
		return discordgo.TextInput{}, false
	}

	for _, row := range data.Components {
		r, ok := getRow(row)
		if !ok || len(r.Components) == 0 {
			continue
		}
		input, ok := getText(r.Components[0])
		if !ok {
			continue
		}
		value := strings.TrimSpace(input.Value)
		switch input.CustomID {
		case "canal_admin":
			adminName = value
		case "canal_publico":
			publicName = value
		}
	}
	return adminName, publicName
}
