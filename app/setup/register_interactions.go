package setup

import (
	"context"
	"fmt"

	discord "github.com/brauliorg12/apex-range-sub001/app/discordgo"
	"github.com/brauliorg12/apex-range-sub001/app/interactions"
	"github.com/bwmarrin/discordgo"
)

// RegisterHandlers wires the setup command, the confirmation buttons and the
// manual modal into the interaction registry.
func RegisterHandlers(registry *interactions.Registry, manager SetupManager) {
	registry.RegisterHandler(setupCommandName, func(ctx context.Context, i *discordgo.InteractionCreate) {
		_ = manager.HandleSetupCommand(ctx, i)
	})
	registry.RegisterHandler(manualModalCustomID, func(ctx context.Context, i *discordgo.InteractionCreate) {
		_ = manager.HandleManualModalSubmit(ctx, i)
	})
	registry.RegisterHandler(cancelCustomID, func(ctx context.Context, i *discordgo.InteractionCreate) {
		_ = manager.HandleSetupCancel(ctx, i)
	})
	for _, stem := range []string{confirmAutoCustomID, confirmManualCustomID, confirmExistingCustomID} {
		registry.RegisterHandler(stem, func(ctx context.Context, i *discordgo.InteractionCreate) {
			_ = manager.HandleSetupConfirmation(ctx, i)
		})
	}
}

// RegisterCommand creates the /apex-setup slash command for the guild.
// Registration is skipped when the command already exists.
func RegisterCommand(session discord.Session, appID, guildID string) error {
	existing, err := session.ApplicationCommands(appID, guildID)
	if err != nil {
		return fmt.Errorf("failed to list application commands: %w", err)
	}
	for _, c := range existing {
		if c.Name == setupCommandName {
			return nil
		}
	}

	cmd := &discordgo.ApplicationCommand{
		Name:        setupCommandName,
		Description: "Configura el sistema de rangos de Apex Legends en este servidor",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "modo",
				Description: "Cómo crear los canales del sistema de rangos",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Automático", Value: string(ModeAuto)},
					{Name: "Manual", Value: string(ModeManual)},
					{Name: "Canales existentes", Value: string(ModeExisting)},
				},
			},
			{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         "canal_admin",
				Description:  "Canal de administración (solo modo existente)",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			},
			{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         "canal_publico",
				Description:  "Canal público del panel (solo modo existente)",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			},
		},
	}
	if _, err := session.ApplicationCommandCreate(appID, guildID, cmd); err != nil {
		return fmt.Errorf("failed to register %s command: %w", setupCommandName, err)
	}
	return nil
}
