package rank

import (
	"github.com/bwmarrin/discordgo"
)

const panelColor = 0xe67e22

// PanelEmbed builds the public rank panel embed.
func PanelEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎮 Selecciona tu rango de Apex Legends",
		Description: "Pulsa el botón de tu rango actual y te asignaré el rol correspondiente. Si cambias de rango, vuelve a pulsar: los rangos anteriores se quitan solos.",
		Color:       panelColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Apex Range • un rango por jugador",
		},
	}
}

// PanelComponents builds the rank button rows, five buttons per row.
func PanelComponents() []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	var current []discordgo.MessageComponent

	for _, r := range ranks {
		current = append(current, discordgo.Button{
			Label:    r.Name,
			Style:    discordgo.SecondaryButton,
			CustomID: ButtonCustomID(r),
			Emoji:    &discordgo.ComponentEmoji{Name: r.Emoji},
		})
		if len(current) == 5 {
			rows = append(rows, discordgo.ActionsRow{Components: current})
			current = nil
		}
	}
	if len(current) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: current})
	}
	return rows
}
