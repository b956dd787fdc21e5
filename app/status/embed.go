package status

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	colorHealthy   = 0x2ecc71
	colorDegraded  = 0xe67e22
	colorUnhealthy = 0xe74c3c
)

// Embed renders the current snapshot as a status embed for the control
// channel.
func Embed(snap Snapshot, known bool) *discordgo.MessageEmbed {
	if !known {
		return &discordgo.MessageEmbed{
			Title:       "📡 Estado de la API de Apex",
			Description: "Todavía no hay datos de estado. El bot consultará la API en breve.",
			Color:       colorDegraded,
		}
	}

	if snap.FetchError != "" {
		return &discordgo.MessageEmbed{
			Title:       "📡 Estado de la API de Apex",
			Description: "No se pudo consultar la API de Apex. Se reintentará automáticamente.",
			Color:       colorUnhealthy,
			Footer:      statusFooter(snap.RetrievedAt),
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:  "📡 Estado de la API de Apex",
		Color:  colorHealthy,
		Footer: statusFooter(snap.RetrievedAt),
	}
	if !snap.Healthy() {
		embed.Color = colorDegraded
	}

	for _, svc := range snap.Services {
		icon := "🟢"
		if !svc.Healthy {
			icon = "🔴"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s %s", icon, svc.Name),
			Value:  svc.Detail,
			Inline: true,
		})
	}
	return embed
}

func statusFooter(at time.Time) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text: "Última comprobación: " + at.Format("2006-01-02 15:04:05 MST"),
	}
}
