package rank

import (
	"context"

	"github.com/brauliorg12/apex-range-sub001/app/interactions"
	"github.com/bwmarrin/discordgo"
)

func RegisterHandlers(registry *interactions.Registry, manager Manager) {
	registry.RegisterHandler(buttonCustomIDPrefix, func(ctx context.Context, i *discordgo.InteractionCreate) {
		_ = manager.HandleRankButton(ctx, i)
	})
}
