// interactions/registry.go
package interactions

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

type Registry struct {
	handlers map[string]func(ctx context.Context, i *discordgo.InteractionCreate)
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]func(ctx context.Context, i *discordgo.InteractionCreate)),
	}
}

func (r *Registry) RegisterHandler(id string, handler func(ctx context.Context, i *discordgo.InteractionCreate)) {
	r.handlers[id] = handler
}

func (r *Registry) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	var id string

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		id = i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		id = i.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		modalData := i.ModalSubmitData()
		if modalData.CustomID == "" {
			slog.Error("Modal submission data is invalid: CustomID is empty")
			return
		}
		id = modalData.CustomID
	}

	if handler, ok := r.handlers[id]; ok {
		handler(ctx, i)
		return
	}

	// Prefix match covers custom IDs carrying correlation IDs or encoded
	// channel identifiers after the registered stem. The longest stem wins
	// so overlapping registrations stay deterministic.
	var best string
	var bestHandler func(ctx context.Context, i *discordgo.InteractionCreate)
	for key, handler := range r.handlers {
		if strings.HasPrefix(id, key) && len(key) > len(best) {
			best = key
			bestHandler = handler
		}
	}
	if bestHandler != nil {
		bestHandler(ctx, i)
	}
}
