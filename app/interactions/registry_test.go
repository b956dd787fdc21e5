package interactions

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func componentInteraction(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{CustomID: customID},
		},
	}
}

func TestRegistry_ExactMatch(t *testing.T) {
	r := NewRegistry()
	called := ""
	r.RegisterHandler("setup_cancel", func(ctx context.Context, i *discordgo.InteractionCreate) {
		called = "setup_cancel"
	})

	r.HandleInteraction(nil, componentInteraction("setup_cancel"))
	assert.Equal(t, "setup_cancel", called)
}

func TestRegistry_PrefixMatch(t *testing.T) {
	r := NewRegistry()
	var got string
	r.RegisterHandler("setup_existente", func(ctx context.Context, i *discordgo.InteractionCreate) {
		got = i.MessageComponentData().CustomID
	})

	r.HandleInteraction(nil, componentInteraction("setup_existente_111_222"))
	assert.Equal(t, "setup_existente_111_222", got)
}

func TestRegistry_LongestPrefixWins(t *testing.T) {
	r := NewRegistry()
	var got string
	r.RegisterHandler("setup_manual", func(ctx context.Context, i *discordgo.InteractionCreate) {
		got = "setup_manual"
	})
	r.RegisterHandler("setup_manual_modal", func(ctx context.Context, i *discordgo.InteractionCreate) {
		got = "setup_manual_modal"
	})

	r.HandleInteraction(nil, componentInteraction("setup_manual_modal|cid=abc"))
	assert.Equal(t, "setup_manual_modal", got)
}

func TestRegistry_CommandMatch(t *testing.T) {
	r := NewRegistry()
	called := false
	r.RegisterHandler("apex-setup", func(ctx context.Context, i *discordgo.InteractionCreate) {
		called = true
	})

	r.HandleInteraction(nil, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{Name: "apex-setup"},
		},
	})
	assert.True(t, called)
}

func TestRegistry_UnknownIDIsIgnored(t *testing.T) {
	r := NewRegistry()
	r.RegisterHandler("setup_auto", func(ctx context.Context, i *discordgo.InteractionCreate) {
		t.Fatal("handler should not fire for unrelated custom ID")
	})

	r.HandleInteraction(nil, componentInteraction("rank_bronce"))
}
