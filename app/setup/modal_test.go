package setup

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func modalSubmitInteraction(customID string, inputs map[string]string) *discordgo.InteractionCreate {
	var rows []discordgo.MessageComponent
	for id, value := range inputs {
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{CustomID: id, Value: value},
			},
		})
	}
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionModalSubmit,
			GuildID: "guild-1",
			Data: discordgo.ModalSubmitInteractionData{
				CustomID:   customID,
				Components: rows,
			},
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "user-1"},
				Permissions: discordgo.PermissionAdministrator,
			},
		},
	}
}

func TestHandleManualModalSubmit_StoresNamesAndPrompts(t *testing.T) {
	env := newTestEnv(t, allCatalogBits)

	var responses []*discordgo.InteractionResponse
	env.fake.InteractionRespondFunc = func(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
		responses = append(responses, resp)
		return nil
	}

	cid := newSetupCorrelationID()
	i := modalSubmitInteraction(withCorrelationID(manualModalCustomID, cid), map[string]string{
		"canal_admin":   "mi-admin",
		"canal_publico": "mi-panel",
	})

	err := env.manager.HandleManualModalSubmit(context.Background(), i)
	require.NoError(t, err)

	pending, err := env.store.Get(context.Background(), cid)
	require.NoError(t, err)
	assert.Equal(t, ModeManual, pending.Mode)
	assert.Equal(t, "mi-admin", pending.AdminChannelName)
	assert.Equal(t, "mi-panel", pending.PublicChannelName)

	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Data)
	require.NotEmpty(t, responses[0].Data.Components)
	row, ok := responses[0].Data.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	confirm, ok := row.Components[0].(discordgo.Button)
	require.True(t, ok)
	assert.Equal(t, withCorrelationID(confirmManualCustomID, cid), confirm.CustomID)
}

func TestHandleManualModalSubmit_HalfFilledIsRejected(t *testing.T) {
	env := newTestEnv(t, allCatalogBits)

	var responses []*discordgo.InteractionResponse
	env.fake.InteractionRespondFunc = func(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
		responses = append(responses, resp)
		return nil
	}

	cid := newSetupCorrelationID()
	i := modalSubmitInteraction(withCorrelationID(manualModalCustomID, cid), map[string]string{
		"canal_admin":   "mi-admin",
		"canal_publico": "   ",
	})

	err := env.manager.HandleManualModalSubmit(context.Background(), i)
	require.NoError(t, err)

	_, storeErr := env.store.Get(context.Background(), cid)
	assert.Error(t, storeErr, "half-filled submissions must not be stored")

	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Data)
	require.NotEmpty(t, responses[0].Data.Embeds)
	assert.Equal(t, "Datos incompletos", responses[0].Data.Embeds[0].Title)
}
