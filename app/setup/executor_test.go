package setup

import (
	"context"
	"testing"

	discord "github.com/brauliorg12/apex-range-sub001/app/discordgo"
	"github.com/brauliorg12/apex-range-sub001/app/rank"
	"github.com/brauliorg12/apex-range-sub001/app/status"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(fake *discord.FakeSession) Executor {
	return NewExecutor(fake, testLogger(), testConfig(), status.NewCache())
}

func TestExecute_AutoReusesExistingChannels(t *testing.T) {
	fake := discord.NewFakeSession()
	fake.GuildChannelsFunc = func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
		return []*discordgo.Channel{
			{ID: "existing-admin", Name: "apex-admin", Type: discordgo.ChannelTypeGuildText},
		}, nil
	}
	var createdChannels []string
	fake.GuildChannelCreateFunc = func(guildID, name string, ctype discordgo.ChannelType, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
		createdChannels = append(createdChannels, name)
		return &discordgo.Channel{ID: "new-" + name, Name: name, Type: ctype}, nil
	}
	fake.GuildFunc = func(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
		return &discordgo.Guild{
			ID: guildID,
			Roles: []*discordgo.Role{
				{ID: "role-bronce", Name: "Bronce"},
			},
		}, nil
	}
	var createdRoles []string
	fake.GuildRoleCreateFunc = func(guildID string, params *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error) {
		createdRoles = append(createdRoles, params.Name)
		return &discordgo.Role{ID: "role-" + params.Name, Name: params.Name}, nil
	}

	result, err := newTestExecutor(fake).Execute(context.Background(), "guild-1", "user-1", AutoOptions{})
	require.NoError(t, err)

	// The admin channel already existed; only the public one is created.
	assert.Equal(t, []string{"apex-rangos"}, createdChannels)
	assert.Equal(t, "existing-admin", result.ControlChannelID)
	assert.Equal(t, "new-apex-rangos", result.PanelChannelID)

	// One role per ladder entry, Bronce reused.
	assert.Len(t, result.RankRoleIDs, len(rank.Ranks()))
	assert.Equal(t, "role-bronce", result.RankRoleIDs["bronce"])
	assert.Len(t, createdRoles, len(rank.Ranks())-1)
	assert.NotContains(t, createdRoles, "Bronce")
}

func TestExecute_ManualUsesProvidedNames(t *testing.T) {
	fake := discord.NewFakeSession()
	var createdChannels []string
	fake.GuildChannelCreateFunc = func(guildID, name string, ctype discordgo.ChannelType, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
		createdChannels = append(createdChannels, name)
		return &discordgo.Channel{ID: "new-" + name, Name: name, Type: ctype}, nil
	}

	_, err := newTestExecutor(fake).Execute(context.Background(), "guild-1", "user-1", ManualOptions{
		AdminChannelName:  "ops",
		PublicChannelName: "rangos",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ops", "rangos"}, createdChannels)
}

func TestExecute_ExistingSkipsChannelCreation(t *testing.T) {
	fake := discord.NewFakeSession()
	fake.GuildChannelCreateFunc = func(guildID, name string, ctype discordgo.ChannelType, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
		t.Fatal("existing mode must not create channels")
		return nil, nil
	}

	result, err := newTestExecutor(fake).Execute(context.Background(), "guild-1", "user-1", ExistingOptions{
		ControlChannelID: "111",
		PanelChannelID:   "222",
	})
	require.NoError(t, err)
	assert.Equal(t, "111", result.ControlChannelID)
	assert.Equal(t, "222", result.PanelChannelID)
	assert.NotEmpty(t, result.PanelMessageID)
	assert.NotEmpty(t, result.StatusMessageID)
}

func TestExecute_PanelPublishedInPanelChannel(t *testing.T) {
	fake := discord.NewFakeSession()
	var sends []string
	fake.ChannelMessageSendComplexFunc = func(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
		sends = append(sends, channelID)
		return &discordgo.Message{ID: "msg-" + channelID, ChannelID: channelID}, nil
	}

	result, err := newTestExecutor(fake).Execute(context.Background(), "guild-1", "user-1", ExistingOptions{
		ControlChannelID: "ctrl",
		PanelChannelID:   "panel",
	})
	require.NoError(t, err)

	// Rank panel goes to the public channel first, then the status embed
	// to the control channel.
	assert.Equal(t, []string{"panel", "ctrl"}, sends)
	assert.Equal(t, "msg-panel", result.PanelMessageID)
	assert.Equal(t, "msg-ctrl", result.StatusMessageID)
}
