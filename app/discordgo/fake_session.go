package discord

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// FakeSession provides a programmable stub for the Session interface.
// It follows the Fake/Stub pattern for testing, where each interface method
// has a corresponding Func field that can be set per-test.
type FakeSession struct {
	mu    sync.Mutex
	trace []string

	// --- Interaction Methods ---
	InteractionRespondFunc      func(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEditFunc func(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)

	// --- Message Methods ---
	ChannelMessageSendComplexFunc func(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditEmbedFunc   func(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)

	// --- Channel Methods ---
	GetChannelFunc  func(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)

	// --- Guild Methods ---
	GuildFunc              func(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildChannelsFunc      func(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildChannelCreateFunc func(guildID, name string, ctype discordgo.ChannelType, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildRoleCreateFunc    func(guildID string, params *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error)

	// --- User/Member Methods ---
	GuildMemberFunc           func(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberRoleAddFunc    func(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemoveFunc func(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GetBotUserFunc            func() (*discordgo.User, error)

	// --- Application Command Methods ---
	ApplicationCommandCreateFunc func(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandsFunc      func(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)

	// --- Handler/Lifecycle Methods ---
	AddHandlerFunc func(handler interface{}) func()
	OpenFunc       func() error
	CloseFunc      func() error
}

// NewFakeSession initializes a new FakeSession with an empty trace.
func NewFakeSession() *FakeSession {
	return &FakeSession{
		trace: []string{},
	}
}

func (f *FakeSession) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeSession) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// --- Interaction Methods Implementation ---

func (f *FakeSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	f.record("InteractionRespond")
	if f.InteractionRespondFunc != nil {
		return f.InteractionRespondFunc(interaction, resp, options...)
	}
	return nil
}

func (f *FakeSession) InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.record("InteractionResponseEdit")
	if f.InteractionResponseEditFunc != nil {
		return f.InteractionResponseEditFunc(interaction, newresp, options...)
	}
	return &discordgo.Message{ID: "fake-msg-123"}, nil
}

// --- Message Methods Implementation ---

func (f *FakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.record("ChannelMessageSendComplex")
	if f.ChannelMessageSendComplexFunc != nil {
		return f.ChannelMessageSendComplexFunc(channelID, data, options...)
	}
	return &discordgo.Message{ID: "fake-msg-123", ChannelID: channelID}, nil
}

func (f *FakeSession) ChannelMessageEditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.record("ChannelMessageEditEmbed")
	if f.ChannelMessageEditEmbedFunc != nil {
		return f.ChannelMessageEditEmbedFunc(channelID, messageID, embed, options...)
	}
	return &discordgo.Message{ID: messageID, ChannelID: channelID}, nil
}

// --- Channel Methods Implementation ---

func (f *FakeSession) GetChannel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.record("GetChannel")
	if f.GetChannelFunc != nil {
		return f.GetChannelFunc(channelID, options...)
	}
	return &discordgo.Channel{ID: channelID, Type: discordgo.ChannelTypeGuildText}, nil
}

// --- Guild Methods Implementation ---

func (f *FakeSession) Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
	f.record("Guild")
	if f.GuildFunc != nil {
		return f.GuildFunc(guildID, options...)
	}
	return &discordgo.Guild{ID: guildID, Name: "Fake Guild"}, nil
}

func (f *FakeSession) GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	f.record("GuildChannels")
	if f.GuildChannelsFunc != nil {
		return f.GuildChannelsFunc(guildID, options...)
	}
	return []*discordgo.Channel{}, nil
}

func (f *FakeSession) GuildChannelCreate(guildID, name string, ctype discordgo.ChannelType, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	f.record("GuildChannelCreate")
	if f.GuildChannelCreateFunc != nil {
		return f.GuildChannelCreateFunc(guildID, name, ctype, options...)
	}
	return &discordgo.Channel{ID: "fake-channel-123", Name: name, Type: ctype}, nil
}

func (f *FakeSession) GuildRoleCreate(guildID string, params *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error) {
	f.record("GuildRoleCreate")
	if f.GuildRoleCreateFunc != nil {
		return f.GuildRoleCreateFunc(guildID, params, options...)
	}
	return &discordgo.Role{ID: "fake-role-123", Name: params.Name}, nil
}

// --- User/Member Methods Implementation ---

func (f *FakeSession) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	f.record("GuildMember")
	if f.GuildMemberFunc != nil {
		return f.GuildMemberFunc(guildID, userID, options...)
	}
	return &discordgo.Member{User: &discordgo.User{ID: userID}}, nil
}

func (f *FakeSession) GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	f.record("GuildMemberRoleAdd")
	if f.GuildMemberRoleAddFunc != nil {
		return f.GuildMemberRoleAddFunc(guildID, userID, roleID, options...)
	}
	return nil
}

func (f *FakeSession) GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error {
	f.record("GuildMemberRoleRemove")
	if f.GuildMemberRoleRemoveFunc != nil {
		return f.GuildMemberRoleRemoveFunc(guildID, userID, roleID, options...)
	}
	return nil
}

func (f *FakeSession) GetBotUser() (*discordgo.User, error) {
	f.record("GetBotUser")
	if f.GetBotUserFunc != nil {
		return f.GetBotUserFunc()
	}
	return &discordgo.User{ID: "fake-bot-123", Username: "FakeBot"}, nil
}

// --- Application Command Methods Implementation ---

func (f *FakeSession) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	f.record("ApplicationCommandCreate")
	if f.ApplicationCommandCreateFunc != nil {
		return f.ApplicationCommandCreateFunc(appID, guildID, cmd, options...)
	}
	return cmd, nil
}

func (f *FakeSession) ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.record("ApplicationCommands")
	if f.ApplicationCommandsFunc != nil {
		return f.ApplicationCommandsFunc(appID, guildID, options...)
	}
	return []*discordgo.ApplicationCommand{}, nil
}

// --- Handler/Lifecycle Methods Implementation ---

func (f *FakeSession) AddHandler(handler interface{}) func() {
	f.record("AddHandler")
	if f.AddHandlerFunc != nil {
		return f.AddHandlerFunc(handler)
	}
	return func() {}
}

func (f *FakeSession) Open() error {
	f.record("Open")
	if f.OpenFunc != nil {
		return f.OpenFunc()
	}
	return nil
}

func (f *FakeSession) Close() error {
	f.record("Close")
	if f.CloseFunc != nil {
		return f.CloseFunc()
	}
	return nil
}
