package setup

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelIDsFromLegacyToken(t *testing.T) {
	tests := []struct {
		name        string
		token       string
		wantControl string
		wantPanel   string
		wantOK      bool
	}{
		{
			name:        "encoded pair round-trips",
			token:       legacyExistingCustomID("111", "222"),
			wantControl: "111",
			wantPanel:   "222",
			wantOK:      true,
		},
		{
			name:   "too few segments",
			token:  "setup_existente_111",
			wantOK: false,
		},
		{
			name:   "correlation ID form carries no encoded pair",
			token:  withCorrelationID(confirmExistingCustomID, "abc"),
			wantOK: false,
		},
		{
			name:   "empty segment",
			token:  "setup_existente__222",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			control, panel, ok := channelIDsFromLegacyToken(tt.token)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantControl, control)
				assert.Equal(t, tt.wantPanel, panel)
			}
		})
	}
}

func TestExtractChannels_StoredPairWinsOverLegacyToken(t *testing.T) {
	env := newTestEnv(t, allCatalogBits)
	m := env.manager.(*setupManager)

	cid := newSetupCorrelationID()
	require.NoError(t, env.store.Set(context.Background(), cid, PendingSetup{
		Mode:             ModeExisting,
		ControlChannelID: "stored-ctrl",
		PanelChannelID:   "stored-panel",
	}))

	// The custom ID also parses as a legacy token; the stored pair must win.
	customID := withCorrelationID(legacyExistingCustomID("token-ctrl", "token-panel"), cid)
	pair := m.extractChannels(context.Background(), customID)

	require.NotNil(t, pair)
	assert.Equal(t, "stored-ctrl", pair.Control.ID)
	assert.Equal(t, "stored-panel", pair.Panel.ID)
}

func TestExtractChannels_FallsBackToLegacyToken(t *testing.T) {
	env := newTestEnv(t, allCatalogBits)
	m := env.manager.(*setupManager)

	pair := m.extractChannels(context.Background(), legacyExistingCustomID("111", "222"))
	require.NotNil(t, pair)
	assert.Equal(t, "111", pair.Control.ID)
	assert.Equal(t, "222", pair.Panel.ID)
}

func TestExtractChannels_NonTextChannelYieldsNil(t *testing.T) {
	env := newTestEnv(t, allCatalogBits)
	m := env.manager.(*setupManager)
	env.fake.GetChannelFunc = func(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
		if channelID == "222" {
			return &discordgo.Channel{ID: channelID, Type: discordgo.ChannelTypeGuildVoice}, nil
		}
		return &discordgo.Channel{ID: channelID, Type: discordgo.ChannelTypeGuildText}, nil
	}

	assert.Nil(t, m.extractChannels(context.Background(), legacyExistingCustomID("111", "222")))
}

func TestExtractChannels_FetchErrorYieldsNil(t *testing.T) {
	env := newTestEnv(t, allCatalogBits)
	m := env.manager.(*setupManager)
	env.fake.GetChannelFunc = func(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
		return nil, errors.New("missing access")
	}

	assert.Nil(t, m.extractChannels(context.Background(), legacyExistingCustomID("111", "222")))
}

func TestExtractChannels_ExpiredStoreFallsBackToToken(t *testing.T) {
	env := newTestEnv(t, allCatalogBits)
	m := env.manager.(*setupManager)

	// An unknown correlation ID behaves like an expired one.
	customID := withCorrelationID(confirmExistingCustomID, newSetupCorrelationID())
	assert.Nil(t, m.extractChannels(context.Background(), customID))
}
