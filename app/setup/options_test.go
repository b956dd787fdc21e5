package setup

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOptions_PerMode(t *testing.T) {
	pair := &ChannelPair{
		Control: &discordgo.Channel{ID: "111"},
		Panel:   &discordgo.Channel{ID: "222"},
	}
	raw := RawOptions{AdminChannelName: "mi-admin", PublicChannelName: "mi-panel"}

	auto := buildOptions(ModeAuto, nil, RawOptions{})
	assert.Equal(t, ModeAuto, auto.Mode())
	assert.IsType(t, AutoOptions{}, auto)

	manual := buildOptions(ModeManual, nil, raw)
	require.IsType(t, ManualOptions{}, manual)
	m := manual.(ManualOptions)
	assert.Equal(t, "mi-admin", m.AdminChannelName)
	assert.Equal(t, "mi-panel", m.PublicChannelName)

	existing := buildOptions(ModeExisting, pair, RawOptions{})
	require.IsType(t, ExistingOptions{}, existing)
	e := existing.(ExistingOptions)
	assert.Equal(t, "111", e.ControlChannelID)
	assert.Equal(t, "222", e.PanelChannelID)
}

func TestBuildOptions_Idempotent(t *testing.T) {
	pair := &ChannelPair{
		Control: &discordgo.Channel{ID: "111"},
		Panel:   &discordgo.Channel{ID: "222"},
	}
	raw := RawOptions{AdminChannelName: "a", PublicChannelName: "b"}

	first := buildOptions(ModeManual, pair, raw)
	second := buildOptions(ModeManual, pair, raw)
	assert.Equal(t, first, second)

	// Inputs come back out untouched.
	assert.Equal(t, "111", pair.Control.ID)
	assert.Equal(t, RawOptions{AdminChannelName: "a", PublicChannelName: "b"}, raw)
}

func TestBuildOptions_UnknownModeDefaultsToAuto(t *testing.T) {
	opts := buildOptions(Mode("algo"), nil, RawOptions{})
	assert.IsType(t, AutoOptions{}, opts)
}

func TestModeFromCustomID(t *testing.T) {
	tests := []struct {
		customID string
		want     Mode
		wantOK   bool
	}{
		{confirmAutoCustomID, ModeAuto, true},
		{withCorrelationID(confirmManualCustomID, "abc"), ModeManual, true},
		{legacyExistingCustomID("111", "222"), ModeExisting, true},
		{"rank_oro", "", false},
	}
	for _, tt := range tests {
		mode, ok := modeFromCustomID(tt.customID)
		assert.Equal(t, tt.wantOK, ok, tt.customID)
		assert.Equal(t, tt.want, mode, tt.customID)
	}
}
