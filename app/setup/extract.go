package setup

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ChannelPair is the resolved control/panel channel pair for existing mode.
type ChannelPair struct {
	Control *discordgo.Channel
	Panel   *discordgo.Channel
}

const (
	legacyTokenSeparator      = "_"
	legacyTokenMinSegments    = 4
	legacyTokenControlSegment = 2
	legacyTokenPanelSegment   = 3
)

// extractChannels resolves the existing-mode channel pair. Explicit
// option-provided identifiers stored under the correlation ID are preferred;
// the legacy encoded custom ID is only consulted when no stored pair exists.
// Resolution is atomic: any missing or non-text channel yields nil.
func (s *setupManager) extractChannels(ctx context.Context, customID string) *ChannelPair {
	if cid := correlationIDFromCustomID(customID); cid != "" {
		if pending, err := s.pendingStore.Get(ctx, cid); err == nil &&
			pending.ControlChannelID != "" && pending.PanelChannelID != "" {
			return s.resolvePair(pending.ControlChannelID, pending.PanelChannelID)
		}
	}

	controlID, panelID, ok := channelIDsFromLegacyToken(customID)
	if !ok {
		return nil
	}
	return s.resolvePair(controlID, panelID)
}

// channelIDsFromLegacyToken decodes the compatibility custom ID format:
// underscore-separated segments with the channel IDs at fixed positions.
func channelIDsFromLegacyToken(token string) (controlID, panelID string, ok bool) {
	segments := strings.Split(token, legacyTokenSeparator)
	if len(segments) < legacyTokenMinSegments {
		return "", "", false
	}
	controlID = segments[legacyTokenControlSegment]
	panelID = segments[legacyTokenPanelSegment]
	if controlID == "" || panelID == "" {
		return "", "", false
	}
	return controlID, panelID, true
}

// legacyExistingCustomID encodes a channel pair in the compatibility format.
func legacyExistingCustomID(controlID, panelID string) string {
	return strings.Join([]string{confirmExistingCustomID, controlID, panelID}, legacyTokenSeparator)
}

func (s *setupManager) resolvePair(controlID, panelID string) *ChannelPair {
	control, err := s.session.GetChannel(controlID)
	if err != nil || control == nil || control.Type != discordgo.ChannelTypeGuildText {
		return nil
	}
	panel, err := s.session.GetChannel(panelID)
	if err != nil || panel == nil || panel.Type != discordgo.ChannelTypeGuildText {
		return nil
	}
	return &ChannelPair{Control: control, Panel: panel}
}
