package setup

import (
	"strings"

	"github.com/google/uuid"
)

const (
	setupCommandName = "apex-setup"

	confirmAutoCustomID     = "setup_auto"
	confirmManualCustomID   = "setup_manual"
	confirmExistingCustomID = "setup_existente"
	cancelCustomID          = "setup_cancel"
	manualModalCustomID     = "setup_manual_modal"

	correlationIDSeparator = "|cid="
)

func newSetupCorrelationID() string {
	return uuid.NewString()
}

func withCorrelationID(customID, correlationID string) string {
	if correlationID == "" {
		return customID
	}
	return customID + correlationIDSeparator + correlationID
}

func correlationIDFromCustomID(customID string) string {
	if idx := strings.Index(customID, correlationIDSeparator); idx >= 0 {
		return customID[idx+len(correlationIDSeparator):]
	}
	return ""
}

// modeFromCustomID maps a confirm button custom ID back to its setup mode.
func modeFromCustomID(customID string) (Mode, bool) {
	switch {
	case strings.HasPrefix(customID, confirmExistingCustomID):
		return ModeExisting, true
	case strings.HasPrefix(customID, confirmManualCustomID):
		return ModeManual, true
	case strings.HasPrefix(customID, confirmAutoCustomID):
		return ModeAuto, true
	}
	return "", false
}
