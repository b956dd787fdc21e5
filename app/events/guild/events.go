package guild

import (
	"time"
)

// Topic constants for guild events
const (
	GuildSetupCompletedTopic = "guild.setup.completed"
	GuildSetupFailedTopic    = "guild.setup.failed"
)

// GuildSetupCompletedEvent is published when a guild completes the rank setup.
type GuildSetupCompletedEvent struct {
	GuildID            string            `json:"guild_id"`
	GuildName          string            `json:"guild_name"`
	AdminUserID        string            `json:"admin_user_id"`
	Mode               string            `json:"mode"`
	ControlChannelID   string            `json:"control_channel_id"`
	ControlChannelName string            `json:"control_channel_name"`
	PanelChannelID     string            `json:"panel_channel_id"`
	PanelChannelName   string            `json:"panel_channel_name"`
	PanelMessageID     string            `json:"panel_message_id"`
	StatusMessageID    string            `json:"status_message_id"`
	RankRoleIDs        map[string]string `json:"rank_role_ids"` // rank slug -> role_id
	SetupCompletedAt   time.Time         `json:"setup_completed_at"`
}

// GuildSetupFailedEvent is published when the setup executor raised.
type GuildSetupFailedEvent struct {
	GuildID  string    `json:"guild_id"`
	Mode     string    `json:"mode"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
}
