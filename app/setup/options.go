package setup

// Mode selects how the guild gets its control and panel channels.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeManual   Mode = "manual"
	ModeExisting Mode = "existente"
)

// SetupOptions is a closed set of per-mode payloads. Each variant carries
// exactly the fields its mode needs, so a missing field is a compile error
// instead of a nil check at the call site.
type SetupOptions interface {
	Mode() Mode
}

// AutoOptions configures the automatic mode: the executor picks the
// configured default channel names.
type AutoOptions struct{}

func (AutoOptions) Mode() Mode { return ModeAuto }

// ManualOptions carries the user-provided channel names.
type ManualOptions struct {
	AdminChannelName  string
	PublicChannelName string
}

func (ManualOptions) Mode() Mode { return ModeManual }

// ExistingOptions carries the identifiers of the already-resolved channel
// pair.
type ExistingOptions struct {
	ControlChannelID string
	PanelChannelID   string
}

func (ExistingOptions) Mode() Mode { return ModeExisting }

// RawOptions is the untyped input the confirmation flow collected upstream.
type RawOptions struct {
	AdminChannelName  string
	PublicChannelName string
}

// buildOptions shapes the validated inputs into the mode's payload. It is
// pure and never re-validates: it runs only after extraction and the access
// and permission validators have already succeeded.
func buildOptions(mode Mode, pair *ChannelPair, raw RawOptions) SetupOptions {
	switch mode {
	case ModeManual:
		return ManualOptions{
			AdminChannelName:  raw.AdminChannelName,
			PublicChannelName: raw.PublicChannelName,
		}
	case ModeExisting:
		opts := ExistingOptions{}
		if pair != nil {
			opts.ControlChannelID = pair.Control.ID
			opts.PanelChannelID = pair.Panel.ID
		}
		return opts
	default:
		return AutoOptions{}
	}
}
