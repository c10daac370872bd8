// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultTickMs          = 10
	DefaultTimeoutMs       = 500
	DefaultQueueSize       = 8
	DefaultCooldownMs      = 100
	DefaultSpecialModeMask = 8 // osu! Hidden
	DefaultTopicPrefix     = "haptics"
	DefaultDeviceNameChars = 16
)

var defaultActions = ActionsConfig{
	Miss:           ActionConfig{Intensity: 0.5, DurationMs: 250},
	SliderBreak:    ActionConfig{Intensity: 0.3, DurationMs: 250},
	SpecialMode:    ActionConfig{Intensity: 0.2, DurationMs: 50, CooldownMs: DefaultCooldownMs},
	ProcessMissing: ActionConfig{Intensity: 1.0, DurationMs: 5000},
}

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	m := &cfg.Monitor

	if m.TickMs == 0 {
		m.TickMs = DefaultTickMs
	}
	if m.SpecialModeMask == 0 {
		m.SpecialModeMask = DefaultSpecialModeMask
	}
	if m.Source.TimeoutMs == 0 {
		m.Source.TimeoutMs = DefaultTimeoutMs
	}

	if m.Device.Transport == "" {
		m.Device.Transport = TransportModbus
	}
	if m.Device.TimeoutMs == 0 {
		m.Device.TimeoutMs = DefaultTimeoutMs
	}
	if m.Device.Transport == TransportMQTT && m.Device.TopicPrefix == "" {
		m.Device.TopicPrefix = DefaultTopicPrefix
	}

	normalizeAction(&m.Actions.Miss, defaultActions.Miss)
	normalizeAction(&m.Actions.SliderBreak, defaultActions.SliderBreak)
	normalizeAction(&m.Actions.SpecialMode, defaultActions.SpecialMode)
	normalizeAction(&m.Actions.ProcessMissing, defaultActions.ProcessMissing)
	if m.Actions.SpecialMode.CooldownMs == 0 {
		m.Actions.SpecialMode.CooldownMs = DefaultCooldownMs
	}

	if m.Queue.Size == 0 {
		m.Queue.Size = DefaultQueueSize
	}
	if m.Queue.Overflow == "" {
		m.Queue.Overflow = OverflowDropOldest
	}

	// ------------------------------------------------------------
	// STATUS BLOCK NORMALIZATION (OPT-IN)
	// ------------------------------------------------------------

	if s := m.Status; s != nil {
		// ASCII already validated; truncate to the slot capacity
		if len(s.DeviceName) > DefaultDeviceNameChars {
			s.DeviceName = s.DeviceName[:DefaultDeviceNameChars]
		}
		if s.TimeoutMs == 0 {
			s.TimeoutMs = DefaultTimeoutMs
		}
	}
}

// normalizeAction replaces an entirely unset action with its default.
// A zero duration on an otherwise configured action also takes the default.
func normalizeAction(a *ActionConfig, def ActionConfig) {
	if a.Intensity == 0 && a.DurationMs == 0 && a.CooldownMs == 0 {
		*a = def
		return
	}
	if a.DurationMs == 0 {
		a.DurationMs = def.DurationMs
	}
}
