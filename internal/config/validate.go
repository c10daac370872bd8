// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid marks a configuration rejected at load time.
// Nothing wrapping it ever reaches the monitoring loop.
var ErrInvalid = errors.New("configuration invalid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// Validate checks configuration correctness.
// It performs declarative validation only.
// Zero values mean "use the default" and are accepted; Normalize fills them.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return invalid("config is nil")
	}
	m := cfg.Monitor

	if m.TickMs < 0 {
		return invalid("tick_ms must be >= 0, got %d", m.TickMs)
	}

	// ------------------------------------------------------------
	// SOURCE
	// ------------------------------------------------------------

	if m.Source.Endpoint == "" {
		return invalid("source.endpoint is required")
	}
	if m.Source.TimeoutMs < 0 {
		return invalid("source.timeout_ms must be >= 0, got %d", m.Source.TimeoutMs)
	}
	if err := validateFields(m.Source.Fields); err != nil {
		return err
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	switch m.Device.Transport {
	case "", TransportModbus, TransportMQTT:
	default:
		return invalid("device.transport %q is not one of %q, %q",
			m.Device.Transport, TransportModbus, TransportMQTT)
	}
	if m.Device.Endpoint == "" {
		return invalid("device.endpoint is required")
	}
	if m.Device.TimeoutMs < 0 {
		return invalid("device.timeout_ms must be >= 0, got %d", m.Device.TimeoutMs)
	}

	// ------------------------------------------------------------
	// ACTIONS
	// ------------------------------------------------------------

	actions := []struct {
		name string
		a    ActionConfig
	}{
		{"miss", m.Actions.Miss},
		{"slider_break", m.Actions.SliderBreak},
		{"special_mode", m.Actions.SpecialMode},
		{"process_missing", m.Actions.ProcessMissing},
	}
	for _, it := range actions {
		if math.IsNaN(it.a.Intensity) || it.a.Intensity < 0 || it.a.Intensity > 1 {
			return invalid("actions.%s.intensity must be within [0,1], got %v", it.name, it.a.Intensity)
		}
		if it.a.DurationMs < 0 {
			return invalid("actions.%s.duration_ms must be >= 0, got %d", it.name, it.a.DurationMs)
		}
		if it.a.CooldownMs < 0 {
			return invalid("actions.%s.cooldown_ms must be >= 0, got %d", it.name, it.a.CooldownMs)
		}
	}

	// ------------------------------------------------------------
	// QUEUE
	// ------------------------------------------------------------

	if m.Queue.Size < 0 {
		return invalid("queue.size must be >= 0, got %d", m.Queue.Size)
	}
	switch m.Queue.Overflow {
	case "", OverflowDropOldest, OverflowBackpressure:
	default:
		return invalid("queue.overflow %q is not one of %q, %q",
			m.Queue.Overflow, OverflowDropOldest, OverflowBackpressure)
	}

	// ------------------------------------------------------------
	// STATUS BLOCK (OPT-IN)
	// ------------------------------------------------------------

	if s := m.Status; s != nil {
		if s.Endpoint == "" {
			return invalid("status.endpoint is required when status is set")
		}
		// each slot owns a 20-register block that must fit the address space
		if (uint32(s.Slot)+1)*20 > 0x10000 {
			return invalid("status.slot %d is out of address range", s.Slot)
		}
		if s.TimeoutMs < 0 {
			return invalid("status.timeout_ms must be >= 0, got %d", s.TimeoutMs)
		}
		for i := 0; i < len(s.DeviceName); i++ {
			if s.DeviceName[i] > 0x7F {
				return invalid("status.device_name must contain ASCII characters only")
			}
		}
	}

	return nil
}

// validateFields rejects field maps where two fields share a register.
func validateFields(f FieldsConfig) error {
	type span struct {
		name       string
		start, end uint16
	}

	spans := []span{
		{"alive", f.Alive, f.Alive},
		{"miss_count", f.MissCount, f.MissCount},
		{"combo", f.Combo, f.Combo},
		{"max_combo", f.MaxCombo, f.MaxCombo},
		{"mods", f.Mods, f.Mods + 1},
		{"status", f.Status, f.Status},
	}

	if f.Mods == 0xFFFF {
		return invalid("source.fields.mods needs two registers, address %d is the last one", f.Mods)
	}

	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			// overlap check (inclusive)
			if !(a.end < b.start || a.start > b.end) {
				return invalid(
					"source.fields overlap: %s=%d-%d overlaps with %s=%d-%d",
					a.name, a.start, a.end,
					b.name, b.start, b.end,
				)
			}
		}
	}

	return nil
}
