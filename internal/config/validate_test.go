// internal/config/validate_test.go
package config

import (
	"errors"
	"math"
	"testing"
)

// helper to build a valid config quickly
func valid() *Config {
	return &Config{
		Monitor: MonitorConfig{
			Source: SourceConfig{
				Endpoint: "127.0.0.1:5020",
				Fields: FieldsConfig{
					Alive:     0,
					MissCount: 1,
					Combo:     2,
					MaxCombo:  3,
					Mods:      4, // 4-5
					Status:    6,
				},
			},
			Device: DeviceConfig{
				Transport: TransportModbus,
				Endpoint:  "127.0.0.1:5021",
			},
			Actions: ActionsConfig{
				Miss: ActionConfig{Intensity: 0.5, DurationMs: 200},
			},
		},
	}
}

// ---- tests ----

func TestValidate_MinimalConfigAccepted(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_IntensityOutOfRange(t *testing.T) {
	for _, v := range []float64{-0.1, 1.01, math.NaN()} {
		cfg := valid()
		cfg.Monitor.Actions.SliderBreak.Intensity = v

		err := Validate(cfg)
		if err == nil {
			t.Fatalf("intensity %v: expected error, got nil", v)
		}
		if !errors.Is(err, ErrInvalid) {
			t.Fatalf("intensity %v: expected ErrInvalid, got %v", v, err)
		}
	}
}

func TestValidate_IntensityBoundsAllowed(t *testing.T) {
	cfg := valid()
	cfg.Monitor.Actions.Miss.Intensity = 0
	cfg.Monitor.Actions.ProcessMissing.Intensity = 1

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NegativeDuration(t *testing.T) {
	cfg := valid()
	cfg.Monitor.Actions.Miss.DurationMs = -1

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected duration error, got nil")
	}
}

func TestValidate_NegativeTick(t *testing.T) {
	cfg := valid()
	cfg.Monitor.TickMs = -10

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected tick error, got nil")
	}
}

func TestValidate_UnknownTransport(t *testing.T) {
	cfg := valid()
	cfg.Monitor.Device.Transport = "bluetooth"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected transport error, got nil")
	}
}

func TestValidate_UnknownOverflowPolicy(t *testing.T) {
	cfg := valid()
	cfg.Monitor.Queue.Overflow = "drop_newest"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected overflow policy error, got nil")
	}
}

func TestValidate_MissingEndpoints(t *testing.T) {
	cfg := valid()
	cfg.Monitor.Source.Endpoint = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected source endpoint error, got nil")
	}

	cfg = valid()
	cfg.Monitor.Device.Endpoint = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected device endpoint error, got nil")
	}
}

func TestValidate_FieldOverlapDetected(t *testing.T) {
	cfg := valid()
	cfg.Monitor.Source.Fields.Status = 5 // mods occupies 4-5

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected overlap error, got nil")
	}
}

func TestValidate_FieldsTouchingAllowed(t *testing.T) {
	cfg := valid()
	cfg.Monitor.Source.Fields.Mods = 10   // 10-11
	cfg.Monitor.Source.Fields.Status = 12 // touching

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_StatusRequiresEndpoint(t *testing.T) {
	cfg := valid()
	cfg.Monitor.Status = &StatusConfig{UnitID: 1}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected status endpoint error, got nil")
	}
}

func TestValidate_StatusDeviceNameASCII(t *testing.T) {
	cfg := valid()
	cfg.Monitor.Status = &StatusConfig{Endpoint: "ep", DeviceName: "pad-ü"}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected ASCII error, got nil")
	}
}
