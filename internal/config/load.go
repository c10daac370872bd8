// internal/config/load.go
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML configuration file.
// It performs no validation and applies no defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &cfg, nil
}

// envOverlay lists the values an operator may override without editing the file.
// Unset variables leave the file value untouched.
type envOverlay struct {
	SourceEndpoint  string `env:"HAPTIC_SOURCE_ENDPOINT"`
	DeviceEndpoint  string `env:"HAPTIC_DEVICE_ENDPOINT"`
	DeviceTransport string `env:"HAPTIC_DEVICE_TRANSPORT"`
	TickMs          int    `env:"HAPTIC_TICK_MS"`
	StatusEndpoint  string `env:"HAPTIC_STATUS_ENDPOINT"`
}

// ApplyEnv overlays environment variables onto cfg.
// It MUST be called before Validate().
func ApplyEnv(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var o envOverlay
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}

	m := &cfg.Monitor

	if o.SourceEndpoint != "" {
		m.Source.Endpoint = o.SourceEndpoint
	}
	if o.DeviceEndpoint != "" {
		m.Device.Endpoint = o.DeviceEndpoint
	}
	if o.DeviceTransport != "" {
		m.Device.Transport = o.DeviceTransport
	}
	if o.TickMs != 0 {
		m.TickMs = o.TickMs
	}
	// status endpoint only applies when the status block is opted in
	if o.StatusEndpoint != "" && m.Status != nil {
		m.Status.Endpoint = o.StatusEndpoint
	}

	return nil
}
