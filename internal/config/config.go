// internal/config/config.go
package config

type Config struct {
	Monitor MonitorConfig `yaml:"monitor"`
}

type MonitorConfig struct {
	TickMs          int           `yaml:"tick_ms"`
	SpecialModeMask uint32        `yaml:"special_mode_mask"`
	Source          SourceConfig  `yaml:"source"`
	Device          DeviceConfig  `yaml:"device"`
	Actions         ActionsConfig `yaml:"actions"`
	Queue           QueueConfig   `yaml:"queue"`

	// Monitor status block (optional, opt-in)
	Status *StatusConfig `yaml:"status"`
}

// ---- SOURCE (memory bridge) ----

type SourceConfig struct {
	Endpoint  string       `yaml:"endpoint"`
	UnitID    uint8        `yaml:"unit_id"`
	TimeoutMs int          `yaml:"timeout_ms"`
	Fields    FieldsConfig `yaml:"fields"`
}

// FieldsConfig holds the holding-register address of each observed field.
// Mods spans two registers (high word first); every other field spans one.
type FieldsConfig struct {
	Alive     uint16 `yaml:"alive"`
	MissCount uint16 `yaml:"miss_count"`
	Combo     uint16 `yaml:"combo"`
	MaxCombo  uint16 `yaml:"max_combo"`
	Mods      uint16 `yaml:"mods"`
	Status    uint16 `yaml:"status"`
}

// ---- DEVICE ----

const (
	TransportModbus = "modbus"
	TransportMQTT   = "mqtt"
)

type DeviceConfig struct {
	Index     uint32 `yaml:"index"`
	Transport string `yaml:"transport"` // modbus | mqtt
	Endpoint  string `yaml:"endpoint"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// modbus: holding register receiving the scaled intensity
	Register uint16 `yaml:"register"`

	// mqtt: topic prefix, published as <prefix>/<index>/intensity
	TopicPrefix string `yaml:"topic_prefix"`
	ClientID    string `yaml:"client_id"`
}

// ---- ACTIONS ----

type ActionConfig struct {
	Intensity  float64 `yaml:"intensity"`
	DurationMs int     `yaml:"duration_ms"`
	CooldownMs int     `yaml:"cooldown_ms"` // special_mode only
}

type ActionsConfig struct {
	Miss           ActionConfig `yaml:"miss"`
	SliderBreak    ActionConfig `yaml:"slider_break"`
	SpecialMode    ActionConfig `yaml:"special_mode"`
	ProcessMissing ActionConfig `yaml:"process_missing"`
}

// ---- QUEUE ----

const (
	OverflowDropOldest   = "drop_oldest"
	OverflowBackpressure = "backpressure"
)

type QueueConfig struct {
	Size     int    `yaml:"size"`
	Overflow string `yaml:"overflow"`
}

// ---- STATUS ----

type StatusConfig struct {
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	Slot       uint16 `yaml:"slot"`
	DeviceName string `yaml:"device_name"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}
