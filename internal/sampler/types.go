// internal/sampler/types.go
package sampler

// Field identifies one observed value in the game process.
// Geometry lives in the MemorySource, not here.
type Field uint8

const (
	FieldAlive Field = iota
	FieldMissCount
	FieldCombo
	FieldMaxCombo
	FieldMods
	FieldStatus
)

func (f Field) String() string {
	switch f {
	case FieldAlive:
		return "alive"
	case FieldMissCount:
		return "miss_count"
	case FieldCombo:
		return "combo"
	case FieldMaxCombo:
		return "max_combo"
	case FieldMods:
		return "mods"
	case FieldStatus:
		return "status"
	default:
		return "unknown"
	}
}

// PlayStatus is the coarse game screen the process reports.
type PlayStatus uint8

const (
	StatusUnknown PlayStatus = iota
	StatusSongSelect
	StatusPlaying
	StatusOther
)

func (s PlayStatus) String() string {
	switch s {
	case StatusSongSelect:
		return "song_select"
	case StatusPlaying:
		return "playing"
	case StatusOther:
		return "other"
	default:
		return "unknown"
	}
}

// Raw status values published by the game.
const (
	rawStatusNotRunning = 0xFFFF // -1 as one register
	rawStatusPlaying    = 2
	rawStatusSongSelect = 5
)

// StatusFromRaw maps the game's raw status value onto PlayStatus.
func StatusFromRaw(raw uint32) PlayStatus {
	switch raw {
	case rawStatusPlaying:
		return StatusPlaying
	case rawStatusSongSelect:
		return StatusSongSelect
	case rawStatusNotRunning, 0xFFFFFFFF:
		return StatusUnknown
	default:
		return StatusOther
	}
}

// Snapshot is one tick's sample of the observed counters.
// Counter fields are only meaningful when ProcessAlive is true;
// a dead snapshot is always the zero value with ProcessAlive=false.
type Snapshot struct {
	MissCount uint16
	Combo     uint16
	MaxCombo  uint16
	Mods      uint32
	Status    PlayStatus

	ProcessAlive bool
}
