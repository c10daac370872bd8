// internal/detector/types.go
package detector

import "fmt"

// Kind tags a domain event.
type Kind uint8

const (
	KindMissDetected Kind = iota + 1
	KindMissCounterReset
	KindSliderBreakDetected
	KindSpecialModeActive
	KindProcessMissing
	KindProcessRestored
)

func (k Kind) String() string {
	switch k {
	case KindMissDetected:
		return "miss_detected"
	case KindMissCounterReset:
		return "miss_counter_reset"
	case KindSliderBreakDetected:
		return "slider_break_detected"
	case KindSpecialModeActive:
		return "special_mode_active"
	case KindProcessMissing:
		return "process_missing"
	case KindProcessRestored:
		return "process_restored"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Event is one transient domain event.
// Count is set for MissDetected, MissCounterReset and SliderBreakDetected only.
type Event struct {
	Kind  Kind
	Count uint16
}

func (e Event) String() string {
	switch e.Kind {
	case KindMissDetected, KindMissCounterReset, KindSliderBreakDetected:
		return fmt.Sprintf("%s{%d}", e.Kind, e.Count)
	default:
		return e.Kind.String()
	}
}

// State is everything the detector remembers between ticks.
// The zero value is the state at the start of a monitoring session.
type State struct {
	PreviousMiss             uint16
	PreviousCombo            uint16
	SliderBreakCount         uint16
	PreviousSliderBreakCount uint16

	WarnedProcessMissing bool
}
