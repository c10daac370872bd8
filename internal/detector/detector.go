// internal/detector/detector.go
package detector

import "github.com/tamzrod/haptic-monitor/internal/sampler"

// Detector turns snapshots into domain events.
// It holds configuration only; all memory lives in State.
type Detector struct {
	// SpecialModeMask selects the mod bits that count as special mode.
	SpecialModeMask uint32
}

// Step runs one tick. It is pure: the returned State replaces s wholesale,
// so a reader holding the old value never sees a partial update.
// Events are ordered lifecycle, miss, slider break, special mode.
func (d Detector) Step(s State, snap sampler.Snapshot) (State, []Event) {
	var events []Event

	// ------------------------------------------------------------
	// 1. PROCESS LIFECYCLE
	// ------------------------------------------------------------

	if !snap.ProcessAlive {
		if !s.WarnedProcessMissing {
			s.WarnedProcessMissing = true
			events = append(events, Event{Kind: KindProcessMissing})
		}
		return s, events
	}
	if s.WarnedProcessMissing {
		s.WarnedProcessMissing = false
		events = append(events, Event{Kind: KindProcessRestored})
	}

	// ------------------------------------------------------------
	// 2. MISS COUNT DELTA
	// ------------------------------------------------------------

	// The counter never decreases within one attempt;
	// a strict decrease is the retry signal.
	missChanged := snap.MissCount != s.PreviousMiss
	if snap.MissCount < s.PreviousMiss {
		s.PreviousMiss = snap.MissCount
		events = append(events, Event{Kind: KindMissCounterReset, Count: snap.MissCount})
	} else if s.PreviousMiss < snap.MissCount {
		events = append(events, Event{Kind: KindMissDetected, Count: snap.MissCount})
		s.PreviousMiss = snap.MissCount
	}

	// ------------------------------------------------------------
	// 3. SLIDER BREAK INFERENCE
	// ------------------------------------------------------------

	if s.PreviousCombo < snap.Combo {
		s.PreviousCombo = snap.Combo
	}
	// combo above this attempt's best is left over from a prior attempt
	if s.PreviousCombo > snap.MaxCombo {
		s.PreviousCombo = 0
	}
	// A drop in combo with the miss counter unchanged this tick is a slider break.
	// A drop whose miss lands on the next tick is also counted; sampling can't tell them apart.
	if s.PreviousCombo > snap.Combo {
		// a drop that comes with a miss belongs to the miss and is not carried forward
		s.PreviousCombo = snap.Combo
		if !missChanged {
			s.SliderBreakCount++
			events = append(events, Event{Kind: KindSliderBreakDetected, Count: s.SliderBreakCount})
		}
	}
	if s.SliderBreakCount < s.PreviousSliderBreakCount {
		s.PreviousSliderBreakCount = 0
	} else if s.PreviousSliderBreakCount < s.SliderBreakCount {
		s.PreviousSliderBreakCount = s.SliderBreakCount
	}

	// ------------------------------------------------------------
	// 4. SPECIAL MODE (level-triggered)
	// ------------------------------------------------------------

	if snap.Mods&d.SpecialModeMask != 0 && snap.Status == sampler.StatusPlaying {
		events = append(events, Event{Kind: KindSpecialModeActive})
	}

	return s, events
}
