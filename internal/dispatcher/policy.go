// internal/dispatcher/policy.go
package dispatcher

import (
	"time"

	"github.com/tamzrod/haptic-monitor/internal/detector"
)

// Action is one configured vibrate-then-stop.
type Action struct {
	Intensity float64
	Duration  time.Duration
}

// Policy is the event -> actuation table.
type Policy struct {
	Miss           Action
	SliderBreak    Action
	SpecialMode    Action
	ProcessMissing Action

	// SpecialModeCooldown rate-limits SpecialModeActive, which fires every tick.
	SpecialModeCooldown time.Duration
}

// Request is one queued actuation. Requests are never merged.
type Request struct {
	Kind      detector.Kind
	Intensity float64
	Duration  time.Duration
}

// Map looks up the action for an event kind.
// Informational events (MissCounterReset, ProcessRestored) map to nothing.
func (p Policy) Map(k detector.Kind) (Request, bool) {
	var a Action
	switch k {
	case detector.KindMissDetected:
		a = p.Miss
	case detector.KindSliderBreakDetected:
		a = p.SliderBreak
	case detector.KindSpecialModeActive:
		a = p.SpecialMode
	case detector.KindProcessMissing:
		a = p.ProcessMissing
	default:
		return Request{}, false
	}
	return Request{Kind: k, Intensity: a.Intensity, Duration: a.Duration}, true
}

// cooldown admits at most one event per window.
type cooldown struct {
	window time.Duration
	last   time.Time
	primed bool
}

func (c *cooldown) allow(now time.Time) bool {
	if c.primed && now.Sub(c.last) < c.window {
		return false
	}
	c.last = now
	c.primed = true
	return true
}
