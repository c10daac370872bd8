// internal/monitor/monitor.go
package monitor

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tamzrod/haptic-monitor/internal/detector"
	"github.com/tamzrod/haptic-monitor/internal/dispatcher"
	"github.com/tamzrod/haptic-monitor/internal/sampler"
	"github.com/tamzrod/haptic-monitor/internal/status"
)

// Sampler produces one snapshot per tick.
type Sampler interface {
	Sample() sampler.Snapshot
}

// StatusWriter is the delivery-only contract for the status block.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// Config is the minimal runtime config the monitor needs.
type Config struct {
	Name     string
	Interval time.Duration
	Detector detector.Detector
}

// Monitor is the tick driver: Sample -> Step -> Submit, in that order, on one goroutine.
// It is the only writer of the detector state.
type Monitor struct {
	cfg     Config
	sampler Sampler
	disp    *dispatcher.Dispatcher
	status  StatusWriter // nil when the status block is disabled

	state         detector.State
	snap          status.Snapshot
	statusDirty   bool // last status write failed; secondTick retries it
	lastFailed    uint64
	lastCompleted uint64
}

// New creates a monitor. sw may be nil.
func New(cfg Config, s Sampler, d *dispatcher.Dispatcher, sw StatusWriter) (*Monitor, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("monitor: interval must be > 0")
	}
	if s == nil {
		return nil, errors.New("monitor: sampler required")
	}
	if d == nil {
		return nil, errors.New("monitor: dispatcher required")
	}
	if cfg.Name == "" {
		cfg.Name = "default"
	}
	return &Monitor{
		cfg:     cfg,
		sampler: s,
		disp:    d,
		status:  sw,
		snap:    status.Snapshot{Health: status.HealthUnknown},
	}, nil
}

// State returns the detector state as of the last completed tick.
func (m *Monitor) State() detector.State {
	return m.state
}

// Tick performs exactly one monitoring cycle and returns the events it produced.
func (m *Monitor) Tick(ctx context.Context) []detector.Event {
	snap := m.sampler.Sample()

	next, events := m.cfg.Detector.Step(m.state, snap)
	m.state = next

	for _, ev := range events {
		m.logEvent(ev)
		if err := m.disp.Submit(ctx, ev); err != nil {
			// only a stop can fail a submit; the rest of the tick is moot
			break
		}
	}

	m.updateStatus(snap)
	return events
}

func (m *Monitor) logEvent(ev detector.Event) {
	switch ev.Kind {
	case detector.KindSpecialModeActive:
		// level-triggered, fires every tick
	case detector.KindProcessMissing:
		log.Printf("monitor: game process not found, waiting (monitor=%s)", m.cfg.Name)
	case detector.KindProcessRestored:
		log.Printf("monitor: game process attached (monitor=%s)", m.cfg.Name)
	default:
		log.Printf("monitor: %s (monitor=%s)", ev, m.cfg.Name)
	}
}

// Run starts the tick loop and the actuation worker. It returns after ctx is done
// and the worker has sent its zero-intensity tail.
func (m *Monitor) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.disp.Run(ctx)
	}()

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	// Full block write on start (identity re-assert) if enabled.
	m.writeStatus("on start")

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			m.logSummary()
			return

		case <-ticker.C:
			m.Tick(ctx)

		case <-secTicker.C:
			m.secondTick()
		}
	}
}

// ---- status ----

func (m *Monitor) updateStatus(snap sampler.Snapshot) {
	if m.status == nil {
		return
	}

	next := m.snap
	stats := m.disp.Stats()

	if snap.ProcessAlive {
		next.Health = status.HealthOK
		next.SecondsInError = 0
		next.MissCount = m.state.PreviousMiss
		if next.LastErrorCode == status.ErrorCodeProcessMissing {
			next.LastErrorCode = status.ErrorCodeNone
		}
	} else {
		next.Health = status.HealthError
		next.LastErrorCode = status.ErrorCodeProcessMissing
	}
	next.SliderBreaks = m.state.SliderBreakCount

	// actuation failures are sticky until the device completes a command again
	switch {
	case stats.Failed > m.lastFailed:
		next.LastErrorCode = status.ErrorCodeActuation
	case stats.Completed > m.lastCompleted && next.LastErrorCode == status.ErrorCodeActuation:
		next.LastErrorCode = status.ErrorCodeNone
	}
	m.lastFailed = stats.Failed
	m.lastCompleted = stats.Completed
	next.DroppedActuations = clamp16(stats.Dropped)

	if next == m.snap {
		return
	}
	m.snap = next
	m.writeStatus("")
}

// secondTick counts seconds in error, 1 Hz while in error.
// It also retries a failed status write.
func (m *Monitor) secondTick() {
	if m.status == nil {
		return
	}
	if m.snap.Health == status.HealthError && m.snap.SecondsInError < 65535 {
		m.snap.SecondsInError++
		m.writeStatus("seconds tick")
		return
	}
	if m.statusDirty {
		m.writeStatus("retry")
	}
}

func (m *Monitor) writeStatus(when string) {
	if m.status == nil {
		return
	}
	err := m.status.WriteStatus(m.snap)
	m.statusDirty = err != nil
	if err != nil {
		if when != "" {
			log.Printf("monitor: status write failed %s (monitor=%s): %v", when, m.cfg.Name, err)
			return
		}
		log.Printf("monitor: status write failed (monitor=%s): %v", m.cfg.Name, err)
	}
}

func (m *Monitor) logSummary() {
	st := m.disp.Stats()
	log.Printf(
		"monitor: stopped (monitor=%s) slider_breaks=%s actuations completed=%s failed=%s dropped=%s",
		m.cfg.Name,
		humanize.Comma(int64(m.state.SliderBreakCount)),
		humanize.Comma(int64(st.Completed)),
		humanize.Comma(int64(st.Failed)),
		humanize.Comma(int64(st.Dropped)),
	)
}

func clamp16(v uint64) uint16 {
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
