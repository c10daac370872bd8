// internal/dispatcher/dispatcher.go
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tamzrod/haptic-monitor/internal/actuator"
	"github.com/tamzrod/haptic-monitor/internal/detector"
)

// ActuationError is a device command failure. It is never fatal.
type ActuationError struct {
	Kind   detector.Kind
	Device uint32
	Err    error
}

func (e *ActuationError) Error() string {
	return fmt.Sprintf("actuation failed (device=%d kind=%s): %v", e.Device, e.Kind, e.Err)
}

func (e *ActuationError) Unwrap() error { return e.Err }

// Options tune the queue and the stop tail.
type Options struct {
	QueueSize int
	Overflow  Overflow

	// StopTimeout bounds the zero-intensity command sent after every actuation.
	StopTimeout time.Duration

	// Now is the clock used for the special-mode cooldown.
	Now func() time.Time
}

// Stats are cumulative counters for one session.
type Stats struct {
	Completed uint64
	Failed    uint64
	Dropped   uint64
}

// Dispatcher maps events to actuations and runs them against one device,
// strictly one at a time, in submission order.
type Dispatcher struct {
	policy Policy
	act    actuator.Actuator
	device uint32

	q       *queue
	special cooldown // producer side only

	// inflight guards the device: at most one actuation at any time.
	inflight sync.Mutex

	stopTimeout time.Duration
	now         func() time.Time

	completed atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
}

func New(policy Policy, act actuator.Actuator, device uint32, opts Options) (*Dispatcher, error) {
	if act == nil {
		return nil, errors.New("dispatcher: actuator required")
	}
	for _, a := range []Action{policy.Miss, policy.SliderBreak, policy.SpecialMode, policy.ProcessMissing} {
		if err := actuator.CheckIntensity(a.Intensity); err != nil {
			return nil, fmt.Errorf("dispatcher: %w", err)
		}
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Dispatcher{
		policy:      policy,
		act:         act,
		device:      device,
		q:           newQueue(opts.QueueSize, opts.Overflow),
		special:     cooldown{window: policy.SpecialModeCooldown},
		stopTimeout: opts.StopTimeout,
		now:         opts.Now,
	}, nil
}

// Submit maps one event and enqueues the resulting request.
// It is called from the tick driver only.
// Informational and rate-limited events are accepted and produce nothing.
func (d *Dispatcher) Submit(ctx context.Context, ev detector.Event) error {
	req, ok := d.policy.Map(ev.Kind)
	if !ok {
		return nil
	}
	if ev.Kind == detector.KindSpecialModeActive && !d.special.allow(d.now()) {
		return nil
	}

	evicted, err := d.q.push(ctx, req)
	if err != nil {
		return err
	}
	if evicted != nil {
		n := d.dropped.Add(1)
		log.Printf(
			"dispatcher: queue full (size=%d), dropped oldest %s request (dropped total=%s)",
			d.q.size, evicted.Kind, humanize.Comma(int64(n)),
		)
	}
	return nil
}

// Run is the single actuation worker. It returns when ctx is done.
// Stop is observed at the drain point: an in-flight actuation still sends its zero tail,
// requests not yet started are discarded.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.q.ready:
		}

		for {
			if ctx.Err() != nil {
				return
			}
			req, ok := d.q.pop()
			if !ok {
				break
			}
			if err := d.Execute(ctx, req); err != nil {
				log.Printf("dispatcher: %v", err)
			}
		}
	}
}

// Execute runs one request to completion: set intensity, hold, set zero.
// The hold is cut short when ctx is done; the zero command always goes out.
func (d *Dispatcher) Execute(ctx context.Context, req Request) error {
	d.inflight.Lock()
	defer d.inflight.Unlock()

	if err := d.act.Vibrate(ctx, d.device, req.Intensity); err != nil {
		d.failed.Add(1)
		// never leave a device vibrating on a half-applied command
		return &ActuationError{Kind: req.Kind, Device: d.device, Err: errors.Join(err, d.stop())}
	}

	hold := time.NewTimer(req.Duration)
	select {
	case <-hold.C:
	case <-ctx.Done():
		hold.Stop()
	}

	if err := d.stop(); err != nil {
		d.failed.Add(1)
		return &ActuationError{Kind: req.Kind, Device: d.device, Err: err}
	}

	d.completed.Add(1)
	return nil
}

// stop sends the zero-intensity tail on a context detached from monitoring.
func (d *Dispatcher) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), d.stopTimeout)
	defer cancel()
	return d.act.Vibrate(ctx, d.device, 0)
}

// Pending is the number of queued, not yet started requests.
func (d *Dispatcher) Pending() int {
	return d.q.depth()
}

func (d *Dispatcher) Stats() Stats {
	return Stats{
		Completed: d.completed.Load(),
		Failed:    d.failed.Load(),
		Dropped:   d.dropped.Load(),
	}
}
