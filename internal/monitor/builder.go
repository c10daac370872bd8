// internal/monitor/builder.go
package monitor

import (
	"fmt"
	"time"

	"github.com/tamzrod/haptic-monitor/internal/actuator"
	amodbus "github.com/tamzrod/haptic-monitor/internal/actuator/modbus"
	amqtt "github.com/tamzrod/haptic-monitor/internal/actuator/mqtt"
	cfg "github.com/tamzrod/haptic-monitor/internal/config"
	"github.com/tamzrod/haptic-monitor/internal/detector"
	"github.com/tamzrod/haptic-monitor/internal/dispatcher"
	"github.com/tamzrod/haptic-monitor/internal/sampler"
	smodbus "github.com/tamzrod/haptic-monitor/internal/sampler/modbus"
	"github.com/tamzrod/haptic-monitor/internal/status"
)

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// PolicyFromConfig converts configured actions into the dispatcher's table.
func PolicyFromConfig(a cfg.ActionsConfig) dispatcher.Policy {
	action := func(c cfg.ActionConfig) dispatcher.Action {
		return dispatcher.Action{Intensity: c.Intensity, Duration: ms(c.DurationMs)}
	}
	return dispatcher.Policy{
		Miss:                action(a.Miss),
		SliderBreak:         action(a.SliderBreak),
		SpecialMode:         action(a.SpecialMode),
		ProcessMissing:      action(a.ProcessMissing),
		SpecialModeCooldown: ms(a.SpecialMode.CooldownMs),
	}
}

// OverflowFromConfig maps the configured overflow policy.
func OverflowFromConfig(s string) dispatcher.Overflow {
	if s == cfg.OverflowBackpressure {
		return dispatcher.Backpressure
	}
	return dispatcher.DropOldest
}

// Build wires sampler, actuator, dispatcher and the optional status writer
// from a validated and normalized configuration.
// Device and status endpoints are dialed now (fail fast at startup);
// the memory bridge is dialed on the first tick.
func Build(m cfg.MonitorConfig) (*Monitor, func() error, error) {
	var closers []func() error
	closeAll := func() error {
		var last error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				last = err
			}
		}
		return last
	}
	fail := func(err error) (*Monitor, func() error, error) {
		_ = closeAll()
		return nil, nil, err
	}

	// ---- sampler ----
	f := m.Source.Fields
	src, err := smodbus.New(smodbus.Config{
		Endpoint: m.Source.Endpoint,
		UnitID:   m.Source.UnitID,
		Timeout:  ms(m.Source.TimeoutMs),
		Addresses: smodbus.Addresses{
			Alive:     f.Alive,
			MissCount: f.MissCount,
			Combo:     f.Combo,
			MaxCombo:  f.MaxCombo,
			Mods:      f.Mods,
			Status:    f.Status,
		},
	})
	if err != nil {
		return fail(err)
	}
	closers = append(closers, src.Close)

	smp, err := sampler.New(src)
	if err != nil {
		return fail(err)
	}

	// ---- actuator ----
	var (
		act       actuator.Actuator
		modbusDev *amodbus.EndpointClient
	)
	switch m.Device.Transport {
	case cfg.TransportMQTT:
		c, err := amqtt.New(amqtt.Config{
			Broker:      m.Device.Endpoint,
			ClientID:    m.Device.ClientID,
			TopicPrefix: m.Device.TopicPrefix,
			Timeout:     ms(m.Device.TimeoutMs),
		})
		if err != nil {
			return fail(fmt.Errorf("device mqtt: %w", err))
		}
		closers = append(closers, c.Close)
		act = c
	default:
		c, err := amodbus.NewEndpointClient(amodbus.Config{
			Endpoint: m.Device.Endpoint,
			Timeout:  ms(m.Device.TimeoutMs),
			Register: m.Device.Register,
		})
		if err != nil {
			return fail(fmt.Errorf("device modbus: %w", err))
		}
		closers = append(closers, c.Close)
		act = c
		modbusDev = c
	}

	// ---- dispatcher ----
	disp, err := dispatcher.New(PolicyFromConfig(m.Actions), act, m.Device.Index, dispatcher.Options{
		QueueSize:   m.Queue.Size,
		Overflow:    OverflowFromConfig(m.Queue.Overflow),
		StopTimeout: ms(m.Device.TimeoutMs),
	})
	if err != nil {
		return fail(err)
	}

	// ---- status writer (optional) ----
	var sw StatusWriter
	if s := m.Status; s != nil {
		// one client per unique endpoint
		var cli status.RegisterWriter
		if modbusDev != nil && s.Endpoint == m.Device.Endpoint {
			cli = modbusDev
		} else {
			c, err := amodbus.NewEndpointClient(amodbus.Config{
				Endpoint: s.Endpoint,
				Timeout:  ms(s.TimeoutMs),
			})
			if err != nil {
				return fail(fmt.Errorf("status modbus: %w", err))
			}
			closers = append(closers, c.Close)
			cli = c
		}

		w, err := status.NewWriter(cli, s.UnitID, s.Slot, s.DeviceName)
		if err != nil {
			return fail(err)
		}
		sw = w
	}

	mon, err := New(Config{
		Name:     m.Source.Endpoint,
		Interval: ms(m.TickMs),
		Detector: detector.Detector{SpecialModeMask: m.SpecialModeMask},
	}, smp, disp, sw)
	if err != nil {
		return fail(err)
	}

	return mon, closeAll, nil
}
