// internal/actuator/modbus/client.go
package modbus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/haptic-monitor/internal/actuator"
)

// registerWriter is the part of modbus.Client the endpoint needs.
type registerWriter interface {
	WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error)
}

// EndpointClient is a single TCP connection to one Modbus endpoint.
// It serializes requests because it mutates SlaveId per write.
type EndpointClient struct {
	mu       sync.Mutex
	handler  *modbus.TCPClientHandler
	client   registerWriter
	register uint16
}

type Config struct {
	Endpoint string
	Timeout  time.Duration

	// Register receives the scaled intensity when used as an actuator.
	Register uint16
}

func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("actuator modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &EndpointClient{
		handler:  h,
		client:   modbus.NewClient(h),
		register: cfg.Register,
	}, nil
}

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// Vibrate writes the scaled intensity into the device register.
// The device index is the Modbus unit id.
func (c *EndpointClient) Vibrate(ctx context.Context, device uint32, intensity float64) error {
	if err := actuator.CheckIntensity(intensity); err != nil {
		return err
	}
	if device > 255 {
		return errors.New("actuator modbus: device index out of unit id range")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.WriteRegisters(uint8(device), c.register, []uint16{actuator.ScaleIntensity(intensity)})
}

// WriteRegisters writes a block of holding registers on one unit.
func (c *EndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handler != nil {
		c.handler.SlaveId = unitID
	}

	qty := uint16(len(regs))
	payload := packRegisters(regs)

	_, err := c.client.WriteMultipleRegisters(addr, qty, payload)
	return err
}

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
