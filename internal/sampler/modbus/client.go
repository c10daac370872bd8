// internal/sampler/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/haptic-monitor/internal/sampler"
)

// Addresses maps each field onto its holding register.
// Mods occupies Addresses.Mods and Addresses.Mods+1 (high word first).
type Addresses struct {
	Alive     uint16
	MissCount uint16
	Combo     uint16
	MaxCombo  uint16
	Mods      uint16
	Status    uint16
}

// Config is minimal transport config.
type Config struct {
	Endpoint  string
	UnitID    uint8
	Timeout   time.Duration
	Addresses Addresses
}

// registerReader is the part of modbus.Client the source needs.
type registerReader interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
}

// Source implements sampler.MemorySource against a memory bridge that
// publishes the game's fields as Modbus holding registers.
// The handler reconnects on its own after transport death.
type Source struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  registerReader
	addr    Addresses
}

// New creates a source. The first read dials the endpoint.
func New(cfg Config) (*Source, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("sampler modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	return &Source{
		handler: h,
		client:  modbus.NewClient(h),
		addr:    cfg.Addresses,
	}, nil
}

// Close closes the TCP connection.
func (s *Source) Close() error {
	if s == nil || s.handler == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler.Close()
}

// ---- sampler.MemorySource ----

// maxReadQuantity is the Modbus limit for one holding-register read.
const maxReadQuantity = 125

func (s *Source) ReadField(f sampler.Field) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readField(f)
}

// ReadFields reads all fields in one request when their registers fit a
// single read, so the values belong to the same instant. Otherwise it falls
// back to one request per field.
func (s *Source) ReadFields(fields []sampler.Field) ([]uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lo, hi := uint32(0xFFFF), uint32(0)
	for _, f := range fields {
		start, n, err := s.span(f)
		if err != nil {
			return nil, err
		}
		if uint32(start) < lo {
			lo = uint32(start)
		}
		if end := uint32(start) + uint32(n) - 1; end > hi {
			hi = end
		}
	}

	out := make([]uint32, len(fields))
	if len(fields) == 0 {
		return out, nil
	}

	if hi-lo+1 > maxReadQuantity {
		for i, f := range fields {
			v, err := s.readField(f)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	b, err := s.client.ReadHoldingRegisters(uint16(lo), uint16(hi-lo+1))
	if err != nil {
		return nil, err
	}
	regs, err := unpackRegisters(b, int(hi-lo+1))
	if err != nil {
		return nil, err
	}

	for i, f := range fields {
		start, n, _ := s.span(f)
		off := uint32(start) - lo
		if n == 2 {
			out[i] = uint32(regs[off])<<16 | uint32(regs[off+1])
		} else {
			out[i] = uint32(regs[off])
		}
		if f == sampler.FieldAlive && out[i] == 0 {
			return nil, sampler.ErrProcessNotFound
		}
	}
	return out, nil
}

// span returns the first register and register count of f.
func (s *Source) span(f sampler.Field) (uint16, int, error) {
	switch f {
	case sampler.FieldAlive:
		return s.addr.Alive, 1, nil
	case sampler.FieldMissCount:
		return s.addr.MissCount, 1, nil
	case sampler.FieldCombo:
		return s.addr.Combo, 1, nil
	case sampler.FieldMaxCombo:
		return s.addr.MaxCombo, 1, nil
	case sampler.FieldMods:
		return s.addr.Mods, 2, nil
	case sampler.FieldStatus:
		return s.addr.Status, 1, nil
	default:
		return 0, 0, fmt.Errorf("sampler modbus: unsupported field %d", f)
	}
}

func (s *Source) readField(f sampler.Field) (uint32, error) {
	switch f {
	case sampler.FieldAlive:
		v, err := s.read16(s.addr.Alive)
		if err != nil {
			return 0, err
		}
		if v == 0 {
			return 0, sampler.ErrProcessNotFound
		}
		return uint32(v), nil
	case sampler.FieldMissCount:
		return s.read16(s.addr.MissCount)
	case sampler.FieldCombo:
		return s.read16(s.addr.Combo)
	case sampler.FieldMaxCombo:
		return s.read16(s.addr.MaxCombo)
	case sampler.FieldMods:
		return s.read32(s.addr.Mods)
	case sampler.FieldStatus:
		return s.read16(s.addr.Status)
	default:
		return 0, fmt.Errorf("sampler modbus: unsupported field %d", f)
	}
}

// ---- helpers (pure geometry) ----

func (s *Source) read16(addr uint16) (uint32, error) {
	b, err := s.client.ReadHoldingRegisters(addr, 1)
	if err != nil {
		return 0, err
	}
	regs, err := unpackRegisters(b, 1)
	if err != nil {
		return 0, err
	}
	return uint32(regs[0]), nil
}

func (s *Source) read32(addr uint16) (uint32, error) {
	b, err := s.client.ReadHoldingRegisters(addr, 2)
	if err != nil {
		return 0, err
	}
	regs, err := unpackRegisters(b, 2)
	if err != nil {
		return 0, err
	}
	return uint32(regs[0])<<16 | uint32(regs[1]), nil
}

func unpackRegisters(data []byte, want int) ([]uint16, error) {
	if len(data) < 2*want {
		return nil, fmt.Errorf("sampler modbus: short register payload: got=%d bytes want=%d", len(data), 2*want)
	}
	out := make([]uint16, want)
	for i := 0; i < want; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out, nil
}
