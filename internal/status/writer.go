// internal/status/writer.go
package status

import (
	"errors"
	"fmt"
	"strings"
)

// RegisterWriter is the exact contract the status writer uses.
type RegisterWriter interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// Writer delivers monitor status snapshots into a status block.
// The first write, and the first write after any failure, re-asserts the
// full block including the device name. Otherwise only changed slots are written.
type Writer struct {
	cli    RegisterWriter
	unitID uint8
	slot   uint16

	needFull bool
	last     Snapshot
	nameRegs []uint16
}

// NewWriter builds a status writer for one block.
func NewWriter(cli RegisterWriter, unitID uint8, slot uint16, deviceName string) (*Writer, error) {
	if cli == nil {
		return nil, errors.New("status writer: client required")
	}
	if (uint32(slot)+1)*SlotsPerDevice > 0x10000 {
		return nil, fmt.Errorf("status writer: slot %d out of address range", slot)
	}
	return &Writer{
		cli:      cli,
		unitID:   unitID,
		slot:     slot,
		needFull: true,
		nameRegs: EncodeDeviceName(deviceName),
	}, nil
}

func (w *Writer) baseAddr() uint16 {
	// Each device owns a fixed SlotsPerDevice block.
	return w.slot * SlotsPerDevice
}

// WriteStatus delivers one snapshot.
func (w *Writer) WriteStatus(s Snapshot) error {
	base := w.baseAddr()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if w.needFull {
		regs := Encode(s)
		copy(regs[SlotDeviceNameStart:SlotDeviceNameEnd+1], w.nameRegs)

		if err := w.cli.WriteRegisters(w.unitID, base, regs); err != nil {
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		w.needFull = false
		w.last = s
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: changed slots only
	// ------------------------------------------------------------
	prev := Encode(w.last)
	next := Encode(s)

	var errs []string
	for slot := SlotHealthCode; slot < SlotReservedStart; slot++ {
		if prev[slot] == next[slot] {
			continue
		}
		if err := w.cli.WriteRegisters(w.unitID, base+uint16(slot), []uint16{next[slot]}); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d write failed: %v", slot, err))
		}
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt; re-assert on next write.
		w.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	w.last = s
	return nil
}
