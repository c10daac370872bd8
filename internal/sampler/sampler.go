// internal/sampler/sampler.go
package sampler

import (
	"errors"
)

// ErrProcessNotFound is returned by a MemorySource when no game process is attached.
// It is distinct from a field that legitimately reads zero.
var ErrProcessNotFound = errors.New("sampler: process not found")

// MemorySource abstracts the external process-memory reader.
// Repeated calls return the latest observed value of a field.
type MemorySource interface {
	ReadField(f Field) (uint32, error)
}

// BlockSource is a MemorySource that can read several fields at one instant.
// Sampler prefers it so a snapshot never mixes values from different moments.
type BlockSource interface {
	MemorySource
	ReadFields(fields []Field) ([]uint32, error)
}

// snapshotFields is the read order; alive comes first.
var snapshotFields = []Field{FieldAlive, FieldMissCount, FieldCombo, FieldMaxCombo, FieldMods, FieldStatus}

// Sampler is a dumb reader: one Snapshot per call, no state, no retries.
type Sampler struct {
	src MemorySource
}

// New creates a sampler over src.
func New(src MemorySource) (*Sampler, error) {
	if src == nil {
		return nil, errors.New("sampler: memory source required")
	}
	return &Sampler{src: src}, nil
}

// Sample performs exactly one read cycle.
// All-or-nothing: any failed read yields a dead Snapshot instead of an error.
func (s *Sampler) Sample() Snapshot {
	var vals [FieldStatus + 1]uint32

	if bs, ok := s.src.(BlockSource); ok {
		got, err := bs.ReadFields(snapshotFields)
		if err != nil || len(got) != len(snapshotFields) {
			return Snapshot{}
		}
		for i, f := range snapshotFields {
			vals[f] = got[i]
		}
	} else {
		for _, f := range snapshotFields {
			v, err := s.src.ReadField(f)
			if err != nil {
				return Snapshot{}
			}
			vals[f] = v
		}
	}

	if vals[FieldAlive] == 0 {
		return Snapshot{}
	}

	// Commit only if all reads succeeded
	return Snapshot{
		MissCount:    clamp16(vals[FieldMissCount]),
		Combo:        clamp16(vals[FieldCombo]),
		MaxCombo:     clamp16(vals[FieldMaxCombo]),
		Mods:         vals[FieldMods],
		Status:       StatusFromRaw(vals[FieldStatus]),
		ProcessAlive: true,
	}
}

func clamp16(v uint32) uint16 {
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
