// internal/sampler/sampler_test.go
package sampler

import (
	"errors"
	"testing"
)

type fakeSource struct {
	vals   map[Field]uint32
	failOn Field
	fail   bool
	reads  int
}

func (f *fakeSource) ReadField(field Field) (uint32, error) {
	f.reads++
	if f.fail && field == f.failOn {
		return 0, errors.New("read failed")
	}
	if field == FieldAlive && f.vals[FieldAlive] == 0 {
		return 0, ErrProcessNotFound
	}
	return f.vals[field], nil
}

func liveSource() *fakeSource {
	return &fakeSource{vals: map[Field]uint32{
		FieldAlive:     1,
		FieldMissCount: 4,
		FieldCombo:     88,
		FieldMaxCombo:  120,
		FieldMods:      8 | 64,
		FieldStatus:    2,
	}}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestSample_Success(t *testing.T) {
	s, err := New(liveSource())
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	snap := s.Sample()
	want := Snapshot{
		MissCount:    4,
		Combo:        88,
		MaxCombo:     120,
		Mods:         72,
		Status:       StatusPlaying,
		ProcessAlive: true,
	}
	if snap != want {
		t.Fatalf("snapshot mismatch: got=%+v want=%+v", snap, want)
	}
}

func TestSample_ProcessNotFound(t *testing.T) {
	src := liveSource()
	src.vals[FieldAlive] = 0

	s, _ := New(src)
	snap := s.Sample()

	if snap != (Snapshot{}) {
		t.Fatalf("expected dead zero snapshot, got %+v", snap)
	}
	if src.reads != 1 {
		t.Fatalf("expected no counter reads after missing process, got %d reads", src.reads)
	}
}

func TestSample_FieldFailureIsAbsence(t *testing.T) {
	for _, f := range []Field{FieldAlive, FieldMissCount, FieldCombo, FieldMaxCombo, FieldMods, FieldStatus} {
		src := liveSource()
		src.fail = true
		src.failOn = f

		s, _ := New(src)
		snap := s.Sample()
		if snap.ProcessAlive {
			t.Fatalf("%s failure: expected ProcessAlive=false", f)
		}
		if snap != (Snapshot{}) {
			t.Fatalf("%s failure: dead snapshot carries data: %+v", f, snap)
		}
	}
}

func TestSample_ClampsWideCounters(t *testing.T) {
	src := liveSource()
	src.vals[FieldCombo] = 70000

	s, _ := New(src)
	if got := s.Sample().Combo; got != 0xFFFF {
		t.Fatalf("combo: got=%d want=%d", got, 0xFFFF)
	}
}

// fakeBlockSource serves whole snapshots and counts both read paths.
type fakeBlockSource struct {
	fakeSource
	blockReads int
	blockErr   error
}

func (f *fakeBlockSource) ReadFields(fields []Field) ([]uint32, error) {
	f.blockReads++
	if f.blockErr != nil {
		return nil, f.blockErr
	}
	out := make([]uint32, len(fields))
	for i, field := range fields {
		out[i] = f.vals[field]
	}
	return out, nil
}

func TestSample_BlockSourceReadsOnce(t *testing.T) {
	src := &fakeBlockSource{fakeSource: *liveSource()}

	s, _ := New(src)
	snap := s.Sample()

	if src.blockReads != 1 || src.reads != 0 {
		t.Fatalf("expected one block read, got block=%d field=%d", src.blockReads, src.reads)
	}
	if !snap.ProcessAlive || snap.MissCount != 4 || snap.Combo != 88 || snap.Mods != 72 {
		t.Fatalf("snapshot mismatch: %+v", snap)
	}
}

func TestSample_BlockSourceAbsence(t *testing.T) {
	dead := &fakeBlockSource{fakeSource: *liveSource()}
	dead.vals[FieldAlive] = 0

	s, _ := New(dead)
	if snap := s.Sample(); snap != (Snapshot{}) {
		t.Fatalf("alive=0: expected dead snapshot, got %+v", snap)
	}

	broken := &fakeBlockSource{fakeSource: *liveSource(), blockErr: errors.New("timeout")}
	s, _ = New(broken)
	if snap := s.Sample(); snap != (Snapshot{}) {
		t.Fatalf("block error: expected dead snapshot, got %+v", snap)
	}
}

func TestStatusFromRaw(t *testing.T) {
	cases := map[uint32]PlayStatus{
		2:      StatusPlaying,
		5:      StatusSongSelect,
		0:      StatusOther,
		7:      StatusOther,
		0xFFFF: StatusUnknown,
	}
	for raw, want := range cases {
		if got := StatusFromRaw(raw); got != want {
			t.Fatalf("raw %d: got=%s want=%s", raw, got, want)
		}
	}
}
