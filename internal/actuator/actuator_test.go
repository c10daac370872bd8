// internal/actuator/actuator_test.go
package actuator

import (
	"math"
	"testing"
)

func TestCheckIntensity(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1} {
		if err := CheckIntensity(v); err != nil {
			t.Fatalf("intensity %v: unexpected error: %v", v, err)
		}
	}
	for _, v := range []float64{-0.01, 1.01, math.NaN()} {
		if err := CheckIntensity(v); err == nil {
			t.Fatalf("intensity %v: expected error, got nil", v)
		}
	}
}

func TestScaleIntensity(t *testing.T) {
	cases := map[float64]uint16{0: 0, 1: 0xFFFF, 0.5: 0x8000}
	for in, want := range cases {
		if got := ScaleIntensity(in); got != want {
			t.Fatalf("scale %v: got=%d want=%d", in, got, want)
		}
	}
}
