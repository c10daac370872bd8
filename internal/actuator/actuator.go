// internal/actuator/actuator.go
package actuator

import (
	"context"
	"fmt"
	"math"
)

// Actuator is the device command contract the dispatcher uses.
// The device handle is owned by the adapter; callers pass its index.
// Vibrate with intensity 0 stops the device and is idempotent.
type Actuator interface {
	Vibrate(ctx context.Context, device uint32, intensity float64) error
}

// CheckIntensity rejects intensities outside [0,1] before they reach a device.
func CheckIntensity(intensity float64) error {
	if math.IsNaN(intensity) || intensity < 0 || intensity > 1 {
		return fmt.Errorf("actuator: intensity %v outside [0,1]", intensity)
	}
	return nil
}

// ScaleIntensity maps [0,1] onto the full 16-bit register range.
func ScaleIntensity(intensity float64) uint16 {
	return uint16(math.Round(intensity * 0xFFFF))
}
