// internal/status/constants.go
package status

// Monitor Status Block layout constants.
// These values define the block layout and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of registers per monitored device.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotHealthCode holds the monitor health state.
const SlotHealthCode = 0

// SlotLastErrorCode holds the last error code.
const SlotLastErrorCode = 1

// SlotSecondsInError holds how long (in seconds) the monitor has been in error.
const SlotSecondsInError = 2

// SlotMissCount holds the miss counter of the current attempt.
const SlotMissCount = 3

// SlotSliderBreaks holds the session slider-break tally.
const SlotSliderBreaks = 4

// SlotDroppedActuations holds the number of requests evicted from a full queue.
const SlotDroppedActuations = 5

// ---- RESERVED RANGE ----

// Slots 6-10 are reserved for future use.
const SlotReservedStart = 6
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16

// ---- HEALTH CODES ----

// HealthUnknown represents the state before the first sample.
const HealthUnknown uint16 = 0

// HealthOK means the game process is attached.
const HealthOK uint16 = 1

// HealthError means the game process is missing.
const HealthError uint16 = 2

// ---- ERROR CODES ----

// ErrorCodeNone is written while healthy.
const ErrorCodeNone uint16 = 0

// ErrorCodeProcessMissing means the sampler found no game process.
const ErrorCodeProcessMissing uint16 = 1

// ErrorCodeActuation means the last device command failed.
const ErrorCodeActuation uint16 = 2
