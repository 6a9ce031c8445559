// Package rangefinder samples the forward distance sensor independently of
// gait execution and republishes the latest reading for any consumer.
package rangefinder

import "errors"

// MaxRangeCm is the sensor's maximum supported range. Readings beyond it,
// and failed reads, are reported as this sentinel instead of an error.
const MaxRangeCm = 400.0

// DetachedDistanceCm is the constant placeholder published when no sensor
// hardware is attached.
const DetachedDistanceCm = 50.0

var (
	// ErrSensorUnavailable is returned when the sensor hardware cannot be
	// opened at construction time.
	ErrSensorUnavailable = errors.New("rangefinder: sensor unavailable")

	// ErrEchoTimeout is returned when the echo pulse never arrives.
	ErrEchoTimeout = errors.New("rangefinder: echo timeout")
)

// Sensor reads one distance sample in centimeters.
type Sensor interface {
	ReadDistance() (float64, error)
}

// DetachedSensor is the no-hardware sensor: it always reads the placeholder
// distance, keeping the monitor loop and its external contract alive.
type DetachedSensor struct{}

func (DetachedSensor) ReadDistance() (float64, error) {
	return DetachedDistanceCm, nil
}
