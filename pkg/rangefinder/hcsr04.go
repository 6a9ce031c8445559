package rangefinder

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// echoTimeout bounds the wait for each echo edge. At 400cm the round trip
// is ~23ms, so 50ms comfortably covers the full range.
const echoTimeout = 50 * time.Millisecond

// speed of sound at room temperature, cm/s
const soundSpeedCmPerSec = 34300.0

// HCSR04 reads an HC-SR04 ultrasonic sensor through two GPIO pins.
type HCSR04 struct {
	trigger gpio.PinOut
	echo    gpio.PinIn
}

// NewHCSR04 opens the trigger and echo pins by name (e.g. "GPIO23",
// "GPIO24"). Construction fails when either pin is missing so the caller
// can fall back to a DetachedSensor.
func NewHCSR04(triggerPin, echoPin string) (*HCSR04, error) {
	trig := gpioreg.ByName(triggerPin)
	if trig == nil {
		return nil, fmt.Errorf("%w: no pin %s", ErrSensorUnavailable, triggerPin)
	}
	echo := gpioreg.ByName(echoPin)
	if echo == nil {
		return nil, fmt.Errorf("%w: no pin %s", ErrSensorUnavailable, echoPin)
	}
	if err := echo.In(gpio.PullDown, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("rangefinder: configure echo pin: %w", err)
	}
	if err := trig.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("rangefinder: configure trigger pin: %w", err)
	}
	return &HCSR04{trigger: trig, echo: echo}, nil
}

// ReadDistance fires a 10us trigger pulse and times the echo, returning the
// distance in centimeters.
func (s *HCSR04) ReadDistance() (float64, error) {
	if err := s.trigger.Out(gpio.High); err != nil {
		return 0, fmt.Errorf("rangefinder: trigger: %w", err)
	}
	time.Sleep(10 * time.Microsecond)
	if err := s.trigger.Out(gpio.Low); err != nil {
		return 0, fmt.Errorf("rangefinder: trigger: %w", err)
	}

	if !s.echo.WaitForEdge(echoTimeout) {
		return 0, ErrEchoTimeout
	}
	start := time.Now()
	if !s.echo.WaitForEdge(echoTimeout) {
		return 0, ErrEchoTimeout
	}
	elapsed := time.Since(start)

	// Sound travels out and back, so halve the round trip.
	return elapsed.Seconds() * soundSpeedCmPerSec / 2, nil
}
