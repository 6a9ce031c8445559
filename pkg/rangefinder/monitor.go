package rangefinder

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/heyspider/go-spider/internal/log"
	"github.com/heyspider/go-spider/pkg/status"
)

// Sampling cadence of the monitor loop.
const (
	SampleInterval = 500 * time.Millisecond
	FailureBackoff = 2 * time.Second
)

// Monitor runs the sampling loop: read the sensor, substitute the max-range
// sentinel for invalid readings, publish the value, sleep, repeat. It keeps
// sampling while gaits execute and never terminates on a read failure.
type Monitor struct {
	sensor   Sensor
	sink     status.Sink
	interval time.Duration
	backoff  time.Duration

	// last holds the most recent reading as float64 bits,
	// single-writer (the loop) / multi-reader.
	last atomic.Uint64
}

// NewMonitor creates a monitor. A nil sensor gets the detached placeholder;
// a nil sink discards notifications.
func NewMonitor(sensor Sensor, sink status.Sink) *Monitor {
	if sensor == nil {
		sensor = DetachedSensor{}
	}
	if sink == nil {
		sink = status.NopSink{}
	}
	m := &Monitor{
		sensor:   sensor,
		sink:     sink,
		interval: SampleInterval,
		backoff:  FailureBackoff,
	}
	m.last.Store(math.Float64bits(MaxRangeCm))
	return m
}

// SetCadence overrides the sample interval and failure backoff.
// Call before Run.
func (m *Monitor) SetCadence(interval, backoff time.Duration) {
	m.interval = interval
	m.backoff = backoff
}

// Last returns the most recently published distance in centimeters.
func (m *Monitor) Last() float64 {
	return math.Float64frombits(m.last.Load())
}

// Run samples until the context is canceled. It blocks; start it in its
// own goroutine.
func (m *Monitor) Run(ctx context.Context) {
	log.Info("range monitor started", "interval", m.interval)
	for {
		wait := m.interval
		if err := m.Sample(); err != nil {
			log.Warn("distance read failed", "error", err)
			wait = m.backoff
		}
		select {
		case <-ctx.Done():
			log.Info("range monitor stopped")
			return
		case <-time.After(wait):
		}
	}
}

// Sample takes one reading and publishes it. Invalid and out-of-range
// readings are published as the max-range sentinel; a sensor error is also
// published as the sentinel and returned so Run can back off.
func (m *Monitor) Sample() error {
	cm, err := m.sensor.ReadDistance()
	if err != nil || math.IsNaN(cm) || cm < 0 || cm > MaxRangeCm {
		cm = MaxRangeCm
	}
	m.last.Store(math.Float64bits(cm))
	m.sink.UpdateDistance(cm)
	return err
}
