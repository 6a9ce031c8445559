package rangefinder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/heyspider/go-spider/pkg/status"
)

// scriptedSensor replays a fixed sequence of readings; the last entry
// repeats forever.
type scriptedSensor struct {
	mu       sync.Mutex
	readings []scriptedReading
	i        int
}

type scriptedReading struct {
	cm  float64
	err error
}

func (s *scriptedSensor) ReadDistance() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.readings[s.i]
	if s.i < len(s.readings)-1 {
		s.i++
	}
	return r.cm, r.err
}

// collectingSink records published distances.
type collectingSink struct {
	status.NopSink
	mu        sync.Mutex
	distances []float64
}

func (s *collectingSink) UpdateDistance(cm float64) {
	s.mu.Lock()
	s.distances = append(s.distances, cm)
	s.mu.Unlock()
}

func (s *collectingSink) all() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]float64(nil), s.distances...)
}

func TestSampleSubstitutesSentinel(t *testing.T) {
	sensor := &scriptedSensor{readings: []scriptedReading{
		{cm: 512.0}, // beyond max range
		{cm: 42.0},
	}}
	sink := &collectingSink{}
	m := NewMonitor(sensor, sink)

	m.Sample()
	m.Sample()

	got := sink.all()
	if len(got) != 2 {
		t.Fatalf("published %d readings, want 2", len(got))
	}
	if got[0] != MaxRangeCm {
		t.Errorf("first reading: got %v, want sentinel %v", got[0], MaxRangeCm)
	}
	if got[1] != 42.0 {
		t.Errorf("second reading: got %v, want 42.0", got[1])
	}
	if m.Last() != 42.0 {
		t.Errorf("Last: got %v, want 42.0", m.Last())
	}
}

func TestSampleNegativeReading(t *testing.T) {
	sensor := &scriptedSensor{readings: []scriptedReading{{cm: -3.0}}}
	m := NewMonitor(sensor, nil)
	m.Sample()
	if m.Last() != MaxRangeCm {
		t.Errorf("Last: got %v, want sentinel", m.Last())
	}
}

func TestRunSurvivesReadFailures(t *testing.T) {
	sensor := &scriptedSensor{readings: []scriptedReading{
		{err: errors.New("no echo")},
		{cm: 42.0},
	}}
	sink := &collectingSink{}
	m := NewMonitor(sensor, sink)
	m.SetCadence(time.Millisecond, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	// Wait for the loop to get past the failed read and publish a valid
	// sample.
	deadline := time.After(time.Second)
	for m.Last() != 42.0 {
		select {
		case <-deadline:
			t.Fatal("monitor never recovered from read failure")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done

	got := sink.all()
	if len(got) < 2 {
		t.Fatalf("published %d readings, want at least 2", len(got))
	}
	if got[0] != MaxRangeCm {
		t.Errorf("failed read published %v, want sentinel", got[0])
	}
}

func TestDetachedSensorPlaceholder(t *testing.T) {
	m := NewMonitor(nil, nil)
	m.Sample()
	if m.Last() != DetachedDistanceCm {
		t.Errorf("Last: got %v, want %v", m.Last(), DetachedDistanceCm)
	}
}
