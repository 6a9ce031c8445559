package gait

import (
	"sync"
	"testing"

	"github.com/heyspider/go-spider/pkg/servo"
)

// recordingBus captures every command for inspection.
type recordingBus struct {
	mu       sync.Mutex
	commands map[int][]int // channel -> angles in order
}

func newRecordingBus() *recordingBus {
	return &recordingBus{commands: make(map[int][]int)}
}

func (b *recordingBus) SetAngle(channel, angle int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands[channel] = append(b.commands[channel], angle)
	return nil
}

func (b *recordingBus) count(channel int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.commands[channel])
}

func (b *recordingBus) last(channel int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	angles := b.commands[channel]
	if len(angles) == 0 {
		return -1
	}
	return angles[len(angles)-1]
}

func newTestController(bus servo.Bus) *Controller {
	c := New(bus, nil)
	c.SetTiming(Timing{}) // no sleeps in tests
	return c
}

func TestMoveJointReachesTarget(t *testing.T) {
	bus := newRecordingBus()
	c := newTestController(bus)

	if err := c.MoveJoint("leg1_shoulder", 70, 0); err != nil {
		t.Fatalf("MoveJoint failed: %v", err)
	}
	if got := c.JointAngle("leg1_shoulder"); got != 70 {
		t.Errorf("state angle: got %d, want 70", got)
	}
	// 90 -> 70 is 20 one-degree steps.
	if got := bus.count(0); got != 20 {
		t.Errorf("command count: got %d, want 20", got)
	}
	if got := bus.last(0); got != 70 {
		t.Errorf("last commanded angle: got %d, want 70", got)
	}
}

func TestMoveJointIdempotent(t *testing.T) {
	bus := newRecordingBus()
	c := newTestController(bus)

	c.MoveJoint("leg2_elbow", 120, 0)
	before := bus.count(4)

	// Second call with the same target issues a single no-op command.
	c.MoveJoint("leg2_elbow", 120, 0)
	if got := bus.count(4); got != before+1 {
		t.Errorf("commands after repeat: got %d, want %d", got, before+1)
	}
	if got := c.JointAngle("leg2_elbow"); got != 120 {
		t.Errorf("state angle: got %d, want 120", got)
	}
}

func TestMoveJointClampsTarget(t *testing.T) {
	bus := newRecordingBus()
	c := newTestController(bus)

	c.MoveJoint("leg1_foot", 200, 0)
	if got := c.JointAngle("leg1_foot"); got != 180 {
		t.Errorf("over-range: got %d, want 180", got)
	}

	c.MoveJoint("leg1_foot", -10, 0)
	if got := c.JointAngle("leg1_foot"); got != 0 {
		t.Errorf("under-range: got %d, want 0", got)
	}

	// The bus never saw anything outside [0,180].
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for _, angle := range bus.commands[2] {
		if angle < 0 || angle > 180 {
			t.Errorf("bus commanded out-of-range angle %d", angle)
		}
	}
}

func TestMoveJointUnknownJoint(t *testing.T) {
	c := newTestController(newRecordingBus())
	if err := c.MoveJoint("leg7_knee", 90, 0); err == nil {
		t.Error("expected error for unknown joint")
	}
}

func TestApplyPoseJoinsAllSweeps(t *testing.T) {
	bus := newRecordingBus()
	c := newTestController(bus)

	c.ApplyPose(Pose{
		"leg1_shoulder": 70,
		"leg2_shoulder": 110,
	}, 0)

	// Both joints must have fully settled by the time ApplyPose returns.
	if got := c.JointAngle("leg1_shoulder"); got != 70 {
		t.Errorf("leg1_shoulder: got %d, want 70", got)
	}
	if got := c.JointAngle("leg2_shoulder"); got != 110 {
		t.Errorf("leg2_shoulder: got %d, want 110", got)
	}
	if got := bus.count(0); got != 20 {
		t.Errorf("leg1_shoulder commands: got %d, want 20", got)
	}
	if got := bus.count(3); got != 20 {
		t.Errorf("leg2_shoulder commands: got %d, want 20", got)
	}
}

func TestNeutralReturnsEveryJoint(t *testing.T) {
	c := newTestController(newRecordingBus())

	c.ApplyPose(Pose{"leg1_foot": 45, "leg3_elbow": 135}, 0)
	c.Neutral()

	for j, angle := range c.JointAngles() {
		if angle != servo.NeutralAngle {
			t.Errorf("joint %s: got %d, want %d", j, angle, servo.NeutralAngle)
		}
	}
}

// failingBus errors on every write; sweeps must still complete.
type failingBus struct{}

func (failingBus) SetAngle(int, int) error { return servo.ErrBusUnavailable }

func TestSweepSurvivesBusFailures(t *testing.T) {
	c := newTestController(failingBus{})

	if err := c.MoveJoint("leg1_shoulder", 120, 0); err != nil {
		t.Fatalf("MoveJoint returned error despite containment: %v", err)
	}
	if got := c.JointAngle("leg1_shoulder"); got != 120 {
		t.Errorf("state angle: got %d, want 120", got)
	}
}
