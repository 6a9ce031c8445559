// Package gait turns named behavior requests (walk, turn, dance, wave) into
// time-sequenced servo sweeps. It owns the motion primitive engine (single
// smooth sweep), the concurrent pose engine (fork-join movement of a joint
// set), and the exclusive busy flag that keeps behaviors from interleaving.
package gait

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/heyspider/go-spider/internal/log"
	"github.com/heyspider/go-spider/pkg/servo"
	"github.com/heyspider/go-spider/pkg/status"
)

// Pose maps a subset of joints to target angles, applied as one logical
// concurrent movement. Poses are built per gait phase and discarded.
type Pose map[servo.Joint]int

// Timing collects every delay used by the gait sequences. Tests zero it out
// so behaviors complete instantly; the defaults give the stock cadence.
type Timing struct {
	Sweep       time.Duration // single-joint sweep budget (wave)
	PoseSweep   time.Duration // concurrent pose sweep budget
	StepSweep   time.Duration // lift/advance/lower sweeps during walk
	PhasePause  time.Duration // settle between walk phases
	TurnHold    time.Duration // hold the turn pose
	TurnSettle  time.Duration // settle after return-to-neutral
	DanceHold   time.Duration // hold each dance pose
	DanceSettle time.Duration // settle after each dance neutral
	WavePause   time.Duration // pause between wave strokes
	StartupGap  time.Duration // gap between joints during startup
}

// DefaultTiming returns the stock cadence.
func DefaultTiming() Timing {
	return Timing{
		Sweep:       100 * time.Millisecond,
		PoseSweep:   20 * time.Millisecond,
		StepSweep:   50 * time.Millisecond,
		PhasePause:  300 * time.Millisecond,
		TurnHold:    500 * time.Millisecond,
		TurnSettle:  300 * time.Millisecond,
		DanceHold:   400 * time.Millisecond,
		DanceSettle: 200 * time.Millisecond,
		WavePause:   300 * time.Millisecond,
		StartupGap:  100 * time.Millisecond,
	}
}

// Controller is the gait engine. All public behaviors block until the full
// sequence completes and are mutually exclusive through the busy flag; a
// request while busy returns ErrBusy immediately.
type Controller struct {
	bus    servo.Bus
	state  *servo.StateTable
	sink   status.Sink
	timing Timing

	busy atomic.Bool
}

// New creates a controller with every joint assumed at neutral.
// Call Startup to physically drive the frame there.
func New(bus servo.Bus, sink status.Sink) *Controller {
	if sink == nil {
		sink = status.NopSink{}
	}
	return &Controller{
		bus:    bus,
		state:  servo.NewStateTable(),
		sink:   sink,
		timing: DefaultTiming(),
	}
}

// SetTiming replaces the gait cadence. Call before starting behaviors.
func (c *Controller) SetTiming(t Timing) {
	c.timing = t
}

// Busy reports whether a behavior is currently executing.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// JointAngles returns a snapshot of the last commanded angle of every joint.
func (c *Controller) JointAngles() map[servo.Joint]int {
	return c.state.Snapshot()
}

// JointAngle returns the last commanded angle of one joint.
func (c *Controller) JointAngle(j servo.Joint) int {
	return c.state.Get(j)
}

// MoveJoint sweeps one joint from its current angle to target, one degree
// at a time. The per-step delay is scaled inversely to the sweep distance
// so short and long sweeps take comparable wall time. The target is clamped
// to [0,180] before anything moves, and the final angle is recorded in the
// state table. Calling twice with the same target issues a single no-op
// command the second time.
//
// A failed servo write skips that step and continues; the sweep is never
// aborted mid-flight.
func (c *Controller) MoveJoint(j servo.Joint, target int, stepDelay time.Duration) error {
	ch, err := j.Channel()
	if err != nil {
		return err
	}
	target = servo.ClampAngle(target)

	cur := c.state.Get(j)
	if cur == target {
		if err := c.bus.SetAngle(ch, target); err != nil {
			log.Warn("servo command failed", "joint", j, "angle", target, "error", err)
		}
		return nil
	}

	total := cur - target
	dir := -1
	if target > cur {
		total = target - cur
		dir = 1
	}
	perStep := stepDelay / time.Duration(maxInt(1, total/10))

	for pos := cur + dir; ; pos += dir {
		if err := c.bus.SetAngle(ch, pos); err != nil {
			log.Warn("servo write failed, skipping step", "joint", j, "angle", pos, "error", err)
		}
		if pos == target {
			break
		}
		sleep(perStep)
	}

	c.state.Set(j, target)
	return nil
}

// ApplyPose sweeps every joint in the pose concurrently and returns once
// all sweeps have settled. The longest sweep determines total latency.
// Concurrent calls must target disjoint joint sets; the busy flag serializes
// behaviors so gait sequences never overlap.
func (c *Controller) ApplyPose(pose Pose, stepDelay time.Duration) {
	var wg sync.WaitGroup
	for j, angle := range pose {
		wg.Add(1)
		go func(j servo.Joint, angle int) {
			defer wg.Done()
			if err := c.MoveJoint(j, angle, stepDelay); err != nil {
				log.Warn("pose sweep failed", "joint", j, "error", err)
			}
		}(j, angle)
	}
	wg.Wait()
}

// Startup drives all twelve joints to neutral, one at a time with a short
// gap, and reports READY. Called once at controller initialization.
func (c *Controller) Startup() {
	c.sink.UpdateMode(status.ModeStartup)
	for _, j := range servo.AllJoints() {
		ch, _ := j.Channel()
		if err := c.bus.SetAngle(ch, servo.NeutralAngle); err != nil {
			log.Warn("startup servo command failed", "joint", j, "error", err)
		}
		c.state.Set(j, servo.NeutralAngle)
		sleep(c.timing.StartupGap)
	}
	c.sink.UpdateMode(status.ModeReady)
}

// Neutral concurrently returns every joint to 90 degrees.
func (c *Controller) Neutral() {
	pose := make(Pose, len(servo.AllJoints()))
	for _, j := range servo.AllJoints() {
		pose[j] = servo.NeutralAngle
	}
	c.ApplyPose(pose, c.timing.PoseSweep)
}

// run executes a behavior under the busy flag. The flag and READY mode are
// restored unconditionally, so a mid-sequence failure can never leave the
// controller stuck busy. Internal failures are contained: they surface as a
// transient ERROR mode, not as an error to the caller.
func (c *Controller) run(mode status.Mode, fn func() error) error {
	if !c.busy.CompareAndSwap(false, true) {
		log.Debug("behavior rejected, already moving", "requested", string(mode))
		return ErrBusy
	}
	c.sink.UpdateMode(mode)
	defer func() {
		if r := recover(); r != nil {
			log.Error("behavior panicked", "mode", string(mode), "panic", r)
			c.sink.UpdateMode(status.ModeError)
		}
		c.busy.Store(false)
		c.sink.UpdateMode(status.ModeReady)
	}()

	if err := fn(); err != nil {
		log.Error("behavior failed", "mode", string(mode), "error", err)
		c.sink.UpdateMode(status.ModeError)
	}
	return nil
}

func sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
