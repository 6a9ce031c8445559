package gait

import (
	"github.com/heyspider/go-spider/internal/log"
	"github.com/heyspider/go-spider/pkg/servo"
	"github.com/heyspider/go-spider/pkg/status"
)

// Walk gait angles. The shoulder-advance clamp is deliberately narrower
// than the global [0,180] joint range: it only applies to the advance step
// of the walk gait, not as a joint limit.
const (
	footLiftAngle = 45
	footDownAngle = 90

	shoulderAdvanceDeg = 20
	walkShoulderMin    = 60
	walkShoulderMax    = 120
)

// Turn pose shoulder angles: legs on one diagonal rotate inward while the
// other diagonal rotates outward, twisting the body.
const (
	turnInAngle  = 70
	turnOutAngle = 110
)

// Dance elbow sequence, cycled danceCycles times with a return to neutral
// after each pose.
var danceMoves = []Pose{
	{"leg1_elbow": 45, "leg3_elbow": 45},
	{"leg2_elbow": 45, "leg4_elbow": 45},
	{"leg1_elbow": 135, "leg3_elbow": 135},
	{"leg2_elbow": 135, "leg4_elbow": 135},
}

const danceCycles = 3

// Wave elbow strokes for the two front legs.
const (
	waveLowAngle  = 45
	waveHighAngle = 135
	waveCount     = 3
)

// WalkForward walks the given number of steps using the alternating
// diagonal gait: lift one diagonal pair of feet, advance the opposite
// pair's shoulders, lower the feet, then mirror.
func (c *Controller) WalkForward(steps int) error {
	return c.run(status.ModeWalking, func() error {
		log.Info("walking forward", "steps", steps)
		for i := 0; i < steps; i++ {
			c.walkPhase(1, 4, 2, 3)
			sleep(c.timing.PhasePause)
			c.walkPhase(2, 3, 1, 4)
			sleep(c.timing.PhasePause)
		}
		return nil
	})
}

// walkPhase lifts the feet of legs liftA/liftB, advances the shoulders of
// legs moveA/moveB, then lowers the lifted feet.
func (c *Controller) walkPhase(liftA, liftB, moveA, moveB int) {
	c.ApplyPose(Pose{
		servo.JointFor(liftA, servo.Foot): footLiftAngle,
		servo.JointFor(liftB, servo.Foot): footLiftAngle,
	}, c.timing.StepSweep)

	c.ApplyPose(c.advancePose(moveA, moveB), c.timing.StepSweep)

	c.ApplyPose(Pose{
		servo.JointFor(liftA, servo.Foot): footDownAngle,
		servo.JointFor(liftB, servo.Foot): footDownAngle,
	}, c.timing.StepSweep)
}

// advancePose swings the shoulders of the given legs forward by a fixed
// offset, clamped to the walk gait's narrow shoulder band.
func (c *Controller) advancePose(legs ...int) Pose {
	pose := make(Pose, len(legs))
	for _, leg := range legs {
		j := servo.JointFor(leg, servo.Shoulder)
		target := c.state.Get(j) + shoulderAdvanceDeg
		if target < walkShoulderMin {
			target = walkShoulderMin
		}
		if target > walkShoulderMax {
			target = walkShoulderMax
		}
		pose[j] = target
	}
	return pose
}

// TurnLeft rotates the body left the given number of steps. Every step ends
// with a return to neutral, so the frame always finishes square.
func (c *Controller) TurnLeft(steps int) error {
	return c.turn(steps, Pose{
		"leg1_shoulder": turnInAngle, "leg2_shoulder": turnOutAngle,
		"leg3_shoulder": turnInAngle, "leg4_shoulder": turnOutAngle,
	}, "left")
}

// TurnRight rotates the body right the given number of steps.
func (c *Controller) TurnRight(steps int) error {
	return c.turn(steps, Pose{
		"leg1_shoulder": turnOutAngle, "leg2_shoulder": turnInAngle,
		"leg3_shoulder": turnOutAngle, "leg4_shoulder": turnInAngle,
	}, "right")
}

func (c *Controller) turn(steps int, pose Pose, direction string) error {
	return c.run(status.ModeTurning, func() error {
		log.Info("turning", "direction", direction, "steps", steps)
		for i := 0; i < steps; i++ {
			c.ApplyPose(pose, c.timing.PoseSweep)
			sleep(c.timing.TurnHold)
			c.Neutral()
			sleep(c.timing.TurnSettle)
		}
		return nil
	})
}

// Dance cycles the elbow pose sequence, returning to neutral between poses.
func (c *Controller) Dance() error {
	return c.run(status.ModeDancing, func() error {
		log.Info("dancing")
		for cycle := 0; cycle < danceCycles; cycle++ {
			for _, move := range danceMoves {
				c.ApplyPose(move, c.timing.PoseSweep)
				sleep(c.timing.DanceHold)
				c.Neutral()
				sleep(c.timing.DanceSettle)
			}
		}
		return nil
	})
}

// Wave alternates the front-leg elbows between two angles. The two joints
// move sequentially with their own sweep delays rather than as a pose; only
// two joints are involved and the stagger is part of the gesture.
func (c *Controller) Wave() error {
	return c.run(status.ModeWaving, func() error {
		log.Info("waving")
		for i := 0; i < waveCount; i++ {
			if err := c.MoveJoint("leg1_elbow", waveLowAngle, c.timing.Sweep); err != nil {
				return err
			}
			if err := c.MoveJoint("leg2_elbow", waveLowAngle, c.timing.Sweep); err != nil {
				return err
			}
			sleep(c.timing.WavePause)
			if err := c.MoveJoint("leg1_elbow", waveHighAngle, c.timing.Sweep); err != nil {
				return err
			}
			if err := c.MoveJoint("leg2_elbow", waveHighAngle, c.timing.Sweep); err != nil {
				return err
			}
			sleep(c.timing.WavePause)
		}
		c.Neutral()
		return nil
	})
}
