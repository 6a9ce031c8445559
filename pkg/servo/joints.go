package servo

import "fmt"

// Joint identifies one servo-driven degree of freedom by leg number and
// segment, e.g. "leg1_shoulder".
type Joint string

// Segment is the part of a leg a joint drives.
type Segment string

const (
	Shoulder Segment = "shoulder"
	Elbow    Segment = "elbow"
	Foot     Segment = "foot"
)

// NumLegs is the number of legs on the frame.
const NumLegs = 4

// NeutralAngle is the angle every joint is driven to at startup and
// between gait steps.
const NeutralAngle = 90

// channels maps each joint to its PCA9685 channel. The assignment is fixed
// by the wiring harness: three consecutive channels per leg.
var channels = map[Joint]int{
	"leg1_shoulder": 0, "leg1_elbow": 1, "leg1_foot": 2,
	"leg2_shoulder": 3, "leg2_elbow": 4, "leg2_foot": 5,
	"leg3_shoulder": 6, "leg3_elbow": 7, "leg3_foot": 8,
	"leg4_shoulder": 9, "leg4_elbow": 10, "leg4_foot": 11,
}

// JointFor returns the joint for a leg number (1-based) and segment.
func JointFor(leg int, seg Segment) Joint {
	return Joint(fmt.Sprintf("leg%d_%s", leg, seg))
}

// Channel returns the bus channel for a joint.
func (j Joint) Channel() (int, error) {
	ch, ok := channels[j]
	if !ok {
		return 0, fmt.Errorf("servo: %w: %s", ErrUnknownJoint, j)
	}
	return ch, nil
}

// Valid reports whether j names one of the twelve wired joints.
func (j Joint) Valid() bool {
	_, ok := channels[j]
	return ok
}

// AllJoints returns the twelve joints in channel order.
func AllJoints() []Joint {
	joints := make([]Joint, 0, len(channels))
	for leg := 1; leg <= NumLegs; leg++ {
		for _, seg := range []Segment{Shoulder, Elbow, Foot} {
			joints = append(joints, JointFor(leg, seg))
		}
	}
	return joints
}
