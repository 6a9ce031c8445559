// Package servo provides the actuator bus abstraction for the spider's
// twelve joints: the 16-channel PCA9685 servo board in attached mode, a
// no-op bus in detached mode, and the joint state table recording the last
// commanded angle of every joint.
package servo

import (
	"github.com/heyspider/go-spider/internal/log"
)

// NumChannels is the number of angle channels on the bus.
const NumChannels = 16

// Angle limits accepted by the bus. Callers clamp before commanding; the
// bus only rejects channels, never angles.
const (
	MinAngle = 0
	MaxAngle = 180
)

// Bus commands servo angles on numbered channels.
//
// Implementations must tolerate concurrent calls on distinct channels: the
// pose engine drives one goroutine per joint.
type Bus interface {
	// SetAngle commands the servo on the given channel to an angle in
	// degrees. The angle must already be within [MinAngle, MaxAngle].
	SetAngle(channel, angle int) error
}

// DetachedBus is the no-hardware bus: every command succeeds immediately.
// It keeps the whole controller runnable on a dev machine and is what the
// behavior tests drive.
type DetachedBus struct{}

// NewDetachedBus returns a bus that logs commands at debug level.
func NewDetachedBus() *DetachedBus {
	return &DetachedBus{}
}

// SetAngle validates the channel and drops the command.
func (b *DetachedBus) SetAngle(channel, angle int) error {
	if channel < 0 || channel >= NumChannels {
		return ErrChannelOutOfRange
	}
	log.Debug("detached servo command", "channel", channel, "angle", angle)
	return nil
}

// ClampAngle restricts an angle to the bus's valid range.
func ClampAngle(angle int) int {
	if angle < MinAngle {
		return MinAngle
	}
	if angle > MaxAngle {
		return MaxAngle
	}
	return angle
}
