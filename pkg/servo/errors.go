package servo

import "errors"

var (
	// ErrBusUnavailable is returned when commands are issued before the
	// actuator bus has been initialized.
	ErrBusUnavailable = errors.New("actuator bus unavailable")

	// ErrChannelOutOfRange is returned for channels outside 0..15.
	ErrChannelOutOfRange = errors.New("channel out of range")

	// ErrUnknownJoint is returned for joint names outside the wired set.
	ErrUnknownJoint = errors.New("unknown joint")
)
