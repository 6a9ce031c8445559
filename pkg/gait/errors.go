package gait

import "errors"

var (
	// ErrBusy is returned when a behavior is requested while another one
	// is still executing. Requests are rejected, never queued.
	ErrBusy = errors.New("gait: already moving")
)
