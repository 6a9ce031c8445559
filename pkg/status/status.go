// Package status defines the one-way notification contract between the
// locomotion core and its consumers (OLED display, web dashboard). The core
// only pushes updates through a Sink; nothing is ever read back.
package status

// Mode is the externally reported controller state.
type Mode string

const (
	ModeStartup   Mode = "STARTUP"
	ModeReady     Mode = "READY"
	ModeWalking   Mode = "WALKING"
	ModeTurning   Mode = "TURNING"
	ModeDancing   Mode = "DANCING"
	ModeWaving    Mode = "WAVING"
	ModeAnalyzing Mode = "ANALYZING"
	ModeListening Mode = "LISTENING"
	ModeStopped   Mode = "STOPPED"
	ModeError     Mode = "ERROR"
	ModeShutdown  Mode = "SHUTDOWN"
)

// Sink receives state notifications from the controller.
// Implementations must be safe for concurrent use: the gait engine and the
// range monitor push from independent goroutines.
type Sink interface {
	// UpdateMode is called on every controller state transition.
	UpdateMode(mode Mode)

	// UpdateDistance is called at the range monitor's cadence with the
	// latest reading in centimeters.
	UpdateDistance(cm float64)

	// UpdateCommand is called with the raw text of each accepted command.
	UpdateCommand(text string)
}

// NopSink discards all notifications.
type NopSink struct{}

func (NopSink) UpdateMode(Mode)        {}
func (NopSink) UpdateDistance(float64) {}
func (NopSink) UpdateCommand(string)   {}

// MultiSink fans notifications out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) UpdateMode(mode Mode) {
	for _, s := range m {
		s.UpdateMode(mode)
	}
}

func (m MultiSink) UpdateDistance(cm float64) {
	for _, s := range m {
		s.UpdateDistance(cm)
	}
}

func (m MultiSink) UpdateCommand(text string) {
	for _, s := range m {
		s.UpdateCommand(text)
	}
}
