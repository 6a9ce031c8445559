// Package command maps free-text commands from the voice pipeline and the
// web dashboard onto the gait engine's behavior verbs. Keyword matches are
// handled directly; anything else is forwarded to the reasoning service
// when one is configured.
package command

import (
	"context"
	"errors"
	"strings"

	"github.com/heyspider/go-spider/internal/log"
	"github.com/heyspider/go-spider/pkg/status"
	"github.com/heyspider/go-spider/pkg/thinking"
)

var (
	// ErrEmpty is returned for blank command text.
	ErrEmpty = errors.New("command: empty command")

	// ErrUnknown is returned when neither the keyword table nor the
	// reasoning service could map the text to a behavior.
	ErrUnknown = errors.New("command: unknown command")
)

// Default step counts when a command does not specify one.
const (
	DefaultWalkSteps = 4
	DefaultTurnSteps = 2
)

// Mover is the behavior surface the dispatcher drives. Every call blocks
// until the behavior completes and returns gait.ErrBusy when rejected.
type Mover interface {
	WalkForward(steps int) error
	TurnLeft(steps int) error
	TurnRight(steps int) error
	Dance() error
	Wave() error
}

// Reasoner turns free text into a structured action. *thinking.Client
// satisfies it; it is an interface so tests can stub the remote service.
type Reasoner interface {
	ProcessCommand(ctx context.Context, command string) (thinking.Reply, error)
}

// Dispatcher routes command text to behaviors.
type Dispatcher struct {
	mover    Mover
	reasoner Reasoner // nil when thinking is disabled
	sink     status.Sink
}

// New creates a dispatcher. reasoner may be nil.
func New(mover Mover, reasoner Reasoner, sink status.Sink) *Dispatcher {
	if sink == nil {
		sink = status.NopSink{}
	}
	return &Dispatcher{mover: mover, reasoner: reasoner, sink: sink}
}

// Handle executes one command and returns a human-readable outcome.
// Behavior errors (including gait.ErrBusy) pass through to the caller.
func (d *Dispatcher) Handle(ctx context.Context, text string) (string, error) {
	cmd := strings.ToLower(strings.TrimSpace(text))
	if cmd == "" {
		return "", ErrEmpty
	}
	d.sink.UpdateCommand(cmd)
	log.Info("processing command", "command", cmd)

	switch {
	case containsAny(cmd, "forward", "walk", "move"):
		return "Walking forward", d.mover.WalkForward(DefaultWalkSteps)
	case strings.Contains(cmd, "left"):
		return "Turning left", d.mover.TurnLeft(DefaultTurnSteps)
	case strings.Contains(cmd, "right"):
		return "Turning right", d.mover.TurnRight(DefaultTurnSteps)
	case strings.Contains(cmd, "dance"):
		return "Dancing!", d.mover.Dance()
	case strings.Contains(cmd, "wave"):
		return "Waving hello!", d.mover.Wave()
	case strings.Contains(cmd, "stop"):
		// No preemption: a running behavior finishes on its own. Stop only
		// reports the mode for the displays.
		d.sink.UpdateMode(status.ModeStopped)
		return "Stopped", nil
	}

	return d.reason(ctx, cmd)
}

// reason forwards unrecognized text to the reasoning service and executes
// the action it picks.
func (d *Dispatcher) reason(ctx context.Context, cmd string) (string, error) {
	if d.reasoner == nil {
		return "", ErrUnknown
	}

	d.sink.UpdateMode(status.ModeAnalyzing)
	reply, err := d.reasoner.ProcessCommand(ctx, cmd)
	if err != nil {
		d.sink.UpdateMode(status.ModeReady)
		log.Warn("reasoning failed", "command", cmd, "error", err)
		return "", ErrUnknown
	}

	msg := reply.Response
	if msg == "" {
		msg = "Command processed"
	}

	switch reply.Action {
	case "walk_forward":
		return msg, d.mover.WalkForward(reply.Steps(DefaultWalkSteps))
	case "turn_left":
		return msg, d.mover.TurnLeft(reply.Steps(DefaultTurnSteps))
	case "turn_right":
		return msg, d.mover.TurnRight(reply.Steps(DefaultTurnSteps))
	case "dance":
		return msg, d.mover.Dance()
	case "wave":
		return msg, d.mover.Wave()
	case "stop":
		d.sink.UpdateMode(status.ModeStopped)
		return msg, nil
	default:
		d.sink.UpdateMode(status.ModeReady)
		return msg, ErrUnknown
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
