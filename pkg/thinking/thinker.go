package thinking

import (
	"context"
	"sync"
	"time"

	"github.com/heyspider/go-spider/internal/log"
)

// ThoughtInterval is how often the ambient thought loop asks for a new one.
const ThoughtInterval = 15 * time.Second

// Thinker periodically generates ambient thoughts from the robot's current
// context. It only polls the core's query surface; it never drives control.
type Thinker struct {
	client   *Client
	distance func() float64
	busy     func() bool
	interval time.Duration

	mu      sync.RWMutex
	thought string
}

// NewThinker creates the ambient thought loop. distance and busy are the
// core's polling accessors.
func NewThinker(client *Client, distance func() float64, busy func() bool) *Thinker {
	return &Thinker{
		client:   client,
		distance: distance,
		busy:     busy,
		interval: ThoughtInterval,
		thought:  "Waking up...",
	}
}

// SetInterval overrides the thought cadence. Call before Run.
func (t *Thinker) SetInterval(d time.Duration) { t.interval = d }

// CurrentThought returns the latest generated thought.
func (t *Thinker) CurrentThought() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.thought
}

// Run generates thoughts until the context is canceled. It blocks; start
// it in its own goroutine.
func (t *Thinker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(t.interval):
		}

		thought, err := t.client.Thought(ctx, t.distance(), t.busy())
		if err != nil {
			log.Warn("thought generation failed", "error", err)
			thought = "Thinking quietly..."
		}
		t.mu.Lock()
		t.thought = thought
		t.mu.Unlock()
		log.Debug("new thought", "thought", thought)
	}
}
