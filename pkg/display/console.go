package display

import (
	"sync"

	"github.com/heyspider/go-spider/internal/log"
	"github.com/heyspider/go-spider/pkg/status"
)

// Console is the detached-mode status sink: mode transitions and commands
// are logged, distance only when it moves enough to matter.
type Console struct {
	mu       sync.Mutex
	lastMode status.Mode
	lastDist float64
}

// NewConsole returns a console sink.
func NewConsole() *Console {
	return &Console{}
}

// UpdateMode implements status.Sink.
func (c *Console) UpdateMode(mode status.Mode) {
	c.mu.Lock()
	changed := mode != c.lastMode
	c.lastMode = mode
	c.mu.Unlock()
	if changed {
		log.Info("mode", "mode", string(mode))
	}
}

// UpdateDistance implements status.Sink.
func (c *Console) UpdateDistance(cm float64) {
	c.mu.Lock()
	delta := cm - c.lastDist
	if delta < 0 {
		delta = -delta
	}
	changed := delta >= 1.0
	if changed {
		c.lastDist = cm
	}
	c.mu.Unlock()
	if changed {
		log.Debug("distance", "cm", cm)
	}
}

// UpdateCommand implements status.Sink.
func (c *Console) UpdateCommand(text string) {
	log.Info("command", "text", text)
}
