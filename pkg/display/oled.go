// Package display renders the robot's status on the SSD1306 OLED: mode,
// distance, last command and the current AI thought. It is a pure consumer
// of status notifications; in detached mode a console sink takes its place.
package display

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/heyspider/go-spider/internal/log"
	"github.com/heyspider/go-spider/pkg/status"
)

// RefreshInterval is the OLED redraw cadence.
const RefreshInterval = 500 * time.Millisecond

const lineHeight = 12

// OLED drives a 128x64 SSD1306 over I2C. It implements status.Sink;
// updates are cheap state writes, the refresh loop does the drawing.
type OLED struct {
	dev    *ssd1306.Dev
	closer i2c.BusCloser

	mu          sync.RWMutex
	mode        status.Mode
	distance    float64
	lastCommand string

	// ThoughtFn, when set, supplies the AI thought line.
	ThoughtFn func() string
}

// NewOLED opens the named I2C bus (empty string selects the first one) and
// initializes the display. Construction fails cleanly when the display is
// missing so the caller can fall back to a console sink.
func NewOLED(busName string) (*OLED, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("display: open i2c bus: %w", err)
	}
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("display: init ssd1306: %w", err)
	}
	return &OLED{dev: dev, closer: bus, mode: status.ModeStartup}, nil
}

// UpdateMode implements status.Sink.
func (d *OLED) UpdateMode(mode status.Mode) {
	d.mu.Lock()
	d.mode = mode
	d.mu.Unlock()
}

// UpdateDistance implements status.Sink.
func (d *OLED) UpdateDistance(cm float64) {
	d.mu.Lock()
	d.distance = cm
	d.mu.Unlock()
}

// UpdateCommand implements status.Sink.
func (d *OLED) UpdateCommand(text string) {
	d.mu.Lock()
	d.lastCommand = text
	d.mu.Unlock()
}

// Run redraws the display until the context is canceled, then blanks it.
func (d *OLED) Run(ctx context.Context) {
	ticker := time.NewTicker(RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.dev.Halt()
			d.closer.Close()
			return
		case <-ticker.C:
			if err := d.render(); err != nil {
				log.Warn("display update failed", "error", err)
			}
		}
	}
}

func (d *OLED) render() error {
	d.mu.RLock()
	mode := d.mode
	distance := d.distance
	lastCmd := d.lastCommand
	d.mu.RUnlock()

	img := image1bit.NewVerticalLSB(d.dev.Bounds())
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	lines := []string{
		"HEY SPIDER",
		fmt.Sprintf("Mode: %s", mode),
		fmt.Sprintf("Dist: %.1fcm", distance),
	}
	if lastCmd != "" {
		lines = append(lines, "Cmd: "+truncate(lastCmd, 15))
	}
	if d.ThoughtFn != nil {
		if thought := d.ThoughtFn(); thought != "" {
			lines = append(lines, truncate(thought, 18))
		}
	}

	y := lineHeight
	for _, line := range lines {
		drawer.Dot = fixed.P(0, y)
		drawer.DrawString(line)
		y += lineHeight
	}

	return d.dev.Draw(d.dev.Bounds(), img, image.Point{})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
