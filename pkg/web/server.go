// Package web provides the real-time dashboard for the spider: a status
// API, a command endpoint, and a websocket status stream. It is a consumer
// of the locomotion core's public surface; nothing here drives control
// except through the same command dispatch the voice pipeline uses.
package web

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/heyspider/go-spider/internal/log"
	"github.com/heyspider/go-spider/pkg/gait"
	"github.com/heyspider/go-spider/pkg/hub"
	"github.com/heyspider/go-spider/pkg/servo"
	"github.com/heyspider/go-spider/pkg/status"
)

// Snapshot is the dashboard's view of the robot.
type Snapshot struct {
	Mode        string         `json:"mode"`
	IsMoving    bool           `json:"is_moving"`
	DistanceCm  float64        `json:"distance"`
	LastCommand string         `json:"last_command"`
	AIThought   string         `json:"ai_thought,omitempty"`
	Joints      map[string]int `json:"joints,omitempty"`
}

// statusEvent is one websocket status update.
type statusEvent struct {
	Time     string  `json:"time"`
	Kind     string  `json:"kind"` // mode, distance, command
	Mode     string  `json:"mode,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	Command  string  `json:"command,omitempty"`
}

// Server is the web dashboard server. It implements status.Sink so mode and
// distance updates stream straight out to connected clients.
type Server struct {
	app  *fiber.App
	port string

	statusHub *hub.Hub

	mu          sync.RWMutex
	mode        status.Mode
	distance    float64
	lastCommand string

	// Wired by the caller before Start.
	OnCommand func(ctx context.Context, text string) (string, error)
	BusyFn    func() bool
	JointsFn  func() map[servo.Joint]int
	ThoughtFn func() string
}

// NewServer creates the dashboard server.
func NewServer(port string) *Server {
	s := &Server{
		port:      port,
		statusHub: hub.New("status"),
		mode:      status.ModeStartup,
	}

	app := fiber.New(fiber.Config{
		AppName:               "Spider Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Post("/command", s.handleCommand)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Start runs the hub and the HTTP listener. Blocks.
func (s *Server) Start() error {
	log.Info("web dashboard listening", "port", s.port)
	go s.statusHub.Run()
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()
}

// Shutdown gracefully stops the HTTP listener.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// snapshot assembles the current dashboard view.
func (s *Server) snapshot() Snapshot {
	s.mu.RLock()
	snap := Snapshot{
		Mode:        string(s.mode),
		DistanceCm:  s.distance,
		LastCommand: s.lastCommand,
	}
	s.mu.RUnlock()

	if s.BusyFn != nil {
		snap.IsMoving = s.BusyFn()
	}
	if s.ThoughtFn != nil {
		snap.AIThought = s.ThoughtFn()
	}
	if s.JointsFn != nil {
		joints := s.JointsFn()
		snap.Joints = make(map[string]int, len(joints))
		for j, a := range joints {
			snap.Joints[string(j)] = a
		}
	}
	return snap
}

// UpdateMode implements status.Sink.
func (s *Server) UpdateMode(mode status.Mode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	s.statusHub.BroadcastJSON(statusEvent{
		Time: time.Now().Format("15:04:05"),
		Kind: "mode",
		Mode: string(mode),
	})
}

// UpdateDistance implements status.Sink.
func (s *Server) UpdateDistance(cm float64) {
	s.mu.Lock()
	s.distance = cm
	s.mu.Unlock()
	s.statusHub.BroadcastJSON(statusEvent{
		Time:     time.Now().Format("15:04:05"),
		Kind:     "distance",
		Distance: cm,
	})
}

// UpdateCommand implements status.Sink.
func (s *Server) UpdateCommand(text string) {
	s.mu.Lock()
	s.lastCommand = text
	s.mu.Unlock()
	s.statusHub.BroadcastJSON(statusEvent{
		Time:    time.Now().Format("15:04:05"),
		Kind:    "command",
		Command: text,
	})
}

// errBusy matches the gait engine's rejection without importing its
// internals into every handler.
func errBusy(err error) bool {
	return errors.Is(err, gait.ErrBusy)
}
