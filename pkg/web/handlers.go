package web

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/heyspider/go-spider/pkg/command"
	"github.com/heyspider/go-spider/pkg/hub"
)

// CommandRequest is the body of POST /api/command.
type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResult is the response of POST /api/command.
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// handleStatus returns the current robot snapshot.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.snapshot())
}

// handleCommand dispatches one command. The call blocks for the full
// behavior duration; a behavior already in flight yields 409.
func (s *Server) handleCommand(c *fiber.Ctx) error {
	var req CommandRequest
	if err := c.BodyParser(&req); err != nil || req.Command == "" {
		return c.Status(fiber.StatusBadRequest).JSON(CommandResult{
			Success: false,
			Message: "No command provided",
		})
	}

	if s.OnCommand == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(CommandResult{
			Success: false,
			Message: "Command handling not configured",
		})
	}

	msg, err := s.OnCommand(context.Background(), req.Command)
	switch {
	case err == nil:
		return c.JSON(CommandResult{Success: true, Message: msg})
	case errBusy(err):
		return c.Status(fiber.StatusConflict).JSON(CommandResult{
			Success: false,
			Message: "Already moving",
		})
	case errors.Is(err, command.ErrUnknown):
		result := CommandResult{Success: false, Message: "Could not understand command"}
		if msg != "" {
			result.Message = msg
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(CommandResult{
			Success: false,
			Message: err.Error(),
		})
	}
}

// handleStatusWS streams status events. The current snapshot is sent first
// so new clients render immediately.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	c.WriteJSON(s.snapshot())
	hub.NewClient(s.statusHub, c).Run()
}
