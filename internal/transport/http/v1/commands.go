package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/botfleet/coordinator/domain"
)

// SendCommandRequest is the request to queue a command for a bot.
type SendCommandRequest struct {
	BotID   string       `json:"bot_id"`
	Command string       `json:"command"`
	Params  domain.Attrs `json:"params,omitempty"`
}

// SendCommand queues a command for a specific bot.
// POST /command
func (h *Handler) SendCommand(c echo.Context) error {
	ctx := c.Request().Context()

	var req SendCommandRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope("invalid request body"))
	}

	if req.BotID == "" {
		return c.JSON(http.StatusBadRequest, errorEnvelope("missing required field: bot_id"))
	}
	if req.Command == "" {
		return c.JSON(http.StatusBadRequest, errorEnvelope("missing required field: command"))
	}

	entry, err := h.service.SendCommand(ctx, req.BotID, req.Command, req.Params)
	if err != nil {
		return h.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     "success",
		"message":    "Command sent to bot " + req.BotID,
		"command":    entry.Command,
		"command_id": entry.CommandID,
	})
}

// GetCommands returns the pending commands for a bot in insertion
// order. An unknown bot yields an empty list, so a bot that polls
// before its first registration lands sees no error.
// GET /commands/:bot_id
func (h *Handler) GetCommands(c echo.Context) error {
	ctx := c.Request().Context()
	botID := c.Param("bot_id")

	entries, err := h.service.Commands(ctx, botID)
	if err != nil {
		return h.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "success",
		"bot_id":   botID,
		"commands": entries,
	})
}

// ClearCommands removes all pending commands for a bot and reports the
// removed count. Clearing an empty or unknown queue reports zero.
// POST /commands/:bot_id/clear
func (h *Handler) ClearCommands(c echo.Context) error {
	ctx := c.Request().Context()
	botID := c.Param("bot_id")

	cleared, err := h.service.ClearCommands(ctx, botID)
	if err != nil {
		return h.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":        "success",
		"message":       "Cleared commands for bot " + botID,
		"cleared_count": cleared,
	})
}
