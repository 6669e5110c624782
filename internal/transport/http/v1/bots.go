package v1

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/botfleet/coordinator/domain"
)

// RegisterBot registers a new bot or updates an existing one. The body
// is an open JSON object; bot_id is extracted and everything else is
// kept as the bot's attributes.
// POST /register
func (h *Handler) RegisterBot(c echo.Context) error {
	ctx := c.Request().Context()

	var body map[string]json.RawMessage
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope("invalid request body"))
	}

	var botID string
	if raw, ok := body["bot_id"]; ok {
		_ = json.Unmarshal(raw, &botID)
	}
	if strings.TrimSpace(botID) == "" {
		return c.JSON(http.StatusBadRequest, errorEnvelope("missing required field: bot_id"))
	}
	delete(body, "bot_id")

	bot, err := h.service.RegisterBot(ctx, botID, domain.Attrs(body))
	if err != nil {
		return h.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":        "success",
		"message":       "Bot " + bot.BotID + " registered successfully",
		"bot_id":        bot.BotID,
		"registered_at": bot.RegisteredAt.Format(time.RFC3339),
	})
}

// ListBots lists all registered bots with their pending-command counts.
// GET /bots
func (h *Handler) ListBots(c echo.Context) error {
	ctx := c.Request().Context()

	bots, err := h.service.ListBots(ctx)
	if err != nil {
		return h.errorJSON(c, err)
	}

	botList := make([]map[string]interface{}, len(bots))
	for i, b := range bots {
		info := map[string]interface{}{
			"bot_id":           b.BotID,
			"registered_at":    b.RegisteredAt.Format(time.RFC3339),
			"last_seen":        b.LastSeenAt.Format(time.RFC3339),
			"pending_commands": b.PendingCommands,
		}
		// Surface the well-known descriptive attributes when present.
		for _, field := range []string{"name", "version", "status"} {
			if raw, ok := b.Attributes[field]; ok {
				info[field] = raw
			}
		}
		botList[i] = info
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "success",
		"bots":        botList,
		"total_count": len(botList),
	})
}

// GetBot gets a specific bot by ID.
// GET /bots/:bot_id
func (h *Handler) GetBot(c echo.Context) error {
	ctx := c.Request().Context()
	botID := c.Param("bot_id")

	bot, err := h.service.GetBot(ctx, botID)
	if err != nil {
		return h.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, bot)
}

// UnregisterBot removes a bot and drops its command queue.
// DELETE /bots/:bot_id
func (h *Handler) UnregisterBot(c echo.Context) error {
	ctx := c.Request().Context()
	botID := c.Param("bot_id")

	if err := h.service.UnregisterBot(ctx, botID); err != nil {
		return h.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Bot " + botID + " unregistered successfully",
	})
}
