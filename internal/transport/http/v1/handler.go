// Package v1 provides HTTP handlers for the coordinator.
package v1

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/botfleet/coordinator/domain"
	"github.com/botfleet/coordinator/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Bot surface
	e.POST("/register", h.RegisterBot)
	e.GET("/commands/:bot_id", h.GetCommands)
	e.POST("/commands/:bot_id/clear", h.ClearCommands)

	// Operator surface
	e.POST("/command", h.SendCommand)
	e.GET("/bots", h.ListBots)
	e.GET("/bots/:bot_id", h.GetBot)
	e.DELETE("/bots/:bot_id", h.UnregisterBot)

	e.GET("/health", h.Health)
}

// Health returns health status and the registered-bot count.
func (h *Handler) Health(c echo.Context) error {
	count, err := h.service.CountBots(c.Request().Context())
	if err != nil {
		return h.errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"timestamp":       time.Now().Format(time.RFC3339),
		"registered_bots": count,
	})
}

// errorJSON maps the error taxonomy to status codes and the error
// envelope. Anything unrecognized is an internal fault.
func (h *Handler) errorJSON(c echo.Context, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, errorEnvelope(verr.Error()))
	case errors.Is(err, domain.ErrBotNotFound):
		return c.JSON(http.StatusNotFound, errorEnvelope(domain.ErrBotNotFound.Error()))
	case errors.Is(err, domain.ErrCommandBlocked):
		return c.JSON(http.StatusForbidden, errorEnvelope(domain.ErrCommandBlocked.Error()))
	default:
		log.Printf("ERROR: %v", err)
		return c.JSON(http.StatusInternalServerError, errorEnvelope("internal server error"))
	}
}

func errorEnvelope(message string) map[string]string {
	return map[string]string{
		"status":  "error",
		"message": message,
	}
}
