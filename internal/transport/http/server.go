// Package http provides the HTTP server implementation for the coordinator.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/botfleet/coordinator/internal/service"
	v1 "github.com/botfleet/coordinator/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server. It serves both the
// operator surface (send/list/unregister) and the bot surface
// (register/poll/clear).
func NewServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	handler := v1.NewHandler(svc)
	handler.RegisterRoutes(e)

	return e
}
