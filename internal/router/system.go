package router

import (
	"github.com/deppfellow/employees/internal/handler"
	"github.com/deppfellow/employees/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the
// employee API. /status is only mounted when health checks are enabled.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	if obs := s.Config.Observability; obs == nil || obs.HealthChecks.Enabled {
		r.GET("/status", h.Health.CheckHealth)
	}

	r.GET("/openapi.json", h.OpenAPI.ServeOpenAPISpec)
}
