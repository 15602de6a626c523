package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/deppfellow/employees/internal/middleware"
	"github.com/deppfellow/employees/internal/server"
	"github.com/labstack/echo/v4"
)

// pinger is the part of the database the health check needs.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes an endpoint that load balancers and uptime monitors
// use to check that the service is alive and the database is reachable.
type HealthHandler struct {
	Handler
	db      pinger
	timeout time.Duration
}

// NewHealthHandler constructs a HealthHandler with access to shared app dependencies.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: 5 * time.Second,
	}
	if s.DB != nil {
		h.db = s.DB
	}
	if obs := s.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		h.timeout = obs.HealthChecks.Timeout
	}
	return h
}

// CheckHealth returns 200 when the database answers a ping within the
// configured timeout, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := map[string]any{}
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	dbStart := time.Now()
	err := errors.New("database not configured")
	if h.db != nil {
		err = h.db.Ping(ctx)
	}

	if err != nil {
		checks["database"] = map[string]any{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}
		response["status"] = "unhealthy"

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]any{
				"check_type":       "database",
				"error_type":       "database_unhealthy",
				"response_time_ms": time.Since(dbStart).Milliseconds(),
				"error_message":    err.Error(),
			})
		}

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	checks["database"] = map[string]any{
		"status":        "healthy",
		"response_time": time.Since(dbStart).String(),
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}
