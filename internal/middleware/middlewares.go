package middleware

import (
	"github.com/deppfellow/employees/internal/server"
)

// Middlewares groups all middleware components used by the HTTP server so
// they are built once and reused during router setup.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers, and the
	// global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer puts a request-scoped logger on every request.
	ContextEnhancer *ContextEnhancer

	// Tracing provides New Relic middleware. It is a no-op when New Relic
	// is disabled.
	Tracing *TracingMiddleware
}

// NewMiddlewares constructs all middleware components using the application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
	}
}
