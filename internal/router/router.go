// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps each path to its
// handler. Anything no route accepts is answered by the global
// error handler with 404 {"message": "not found"}.
package router

import (
	"github.com/deppfellow/employees/internal/handler"
	"github.com/deppfellow/employees/internal/middleware"
	"github.com/deppfellow/employees/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with global middleware, the error
// handler and every route.
//
// Middleware order matters: the request id must exist before the context
// logger is built, and the New Relic transaction must exist before tracing
// attributes and trace ids are added. CORS answers preflights before
// RejectOptions turns any other OPTIONS request into a routing miss.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middleware.RejectOptions(),
	)

	registerSystemRoutes(router, s, h)
	registerEmployeeRoutes(router, h)

	return router
}
