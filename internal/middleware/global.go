package middleware

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/employees/internal/errs"
	"github.com/deppfellow/employees/internal/server"
	"github.com/deppfellow/employees/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups "global" middleware and the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured by the server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper:      notPreflight,
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// notPreflight skips CORS for OPTIONS requests that are not a browser
// preflight against a known path. The router only records allowed methods
// when the path exists.
func notPreflight(c echo.Context) bool {
	req := c.Request()
	if req.Method != http.MethodOptions {
		return false
	}
	if req.Header.Get(echo.HeaderOrigin) == "" || req.Header.Get(echo.HeaderAccessControlRequestMethod) == "" {
		return true
	}
	allow, _ := c.Get(echo.ContextKeyHeaderAllow).(string)
	return allow == ""
}

// RequestLogger writes one "API" log line per request, with severity based
// on the status the client actually receives.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error the response is written later by
			// GlobalErrorHandler, so v.Status may still be 200.
			// https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = ToHTTPError(v.Error).Status
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware. A recovered panic
// reaches GlobalErrorHandler and is rendered as a 500.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// ToHTTPError classifies any error returned through the echo chain.
//
//   - *errs.HTTPError is used as is.
//   - echo 404 and 405 are routing misses: 404 {"message":"not found"}.
//   - other echo 4xx keep their status and use the {"error"} envelope.
//   - everything else goes through sqlerr.HandleError.
func ToHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch {
		case echoErr.Code == http.StatusNotFound, echoErr.Code == http.StatusMethodNotAllowed:
			return errs.NewRouteNotFoundError()
		case echoErr.Code >= 400 && echoErr.Code < 500:
			return &errs.HTTPError{
				Code:     errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
				Message:  fmt.Sprint(echoErr.Message),
				Status:   echoErr.Code,
				Envelope: errs.EnvelopeError,
			}
		default:
			return errs.NewInternalServerError()
		}
	}

	converted := sqlerr.HandleError(err)
	if errors.As(converted, &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Every error ends up here. It is logged with the request-scoped logger and
// rendered in the envelope the error asks for: no body, {"error": ...} or
// {"message": ...}.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := ToHTTPError(err)

	logger := GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= 500 {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}

	if code := sqlerr.ErrCode(err); code != sqlerr.Other {
		e = e.Str("sql_error", string(code))
	}

	e.Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Interface("field_errors", httpErr.Errors).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	body := httpErr.Body()
	if body == nil || c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}

	_ = c.JSON(httpErr.Status, body)
}
