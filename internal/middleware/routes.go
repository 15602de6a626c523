package middleware

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireJSON makes a route match only JSON requests.
//
// PUT, POST and PATCH must declare a JSON Content-Type. Other methods must
// either omit Accept or accept JSON (wildcards included). A mismatch is a
// routing miss, not a handler error.
func RequireJSON() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			switch req.Method {
			case http.MethodPut, http.MethodPost, http.MethodPatch:
				if !isJSONContentType(req.Header.Get(echo.HeaderContentType)) {
					return echo.ErrNotFound
				}
			default:
				if !acceptsJSON(req.Header.Get(echo.HeaderAccept)) {
					return echo.ErrNotFound
				}
			}

			return next(c)
		}
	}
}

// RejectOptions turns every OPTIONS request that reaches the router into a
// routing miss. Real CORS preflights are answered earlier by CORS.
func RejectOptions() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return echo.ErrNotFound
			}
			return next(c)
		}
	}
}

// RequireIDParam makes a route match only when path param name is a 32-bit
// integer.
func RequireIDParam(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := strconv.ParseInt(c.Param(name), 10, 32); err != nil {
				return echo.ErrNotFound
			}
			return next(c)
		}
	}
}

func isJSONContentType(header string) bool {
	if header == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}
	return mediaType == echo.MIMEApplicationJSON
}

func acceptsJSON(header string) bool {
	if strings.TrimSpace(header) == "" {
		return true
	}

	for _, part := range strings.Split(header, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if q, ok := params["q"]; ok {
			if weight, err := strconv.ParseFloat(q, 64); err == nil && weight == 0 {
				continue
			}
		}

		switch mediaType {
		case echo.MIMEApplicationJSON, "application/*", "*/*":
			return true
		}
	}
	return false
}
