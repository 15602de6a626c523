package handler

import (
	_ "embed"
	"net/http"

	"github.com/deppfellow/employees/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed static/openapi.json
var openAPISpec []byte

// OpenAPIHandler serves the OpenAPI description of the employee API.
type OpenAPIHandler struct {
	Handler
}

// NewOpenAPIHandler constructs an OpenAPIHandler with access to shared dependencies.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPISpec writes the embedded openapi.json.
//
// Cache-Control is set to "no-cache" so clients pick up a new description
// after a deploy.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPISpec)
}
