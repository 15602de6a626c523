package router

import (
	"net/http"

	"github.com/deppfellow/employees/internal/handler"
	"github.com/deppfellow/employees/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerEmployeeRoutes mounts the employee API. Every route requires JSON
// and the :id routes also require an integer id; a request failing either
// guard is treated as if no route matched.
func registerEmployeeRoutes(r *echo.Echo, h *handler.Handlers) {
	eh := h.Employee
	requireJSON := middleware.RequireJSON()
	requireID := middleware.RequireIDParam("id")

	r.GET("/employees", handler.Handle(eh.Handler, eh.ListEmployees, http.StatusOK), requireJSON)
	r.PUT("/employees", handler.HandleCreated(eh.Handler, eh.CreateEmployee), requireJSON)

	r.GET("/employees/:id", handler.Handle(eh.Handler, eh.GetEmployee, http.StatusOK), requireJSON, requireID)
	r.POST("/employees/:id", handler.HandleNoContent(eh.Handler, eh.UpdateEmployee, http.StatusNoContent), requireJSON, requireID)
	r.DELETE("/employees/:id", handler.HandleNoContent(eh.Handler, eh.DeleteEmployee, http.StatusNoContent), requireJSON, requireID)
}
