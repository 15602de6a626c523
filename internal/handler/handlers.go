package handler

import (
	"github.com/deppfellow/employees/internal/server"
	"github.com/deppfellow/employees/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Employee *EmployeeHandler
	Health   *HealthHandler  // Health serves the /status endpoint.
	OpenAPI  *OpenAPIHandler // OpenAPI serves the API description.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Employee: NewEmployeeHandler(s, services.Employee),
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
	}
}
