package repository

import (
	"github.com/deppfellow/employees/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Employees EmployeeGateway
}

// NewRepositories builds every repository on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Employees: NewEmployeeRepository(s.DB.Pool),
	}
}
