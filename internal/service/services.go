package service

import (
	"github.com/deppfellow/employees/internal/repository"
)

type Services struct {
	Employee *EmployeeService
}

func NewServices(repos *repository.Repositories) (*Services, error) {
	return &Services{
		Employee: NewEmployeeService(repos.Employees),
	}, nil
}
