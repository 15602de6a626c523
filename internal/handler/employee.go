package handler

import (
	"fmt"

	"github.com/deppfellow/employees/internal/model"
	"github.com/deppfellow/employees/internal/server"
	"github.com/deppfellow/employees/internal/service"
	"github.com/deppfellow/employees/internal/validation"
	"github.com/labstack/echo/v4"
)

// ListEmployeesRequest has no input.
type ListEmployeesRequest struct{}

func (r *ListEmployeesRequest) Validate() error { return nil }

// EmployeeIDRequest carries the id path parameter. The router guarantees it
// parses as a 32-bit integer before binding.
type EmployeeIDRequest struct {
	ID int32 `param:"id" json:"-"`
}

func (r *EmployeeIDRequest) Validate() error { return nil }

// CreateEmployeeRequest is the body of PUT /employees.
type CreateEmployeeRequest struct {
	model.EmployeeForm
}

func (r *CreateEmployeeRequest) Validate() error {
	return validation.ValidateEmployeeForm(r.EmployeeForm)
}

// UpdateEmployeeRequest is POST /employees/:id. An "id" key in the body
// lands in EmployeeForm.ID and is ignored.
type UpdateEmployeeRequest struct {
	ID int32 `param:"id" json:"-"`
	model.EmployeeForm
}

func (r *UpdateEmployeeRequest) Validate() error {
	return validation.ValidateEmployeeForm(r.EmployeeForm)
}

type EmployeeHandler struct {
	Handler
	employees *service.EmployeeService
}

func NewEmployeeHandler(s *server.Server, employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		Handler:   NewHandler(s),
		employees: employees,
	}
}

func (h *EmployeeHandler) ListEmployees(c echo.Context, _ *ListEmployeesRequest) (*model.EmployeeList, error) {
	return h.employees.List(c.Request().Context())
}

func (h *EmployeeHandler) GetEmployee(c echo.Context, req *EmployeeIDRequest) (*model.Employee, error) {
	return h.employees.Get(c.Request().Context(), req.ID)
}

func (h *EmployeeHandler) CreateEmployee(c echo.Context, req *CreateEmployeeRequest) (Created, error) {
	id, err := h.employees.Create(c.Request().Context(), req.EmployeeForm)
	if err != nil {
		return Created{}, err
	}

	return Created{Location: fmt.Sprintf("/employees/%d", id)}, nil
}

// UpdateEmployee answers 204 whether or not a row matched.
func (h *EmployeeHandler) UpdateEmployee(c echo.Context, req *UpdateEmployeeRequest) error {
	_, err := h.employees.Update(c.Request().Context(), req.ID, req.EmployeeForm)
	return err
}

func (h *EmployeeHandler) DeleteEmployee(c echo.Context, req *EmployeeIDRequest) error {
	return h.employees.Delete(c.Request().Context(), req.ID)
}
