package service

import (
	"context"

	"github.com/deppfellow/employees/internal/errs"
	"github.com/deppfellow/employees/internal/middleware"
	"github.com/deppfellow/employees/internal/model"
	"github.com/deppfellow/employees/internal/repository"
	"github.com/deppfellow/employees/internal/sqlerr"
	"github.com/pkg/errors"
)

// EmployeeService maps gateway outcomes onto the errors the HTTP layer
// renders. It performs exactly one gateway call per operation.
type EmployeeService struct {
	gateway repository.EmployeeGateway
}

func NewEmployeeService(gateway repository.EmployeeGateway) *EmployeeService {
	return &EmployeeService{gateway: gateway}
}

// List returns every employee. A storage fault is returned as is and ends
// up as a 500.
func (s *EmployeeService) List(ctx context.Context) (*model.EmployeeList, error) {
	employees, err := s.gateway.List(ctx)
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []model.Employee{}
	}

	return &model.EmployeeList{Results: employees}, nil
}

// Get returns a 404 with no body when the row does not exist.
func (s *EmployeeService) Get(ctx context.Context, id int32) (*model.Employee, error) {
	employee, err := s.gateway.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, errs.NewNotFoundError("employee not found", nil)
	}

	return employee, nil
}

// Create inserts form, ignoring any id it carries, and returns the new id.
func (s *EmployeeService) Create(ctx context.Context, form model.EmployeeForm) (int32, error) {
	id, err := s.gateway.Create(ctx, form.WithoutID())
	if err != nil {
		return 0, writeError(err)
	}

	return id, nil
}

// Update applies the present fields of form to row id and returns the
// number of matched rows. Zero is not an error.
func (s *EmployeeService) Update(ctx context.Context, id int32, form model.EmployeeForm) (int64, error) {
	form = form.WithoutID()
	if !form.HasChanges() {
		return 0, errs.NewBadRequestError(repository.ErrNoChanges.Error(), nil, nil)
	}

	affected, err := s.gateway.Update(ctx, id, form)
	if err != nil {
		return 0, writeError(err)
	}
	if affected == 0 {
		middleware.LoggerFromContext(ctx).Info().
			Int32("employee_id", id).
			Msg("update matched no employee")
	}

	return affected, nil
}

// Delete returns a 404 with no body when nothing was deleted.
func (s *EmployeeService) Delete(ctx context.Context, id int32) error {
	affected, err := s.gateway.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.NewNotFoundError("employee not found", nil)
	}

	return nil
}

// writeError turns a failed write caused by the submitted values into a 400
// carrying the store's message. Other failures are returned unchanged.
func writeError(err error) error {
	if errors.Is(err, repository.ErrNoChanges) {
		return errs.NewBadRequestError(repository.ErrNoChanges.Error(), nil, nil)
	}
	if sqlerr.IsClientError(err) {
		return sqlerr.HandleError(err)
	}
	return err
}
