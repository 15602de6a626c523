package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/employees/internal/errs"
	"github.com/deppfellow/employees/internal/model"
	"github.com/deppfellow/employees/internal/repository/repositorytest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func seeded() *repositorytest.Memory {
	return repositorytest.NewMemory(model.Employee{ID: 1, Fname: "A", Lname: "B", Age: 30, Title: "Eng"})
}

func requireStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, status, httpErr.Status)
	return httpErr
}

func fullForm() model.EmployeeForm {
	return model.EmployeeForm{
		Fname: model.Some("Jo"),
		Lname: model.Some("Doe"),
		Age:   model.Some[int32](40),
		Title: model.Some("Mgr"),
	}
}

func TestEmployeeService_ListEmpty(t *testing.T) {
	svc := NewEmployeeService(repositorytest.NewMemory())

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list.Results)
	require.Empty(t, list.Results)
}

func TestEmployeeService_ListFault(t *testing.T) {
	mem := seeded()
	mem.Err = errors.New("connection reset")
	svc := NewEmployeeService(mem)

	_, err := svc.List(context.Background())
	require.EqualError(t, err, "connection reset")
}

func TestEmployeeService_CreateThenGet(t *testing.T) {
	svc := NewEmployeeService(seeded())

	form := fullForm()
	form.ID = model.Some[int32](1)

	id, err := svc.Create(context.Background(), form)
	require.NoError(t, err)
	require.NotEqual(t, int32(1), id)

	employee, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, model.Employee{ID: id, Fname: "Jo", Lname: "Doe", Age: 40, Title: "Mgr"}, *employee)

	original, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "A", original.Fname)
}

func TestEmployeeService_CreateMissingField(t *testing.T) {
	svc := NewEmployeeService(seeded())

	_, err := svc.Create(context.Background(), model.EmployeeForm{Fname: model.Some("Jo")})
	httpErr := requireStatus(t, err, http.StatusBadRequest)
	require.Equal(t, `null value in column "lname" of relation "employees" violates not-null constraint`, httpErr.Message)
	require.Equal(t, errs.EnvelopeError, httpErr.Envelope)
}

func TestEmployeeService_CreateFaultIsNotAClientError(t *testing.T) {
	mem := seeded()
	mem.Err = errors.New("pool closed")
	svc := NewEmployeeService(mem)

	_, err := svc.Create(context.Background(), fullForm())
	var httpErr *errs.HTTPError
	require.False(t, errors.As(err, &httpErr))
}

func TestEmployeeService_GetMissing(t *testing.T) {
	svc := NewEmployeeService(seeded())

	_, err := svc.Get(context.Background(), 999)
	httpErr := requireStatus(t, err, http.StatusNotFound)
	require.Nil(t, httpErr.Body())
}

func TestEmployeeService_PartialUpdate(t *testing.T) {
	svc := NewEmployeeService(seeded())

	affected, err := svc.Update(context.Background(), 1, model.EmployeeForm{
		ID:  model.Some[int32](77),
		Age: model.Some[int32](31),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	employee, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, model.Employee{ID: 1, Fname: "A", Lname: "B", Age: 31, Title: "Eng"}, *employee)

	_, err = svc.Get(context.Background(), 77)
	requireStatus(t, err, http.StatusNotFound)
}

func TestEmployeeService_UpdateMissingRow(t *testing.T) {
	svc := NewEmployeeService(seeded())

	affected, err := svc.Update(context.Background(), 999, model.EmployeeForm{Age: model.Some[int32](1)})
	require.NoError(t, err)
	require.Zero(t, affected)
}

func TestEmployeeService_UpdateWithoutChanges(t *testing.T) {
	svc := NewEmployeeService(seeded())

	_, err := svc.Update(context.Background(), 1, model.EmployeeForm{
		ID:    model.Some[int32](1),
		Fname: model.Null[string](),
	})
	httpErr := requireStatus(t, err, http.StatusBadRequest)
	require.Equal(t, "no fields to update", httpErr.Message)
}

func TestEmployeeService_DeleteTwice(t *testing.T) {
	svc := NewEmployeeService(seeded())

	require.NoError(t, svc.Delete(context.Background(), 1))
	requireStatus(t, svc.Delete(context.Background(), 1), http.StatusNotFound)
}
