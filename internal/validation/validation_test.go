package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/employees/internal/errs"
	"github.com/deppfellow/employees/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type formRequest struct {
	model.EmployeeForm
}

func (r *formRequest) Validate() error {
	return ValidateEmployeeForm(r.EmployeeForm)
}

func newJSONContext(body string) echo.Context {
	req := httptest.NewRequest(http.MethodPut, "/employees", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestValidateEmployeeForm(t *testing.T) {
	require.NoError(t, ValidateEmployeeForm(model.EmployeeForm{}))
	require.NoError(t, ValidateEmployeeForm(model.EmployeeForm{
		Fname: model.Some("Jo"),
		Age:   model.Some[int32](0),
	}))

	err := ValidateEmployeeForm(model.EmployeeForm{Age: model.Some[int32](-1)})
	require.Error(t, err)

	err = ValidateEmployeeForm(model.EmployeeForm{Title: model.Some(strings.Repeat("x", 256))})
	require.Error(t, err)
}

func TestBindAndValidate(t *testing.T) {
	req := &formRequest{}
	err := BindAndValidate(newJSONContext(`{"fname":"Jo","age":40}`), req)
	require.NoError(t, err)
	require.True(t, req.Fname.Present())
	require.False(t, req.Lname.IsSet())
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	err := BindAndValidate(newJSONContext(`{"fname":`), &formRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Equal(t, errs.EnvelopeError, httpErr.Envelope)
	require.NotEmpty(t, httpErr.Message)
}

func TestBindAndValidate_WrongType(t *testing.T) {
	err := BindAndValidate(newJSONContext(`{"age":"forty"}`), &formRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestBindAndValidate_RuleViolation(t *testing.T) {
	err := BindAndValidate(newJSONContext(`{"age":-3,"lname":"`+strings.Repeat("y", 300)+`"}`), &formRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, "lname must not exceed 255 characters; age must be at least 0", httpErr.Message)
	require.Equal(t, []errs.FieldError{
		{Field: "lname", Error: "must not exceed 255 characters"},
		{Field: "age", Error: "must be at least 0"},
	}, httpErr.Errors)
}

func TestExtractValidationError_PlainError(t *testing.T) {
	msg, fieldErrors := extractValidationError(errors.New("id is read-only"))
	require.Equal(t, "id is read-only", msg)
	require.Empty(t, fieldErrors)
}

type idRequest struct {
	ID int32 `param:"id"`
}

func (r *idRequest) Validate() error { return nil }

func TestBindAndValidate_IgnoresBodyWithoutPayload(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(method, "/employees/7", strings.NewReader("hello"))
			req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
			c := echo.New().NewContext(req, httptest.NewRecorder())
			c.SetParamNames("id")
			c.SetParamValues("7")

			payload := &idRequest{}
			require.NoError(t, BindAndValidate(c, payload))
			require.Equal(t, int32(7), payload.ID)
		})
	}
}
