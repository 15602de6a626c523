package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/employees/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
type Validatable interface {
	Validate() error
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) bind populates request struct from path params and, for methods that
// carry one, the JSON body.
// 2) payload.Validate() applies validation rules.
// 3) Returns a 400 *errs.HTTPError if either step fails.
//
// NOTE: payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := bind(c, payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, nil, fieldErrors)
	}

	return nil
}

// bind never reads the body of GET, HEAD and DELETE requests, so a stray
// body on those cannot fail the request.
func bind(c echo.Context, payload Validatable) error {
	switch c.Request().Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		return (&echo.DefaultBinder{}).BindPathParams(c, payload)
	}
	return c.Bind(payload)
}

// bindErrorMessage returns the decoder's own message when echo kept it,
// otherwise echo's message.
func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) {
		return err.Error()
	}
	if echoErr.Internal != nil {
		return echoErr.Internal.Error()
	}
	return fmt.Sprint(echoErr.Message)
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error(), []errs.FieldError{}
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min", "gte":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max", "lte":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s:%s", err.Tag(), err.Param())
			} else {
				msg = err.Tag()
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return summarize(fieldErrors), fieldErrors
}

// summarize joins field errors into the single message the client sees,
// e.g. "age must be at least 0".
func summarize(fieldErrors []errs.FieldError) string {
	parts := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		parts = append(parts, fe.Field+" "+fe.Error)
	}
	return strings.Join(parts, "; ")
}
