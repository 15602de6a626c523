// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules defined in
// struct tags and turns binding and validation failures into
// 400 errors the client can understand.
package validation

import (
	"github.com/deppfellow/employees/internal/model"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// employeeFields mirrors model.EmployeeForm with nil for "not provided" so
// omitnil can skip absent fields.
type employeeFields struct {
	Fname *string `validate:"omitnil,max=255"`
	Lname *string `validate:"omitnil,max=255"`
	Age   *int32  `validate:"omitnil,gte=0"`
	Title *string `validate:"omitnil,max=255"`
}

// ValidateEmployeeForm checks the present fields of form.
// Absent fields are left to the store, which rejects NULLs on insert.
func ValidateEmployeeForm(form model.EmployeeForm) error {
	return validate.Struct(employeeFields{
		Fname: ptrOf(form.Fname),
		Lname: ptrOf(form.Lname),
		Age:   ptrOf(form.Age),
		Title: ptrOf(form.Title),
	})
}

func ptrOf[T any](o model.Optional[T]) *T {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}
