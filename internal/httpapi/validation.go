package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"employee-management-api/internal/apperror"
)

const (
	validationFailedMessage = "One or more validation errors occurred."
	selfSupervisionMessage  = "An employee cannot be their own supervisor"
	tagNotSelf              = "notself"
)

var validate = newValidator()

var fieldLabels = map[string]string{
	"id":       "Employee ID",
	"name":     "Name",
	"email":    "Email",
	"username": "Username",
	"password": "Password",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req := sl.Current().Interface().(updateEmployeeRequest)
		if req.SupervisorID != nil && *req.SupervisorID == req.ID {
			sl.ReportError(req.SupervisorID, "supervisorId", "SupervisorID", tagNotSelf, "")
		}
	}, updateEmployeeRequest{})

	return v
}

// validateRequest runs struct tag rules on req and returns a validation apperror
// carrying per-field messages.
func validateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("validate request: %w", err)
	}

	fields := make(map[string][]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	return apperror.Validation(validationFailedMessage, fields)
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.StructField()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	case "email":
		return "Invalid email format"
	case tagNotSelf:
		return selfSupervisionMessage
	default:
		return label + " is invalid"
	}
}
