package apperror

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation   Code = "validation"
	CodeNotFound     Code = "not_found"
	CodeUnauthorized Code = "unauthorized"
	CodeConflict     Code = "conflict"
	CodeInternal     Code = "internal"
)

// Error is a classified failure that the HTTP layer translates into a status code.
// Fields carries per-field messages for input validation failures.
type Error struct {
	Code    Code
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func NotFound(entity string, key any) *Error {
	return New(CodeNotFound, fmt.Sprintf("Entity %q (%v) was not found.", entity, key))
}

func Validation(message string, fields map[string][]string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: message,
		Fields:  fields,
	}
}

func GetCode(err error) Code {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}

func GetFields(err error) map[string][]string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}
