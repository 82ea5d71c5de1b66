package services

import (
	"errors"
	"strings"
)

// Service-level failure kinds. The HTTP layer owns the single mapping
// from these to response statuses.
var (
	// ErrEmailTaken signals a registration conflict on the email.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidCredentials covers every login failure with one
	// message so callers cannot distinguish unknown email from wrong
	// password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden signals a failed role or ownership check.
	ErrForbidden = errors.New("access denied")

	// ErrUploadFailed signals an I/O failure while storing an upload.
	ErrUploadFailed = errors.New("failed to upload file")
)

// FieldError describes one failed DTO constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the failed constraints of one request
// body.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Fields))
	for i, field := range e.Fields {
		messages[i] = field.Message
	}
	return strings.Join(messages, "; ")
}

// validationError builds a *ValidationError, or nil when no
// constraint failed.
func validationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
