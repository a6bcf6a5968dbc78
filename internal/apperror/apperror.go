package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports an absent object or record.
type NotFoundError struct {
	Resource string
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s does not exist", e.Resource, e.Name)
}

func NewNotFoundError(resource, name string) *NotFoundError {
	return &NotFoundError{Resource: resource, Name: name}
}

// StorageError wraps a failed object storage call.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ExtractionError wraps a failed PDF fetch or parse.
type ExtractionError struct {
	Key string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from PDF %s: %v", e.Key, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ModelCallError is returned once the language-model retry budget is spent.
// Message is the most specific text available, Details the raw upstream error body.
type ModelCallError struct {
	Message  string
	Attempts int
	Details  any
	Err      error
}

func (e *ModelCallError) Error() string {
	return e.Message
}

func (e *ModelCallError) Unwrap() error { return e.Err }

// StatusCode maps an error to the HTTP status the handlers answer with.
func StatusCode(err error) int {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		fiberErr      *fiber.Error
	)
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// Details returns the upstream error body carried by err, if any.
func Details(err error) any {
	var modelErr *ModelCallError
	if errors.As(err, &modelErr) {
		return modelErr.Details
	}
	return nil
}
