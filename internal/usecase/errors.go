package usecase

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds for prediction usecases
var (
	ErrValidation      = errors.New("validation error")
	ErrModel           = errors.New("model error")
	ErrExternalService = errors.New("external service error")
	ErrSerialization   = errors.New("serialization error")
)

// ValidationError is a client-side input problem. Message is shown to the caller verbatim.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Unwrap() error        { return e.Err }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ModelError is a classifier failure
type ModelError struct {
	Message string
	Err     error
}

func (e *ModelError) Error() string        { return e.Message }
func (e *ModelError) Unwrap() error        { return e.Err }
func (e *ModelError) Is(target error) bool { return target == ErrModel }

// ExternalServiceError is a text-generation call failure
type ExternalServiceError struct {
	Message string
	Err     error
}

func (e *ExternalServiceError) Error() string        { return e.Message }
func (e *ExternalServiceError) Unwrap() error        { return e.Err }
func (e *ExternalServiceError) Is(target error) bool { return target == ErrExternalService }

// SerializationError means a result could not be turned into a response body
type SerializationError struct {
	Message string
	Err     error
}

func (e *SerializationError) Error() string        { return e.Message }
func (e *SerializationError) Unwrap() error        { return e.Err }
func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }

// NewMissingFieldsError reports absent required fields
func NewMissingFieldsError(fields []string) *ValidationError {
	return &ValidationError{Message: "Missing required fields: " + strings.Join(fields, ", ")}
}

func newModelError(err error) *ModelError {
	return &ModelError{Message: fmt.Sprintf("Prediction failed: %v", err), Err: err}
}

func newExternalServiceError(err error) *ExternalServiceError {
	return &ExternalServiceError{Message: fmt.Sprintf("Error from AI service: %v", err), Err: err}
}

// ErrorKind returns a short label for err, used in metrics
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrModel):
		return "model"
	case errors.Is(err, ErrExternalService):
		return "external"
	case errors.Is(err, ErrSerialization):
		return "serialization"
	default:
		return "internal"
	}
}
