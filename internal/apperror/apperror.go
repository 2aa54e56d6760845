// Package apperror defines the application's error taxonomy.
//
// Services return these errors; the HTTP layer maps each sentinel to a
// status code and a stable machine-readable error type. Every pipeline
// stage fails fast: a render failure never reaches storage, a storage
// failure never touches the stored pointer.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrRender          = errors.New("render failure")
	ErrStorage         = errors.New("storage failure")
	ErrDelivery        = errors.New("delivery failure")
)

type AppError struct {
	Err     error  // sentinel classifying the failure
	Message string // human-readable error message
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %v", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden covers both ownership failures and entitlement failures.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// RenderFailed wraps a renderer error. Nothing is stored when this occurs.
func RenderFailed(err error) *AppError {
	return &AppError{
		Err:     ErrRender,
		Message: fmt.Sprintf("rendering plan document: %v", err),
	}
}

// StorageFailed wraps an artifact store upload or fetch error. The stored
// pointer on the owning record is guaranteed untouched.
func StorageFailed(op string, err error) *AppError {
	return &AppError{
		Err:     ErrStorage,
		Message: fmt.Sprintf("artifact storage %s failed: %v", op, err),
	}
}

// DeliveryFailed wraps an email send error. Delivery is at-most-once;
// the caller decides whether to retry.
func DeliveryFailed(err error) *AppError {
	return &AppError{
		Err:     ErrDelivery,
		Message: fmt.Sprintf("sending plan email: %v", err),
	}
}
