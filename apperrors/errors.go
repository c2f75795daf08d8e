// Package apperrors defines the error taxonomy shared by the cart,
// pricing, order lifecycle and review components. Handlers translate
// these into HTTP responses; nothing in here knows about gin.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError means the input itself is malformed (non-positive
// quantity, out-of-range rating). Checked before any mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AuthorizationError means the acting user does not own the resource.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}

// InvalidStateError means the operation is not legal in the resource's
// current lifecycle state (e.g. reviewing a pending order).
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string { return e.Message }

func NewInvalidStateError(message string) error {
	return &InvalidStateError{Message: message}
}

// InvalidTransitionError means a status change is not in the order
// state machine's transition table.
type InvalidTransitionError struct {
	Message string
}

func (e *InvalidTransitionError) Error() string { return e.Message }

func NewInvalidTransitionError(message string) error {
	return &InvalidTransitionError{Message: message}
}

// DuplicateError is a unique-constraint violation, e.g. a second
// review for the same order.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string { return e.Message }

func NewDuplicateError(message string) error {
	return &DuplicateError{Message: message}
}

// NotFoundError means a referenced identifier does not resolve.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func NewNotFoundError(resource string, id uint) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// CheckoutError wraps a persistence failure during the atomic
// multi-order checkout write. The transaction has been rolled back.
type CheckoutError struct {
	Err error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout failed: %v", e.Err)
}

func (e *CheckoutError) Unwrap() error { return e.Err }

func NewCheckoutError(err error) error {
	return &CheckoutError{Err: err}
}

// StatusCode maps a taxonomy error to the HTTP status handlers
// should respond with. Unknown errors map to 500.
func StatusCode(err error) int {
	var (
		validation *ValidationError
		authz      *AuthorizationError
		state      *InvalidStateError
		transition *InvalidTransitionError
		duplicate  *DuplicateError
		notFound   *NotFoundError
		checkout   *CheckoutError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &authz):
		return http.StatusForbidden
	case errors.As(err, &state), errors.As(err, &transition):
		return http.StatusUnprocessableEntity
	case errors.As(err, &duplicate):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &checkout):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
