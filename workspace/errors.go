package workspace

import (
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/eoplatform/workspace-api/metrics"
)

// ErrForbidden is returned whenever a permission check or a session-mode
// policy refuses an operation. It intentionally carries no detail about
// which permission was missing.
var ErrForbidden = errors.New("forbidden")

// NotFoundError reports an absent workspace.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return "workspace doesn't exist"
	}
	return fmt.Sprintf("workspace %s doesn't exist", e.Name)
}

// ConflictError reports a naming collision or an optimistic-concurrency
// loss that survived the local retry budget. It maps to a retryable 409.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries structured field-level messages for a 422.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// UnavailableError wraps a failure to reach the cluster API server.
// It is retryable and never silently swallowed.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return "cluster api unavailable: " + e.Err.Error()
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsUnavailable(err error) bool {
	var e *UnavailableError
	return errors.As(err, &e)
}

// classify maps an error coming back from the cluster into the domain
// taxonomy. Domain errors (for example a validation error returned from a
// mutate callback) pass through untouched.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if IsNotFound(err) || IsConflict(err) || IsValidation(err) || IsForbidden(err) || IsUnavailable(err) {
		return err
	}
	switch {
	case apierrors.IsConflict(err):
		// The bounded retry in the store already ran; the caller gets a
		// retryable 409.
		metrics.IncrementConflictRetriesExhausted()
		return &ConflictError{Reason: "conflicting concurrent update, retry"}
	case apierrors.IsAlreadyExists(err):
		return &ConflictError{Reason: err.Error()}
	case apierrors.IsNotFound(err):
		return &NotFoundError{Name: ""}
	default:
		// Anything else means the API server could not serve us.
		return &UnavailableError{Err: err}
	}
}
