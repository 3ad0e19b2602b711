package domain

import (
	"errors"
	"fmt"
)

// Entity names used in not-found errors. The request service reports the
// counterparty before the property, so the name in the error identifies
// which reference failed.
const (
	EntityCounterparty = "counterparty"
	EntityProperty     = "property"
	EntityRequest      = "request"
)

// ErrNoRequests is returned by the min-amount analytics query when the
// request collection is empty: there is no minimum to report.
var ErrNoRequests = errors.New("no requests recorded")

// NotFoundError reports an entity id that did not resolve. It covers both
// direct lookups and referential checks on request create/update.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity kind and id.
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ValidationError reports malformed input: missing fields, unknown enum
// values, non-positive amounts. Callers correct and resubmit; it is never
// retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidation builds a ValidationError from a format string.
func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
