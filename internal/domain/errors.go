package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an AppError for HTTP mapping and logging.
type ErrorKind string

const (
	KindInvalidInput     ErrorKind = "invalid_input"
	KindNotFound         ErrorKind = "not_found"
	KindConflict         ErrorKind = "conflict"
	KindDuplicateBooking ErrorKind = "duplicate_booking"
	KindDiscountRejected ErrorKind = "discount_rejected"
	KindConfiguration    ErrorKind = "configuration"
	KindUpstream         ErrorKind = "upstream_unavailable"
	KindInvalidState     ErrorKind = "invalid_state"
	KindForbidden        ErrorKind = "forbidden"
	KindInternal         ErrorKind = "internal"
)

// AppError is the structured error type carried across service boundaries.
// Business-rule failures are values of this type, never panics.
type AppError struct {
	Kind    ErrorKind
	Message string
	// Reason carries a machine-readable reason code for rejections that
	// have more than one cause (discount validation).
	Reason string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidationError creates an AppError for malformed client input.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: message}
}

// NewNotFoundError creates an AppError for a missing resource.
func NewNotFoundError(resource, id string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %s", resource, id)}
}

// NewConflictError creates an AppError for a uniqueness or concurrency conflict.
func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewDuplicateBookingError creates the business-rule rejection for a repeated
// submission (same email, same scheduled date, same service line).
func NewDuplicateBookingError(message string) *AppError {
	return &AppError{Kind: KindDuplicateBooking, Message: message}
}

// NewDiscountRejectedError creates an AppError carrying a discount reason code.
func NewDiscountRejectedError(reason, message string) *AppError {
	return &AppError{Kind: KindDiscountRejected, Reason: reason, Message: message}
}

// NewConfigurationError creates an AppError for missing operator-seeded data.
// Not retryable by the caller.
func NewConfigurationError(message string) *AppError {
	return &AppError{Kind: KindConfiguration, Message: message}
}

// NewUpstreamError creates an AppError for an external provider failure.
// Retryable by the caller after a delay.
func NewUpstreamError(message string) *AppError {
	return &AppError{Kind: KindUpstream, Message: message}
}

// NewInvalidStateError creates an AppError for an illegal status transition.
func NewInvalidStateError(from, to string) *AppError {
	return &AppError{Kind: KindInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewForbiddenError creates an AppError for an operation the principal may not perform.
func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

// NewInternalError wraps an unexpected failure as a generic internal error.
func NewInternalError(message string) *AppError {
	return &AppError{Kind: KindInternal, Message: message}
}

// AsAppError unwraps err to an *AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the ErrorKind of err, or KindInternal for unclassified errors.
func KindOf(err error) ErrorKind {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// PaginatedResult wraps a page of items with pagination metadata.
type PaginatedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// NewPaginatedResult creates a PaginatedResult from a page of items.
func NewPaginatedResult[T any](items []T, total int64, page, limit int) PaginatedResult[T] {
	return PaginatedResult[T]{Items: items, Total: total, Page: page, Limit: limit}
}
