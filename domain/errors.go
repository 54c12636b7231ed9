package domain

import (
	"errors"
	"fmt"
	"time"
)

// InvalidQueryError indicates an empty or malformed query. It is returned to
// the caller and is not logged as a fault.
type InvalidQueryError struct {
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return "invalid query: " + e.Reason
}

// NewInvalidQueryError creates an InvalidQueryError with the given reason.
func NewInvalidQueryError(reason string) *InvalidQueryError {
	return &InvalidQueryError{Reason: reason}
}

// IsInvalidQuery reports whether err is an InvalidQueryError.
func IsInvalidQuery(err error) bool {
	var iq *InvalidQueryError
	return errors.As(err, &iq)
}

// RateLimitError indicates the client exceeded its sliding-window budget.
// RetryAfter is a hint for when the window frees up.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// IsRateLimit reports whether err is a RateLimitError.
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// SanitizationError indicates a content field could not be made safe.
// The field is excluded from the index (fail closed) and the failure is
// logged; raw content never reaches a search consumer.
type SanitizationError struct {
	Field  string
	Reason string
}

func (e *SanitizationError) Error() string {
	return fmt.Sprintf("sanitization failed for field %s: %s", e.Field, e.Reason)
}

// IsSanitizationFailure reports whether err is a SanitizationError.
func IsSanitizationFailure(err error) bool {
	var se *SanitizationError
	return errors.As(err, &se)
}

// IndexSyncError represents a write-path failure while syncing the index.
// It is retried with backoff and must never abort the content save or
// delete that triggered it.
type IndexSyncError struct {
	Op  string
	Err string
}

func (e *IndexSyncError) Error() string {
	return e.Op + ": " + e.Err
}

// RepositoryError represents an error from the repository layer.
type RepositoryError struct {
	Op  string
	Err string
}

func (e *RepositoryError) Error() string {
	return e.Op + ": " + e.Err
}

// DriverError represents an error from the driver layer.
type DriverError struct {
	Op  string
	Err string
}

func (e *DriverError) Error() string {
	return e.Op + ": " + e.Err
}
