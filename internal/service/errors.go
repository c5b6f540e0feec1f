package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scry-cards/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is.
var (
	// ErrJobNotFound indicates that no job exists with the given ID.
	// API layer should map this to HTTP 404 Not Found.
	ErrJobNotFound = errors.New("job not found")

	// ErrJobNotReady indicates that a result was requested before the job completed.
	// API layer should map this to HTTP 400 Bad Request.
	ErrJobNotReady = errors.New("job not completed yet")

	// ErrNoResult indicates that a completed job carries no result.
	// API layer should map this to HTTP 404 Not Found.
	ErrNoResult = errors.New("no result found")
)

// JobServiceError wraps errors from the job service with context.
type JobServiceError struct {
	// Operation is the operation that failed (e.g., "create_job", "get_result")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for JobServiceError.
func (e *JobServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("job service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("job service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *JobServiceError) Unwrap() error {
	return e.Err
}

// NewJobServiceError creates a new JobServiceError.
// It returns known sentinel errors directly without wrapping.
func NewJobServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrJobNotFound) || errors.Is(err, store.ErrJobNotFound) {
		return ErrJobNotFound
	}

	return &JobServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
