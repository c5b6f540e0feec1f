package generation

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Common errors returned by the generation package
var (
	// ErrInvalidConfig is returned when the client or a backend is misconfigured
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrBackendUnavailable is returned when the backend answers with a non-success status
	ErrBackendUnavailable = errors.New("generation backend unavailable")

	// ErrInvalidResponse is returned when the backend reply cannot be read
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the backend refuses the prompt on safety grounds
	ErrContentBlocked = errors.New("content blocked by language model safety filters")
)

// maxErrorBodyLength bounds how much of a failed response body is kept.
const maxErrorBodyLength = 200

// StatusError reports a backend reply with a non-2xx HTTP status.
type StatusError struct {
	Backend    string
	StatusCode int
	Body       string
}

// NewStatusError creates a StatusError, truncating long bodies.
func NewStatusError(backend string, statusCode int, body string) *StatusError {
	if len(body) > maxErrorBodyLength {
		cut := maxErrorBodyLength
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "..."
	}
	return &StatusError{
		Backend:    backend,
		StatusCode: statusCode,
		Body:       body,
	}
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s backend returned status %d", e.Backend, e.StatusCode)
	}
	return fmt.Sprintf("%s backend returned status %d: %s", e.Backend, e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match ErrBackendUnavailable.
func (e *StatusError) Unwrap() error {
	return ErrBackendUnavailable
}
