package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyInput is returned when a generation is requested for blank text.
	ErrEmptyInput = errors.New("input text cannot be empty")

	// ErrInvalidJobStatus is returned when a job status is not one of the known values.
	ErrInvalidJobStatus = errors.New("invalid job status")

	// ErrInvalidTransition is returned when a job is moved between two states
	// that the lifecycle does not connect (for example completed -> processing).
	ErrInvalidTransition = errors.New("invalid job status transition")

	// ErrMissingResult is returned when a job is completed without a payload.
	ErrMissingResult = errors.New("completed job requires a result")
)
