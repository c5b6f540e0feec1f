package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyCandidates is returned when Gemini returns no usable candidate.
	ErrEmptyCandidates = errors.New("gemini returned no content")
)
