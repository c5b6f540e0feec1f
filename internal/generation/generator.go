package generation

import (
	"context"

	"github.com/phrazzld/scry-cards/internal/domain"
)

// Generator defines the interface for generating flashcards from text.
// This interface serves as a boundary between the application core and
// the language model backend.
type Generator interface {
	// Generate asks the backend for flashcards about input.
	//
	// It never fails: a backend error or an unparseable reply is reported
	// through the Success, ParseMode, Method and Diagnostic fields of the
	// returned result.
	Generate(ctx context.Context, input string) domain.GenerationResult
}

// CompletionRequest is a single prompt sent to a Backend.
type CompletionRequest struct {
	Prompt      string
	Temperature float64
}

// Backend is a text-completion service. Implementations return
// *StatusError for non-2xx replies and any other error for transport
// failures; they do not retry.
type Backend interface {
	// Name identifies the backend in logs and diagnostics.
	Name() string

	// Complete sends one prompt and returns the raw completion text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Pinger is implemented by backends that can report their own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
