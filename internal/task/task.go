package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cards/internal/events"
)

// Task type constants
const (
	// TaskTypeFlashcardGeneration generates flashcards for one job.
	TaskTypeFlashcardGeneration = events.TypeFlashcardGeneration
)

// Common errors
var (
	ErrNilJobStore      = errors.New("job store cannot be nil")
	ErrNilGenerator     = errors.New("generator cannot be nil")
	ErrNilLogger        = errors.New("logger cannot be nil")
	ErrEmptyJobID       = errors.New("job ID cannot be empty")
	ErrRunnerNotStarted = errors.New("task runner not started")
	ErrRunnerStopped    = errors.New("task runner stopped")

	// ErrGenerationFailed is returned by Execute when the job ended in the error state.
	ErrGenerationFailed = errors.New("flashcard generation failed")
)

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}
