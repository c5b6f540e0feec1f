package task

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cards/internal/generation"
	"github.com/phrazzld/scry-cards/internal/store"
)

// FlashcardGenerationTaskFactory creates FlashcardGenerationTask instances
type FlashcardGenerationTaskFactory struct {
	jobs      store.JobStore
	generator generation.Generator
	logger    *slog.Logger
}

// NewFlashcardGenerationTaskFactory creates a new factory for FlashcardGenerationTasks
func NewFlashcardGenerationTaskFactory(
	jobs store.JobStore,
	generator generation.Generator,
	logger *slog.Logger,
) *FlashcardGenerationTaskFactory {
	return &FlashcardGenerationTaskFactory{
		jobs:      jobs,
		generator: generator,
		logger:    logger.With("component", "flashcard_generation_task_factory"),
	}
}

// CreateTask creates a new FlashcardGenerationTask for the specified job
func (f *FlashcardGenerationTaskFactory) CreateTask(jobID uuid.UUID) (Task, error) {
	task, err := NewFlashcardGenerationTask(jobID, f.jobs, f.generator, f.logger)
	if err != nil {
		return nil, err
	}
	return task, nil
}
