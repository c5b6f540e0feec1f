package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/generation"
	"github.com/phrazzld/scry-cards/internal/store"
)

// FlashcardGenerationTask implements the Task interface for generating
// flashcards for a stored job. The task ID is the job ID.
type FlashcardGenerationTask struct {
	jobID     uuid.UUID
	jobs      store.JobStore
	generator generation.Generator
	logger    *slog.Logger
}

// NewFlashcardGenerationTask creates a new flashcard generation task
func NewFlashcardGenerationTask(
	jobID uuid.UUID,
	jobs store.JobStore,
	generator generation.Generator,
	logger *slog.Logger,
) (*FlashcardGenerationTask, error) {
	if jobs == nil {
		return nil, ErrNilJobStore
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if jobID == uuid.Nil {
		return nil, ErrEmptyJobID
	}

	return &FlashcardGenerationTask{
		jobID:     jobID,
		jobs:      jobs,
		generator: generator,
		logger:    logger.With("task_type", TaskTypeFlashcardGeneration, "job_id", jobID),
	}, nil
}

// ID returns the task's unique identifier
func (t *FlashcardGenerationTask) ID() uuid.UUID {
	return t.jobID
}

// Type returns the task type identifier
func (t *FlashcardGenerationTask) Type() string {
	return TaskTypeFlashcardGeneration
}

// Execute moves the job to processing, runs generation and records the
// outcome. A failed generation or a panic leaves the job in the error state
// and is reported as ErrGenerationFailed.
func (t *FlashcardGenerationTask) Execute(ctx context.Context) error {
	t.logger.Info("starting flashcard generation task")

	job, err := t.jobs.Update(ctx, t.jobID, func(j *domain.Job) error {
		return j.Start(domain.ProgressGenerating, time.Now())
	})
	if err != nil {
		t.logger.Error("failed to mark job as processing", "error", err)
		return fmt.Errorf("failed to start job: %w", err)
	}

	started := time.Now()
	result, err := t.generate(ctx, job.Input)
	if err != nil {
		return t.fail(ctx, err.Error())
	}
	if !result.Success {
		return t.fail(ctx, result.Diagnostic)
	}

	elapsed := time.Since(started)
	payload := domain.NewPayload(job.Input, result)

	_, err = t.jobs.Update(ctx, t.jobID, func(j *domain.Job) error {
		return j.Complete(payload, time.Now(), elapsed)
	})
	if err != nil {
		t.logger.Error("failed to mark job as completed", "error", err)
		return fmt.Errorf("failed to complete job: %w", err)
	}

	t.logger.Info("flashcard generation task completed",
		"cards_generated", len(payload.ParsedCards),
		"parse_mode", payload.JSONParseMode,
		"duration_ms", elapsed.Milliseconds())
	return nil
}

// generate calls the generator and converts a panic into an error.
func (t *FlashcardGenerationTask) generate(ctx context.Context, input string) (result domain.GenerationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("generator panicked", "panic", r)
			err = fmt.Errorf("generator panicked: %v", r)
		}
	}()
	return t.generator.Generate(ctx, input), nil
}

// fail moves the job to the error state with message.
func (t *FlashcardGenerationTask) fail(ctx context.Context, message string) error {
	t.logger.Warn("flashcard generation failed", "reason", message)

	failErr := fmt.Errorf("%w: %s", ErrGenerationFailed, message)
	_, err := t.jobs.Update(ctx, t.jobID, func(j *domain.Job) error {
		return j.Fail(message, time.Now())
	})
	if err != nil {
		t.logger.Error("failed to mark job as failed", "error", err)
		return errors.Join(failErr, fmt.Errorf("failed to record job failure: %w", err))
	}
	return failErr
}
