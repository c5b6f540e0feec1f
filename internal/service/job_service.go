package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/events"
	"github.com/phrazzld/scry-cards/internal/generation"
	"github.com/phrazzld/scry-cards/internal/store"
)

// JobResult is the outcome of a completed job.
type JobResult struct {
	JobID          uuid.UUID
	Payload        *domain.Payload
	ProcessingTime time.Duration
}

// SyncResult is the outcome of a synchronous generation.
type SyncResult struct {
	Payload        *domain.Payload
	ProcessingTime time.Duration
	Success        bool
}

// JobService provides flashcard generation operations
type JobService interface {
	// CreateJob stores a pending job for text and schedules it for background
	// processing. It returns without waiting for generation.
	CreateJob(ctx context.Context, text string) (*domain.Job, error)

	// GetStatus returns a snapshot of the job.
	GetStatus(ctx context.Context, jobID uuid.UUID) (*domain.Job, error)

	// GetResult returns the payload of a completed job.
	GetResult(ctx context.Context, jobID uuid.UUID) (*JobResult, error)

	// GenerateNow runs a generation in the caller's goroutine without creating a job.
	GenerateNow(ctx context.Context, text string) (*SyncResult, error)

	// ListJobs returns up to limit job snapshots, newest first.
	ListJobs(ctx context.Context, limit int) ([]*domain.Job, error)

	// CountJobs returns the number of jobs per status.
	CountJobs(ctx context.Context) (map[domain.JobStatus]int, error)
}

// jobServiceImpl implements the JobService interface
type jobServiceImpl struct {
	jobs         store.JobStore
	generator    generation.Generator
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewJobService creates a new JobService
// It returns an error if any of the required dependencies are nil.
func NewJobService(
	jobs store.JobStore,
	generator generation.Generator,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (JobService, error) {
	if jobs == nil {
		return nil, &JobServiceError{Operation: "create_service", Message: "jobs cannot be nil"}
	}
	if generator == nil {
		return nil, &JobServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &JobServiceError{Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &jobServiceImpl{
		jobs:         jobs,
		generator:    generator,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "job_service"),
	}, nil
}

// CreateJob creates a pending job and emits an event so that it gets processed.
// If the event cannot be delivered the job is moved straight to the error
// state, so that no job stays pending with nothing to run it.
func (s *jobServiceImpl) CreateJob(ctx context.Context, text string) (*domain.Job, error) {
	job, err := domain.NewJob(text)
	if err != nil {
		return nil, err
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		s.logger.Error("failed to store job", "error", err, "job_id", job.ID)
		return nil, NewJobServiceError("create_job", "failed to store job", err)
	}

	event, err := events.NewJobEvent(job.ID)
	if err == nil {
		err = s.eventEmitter.EmitEvent(ctx, event)
	}
	if err != nil {
		s.logger.Error("failed to schedule job", "error", err, "job_id", job.ID)
		s.abandon(ctx, job.ID, err)
		return nil, NewJobServiceError("create_job", "failed to schedule job", err)
	}

	s.logger.Info("job created",
		"job_id", job.ID,
		"input_length", len(text),
		"event_id", event.ID)

	return job.Clone(), nil
}

// abandon records a scheduling failure on a job that never started.
func (s *jobServiceImpl) abandon(ctx context.Context, jobID uuid.UUID, cause error) {
	message := fmt.Sprintf("failed to schedule job: %v", cause)
	_, err := s.jobs.Update(ctx, jobID, func(j *domain.Job) error {
		if j.Status != domain.JobStatusPending {
			return nil
		}
		now := time.Now()
		if err := j.Start(domain.ProgressGenerating, now); err != nil {
			return err
		}
		return j.Fail(message, now)
	})
	if err != nil {
		s.logger.Error("failed to mark unscheduled job as failed", "error", err, "job_id", jobID)
	}
}

// GetStatus retrieves a job snapshot by its ID
func (s *jobServiceImpl) GetStatus(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		if !errors.Is(err, store.ErrJobNotFound) {
			s.logger.Error("failed to retrieve job", "error", err, "job_id", jobID)
		}
		return nil, NewJobServiceError("get_status", "failed to retrieve job", err)
	}
	return job, nil
}

// GetResult returns the payload of a completed job.
func (s *jobServiceImpl) GetResult(ctx context.Context, jobID uuid.UUID) (*JobResult, error) {
	job, err := s.GetStatus(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if job.Status != domain.JobStatusCompleted {
		return nil, ErrJobNotReady
	}
	if job.Result == nil {
		return nil, ErrNoResult
	}

	result := &JobResult{JobID: job.ID, Payload: job.Result}
	if job.ProcessingTime != nil {
		result.ProcessingTime = *job.ProcessingTime
	}
	return result, nil
}

// GenerateNow calls the generator directly and wraps its result in a payload.
// A failed generation is not an error here: the payload still renders and
// Success reports the failure.
func (s *jobServiceImpl) GenerateNow(ctx context.Context, text string) (*SyncResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyInput
	}

	start := time.Now()
	result := s.generator.Generate(ctx, text)
	elapsed := time.Since(start)

	s.logger.Info("synchronous generation finished",
		"success", result.Success,
		"parse_mode", result.ParseMode,
		"cards", len(result.Cards),
		"duration_ms", elapsed.Milliseconds())

	return &SyncResult{
		Payload:        domain.NewPayload(text, result),
		ProcessingTime: elapsed,
		Success:        result.Success,
	}, nil
}

// ListJobs returns job snapshots, newest first.
func (s *jobServiceImpl) ListJobs(ctx context.Context, limit int) ([]*domain.Job, error) {
	jobs, err := s.jobs.List(ctx, limit)
	if err != nil {
		return nil, NewJobServiceError("list_jobs", "failed to list jobs", err)
	}
	return jobs, nil
}

// CountJobs returns the number of jobs per status.
func (s *jobServiceImpl) CountJobs(ctx context.Context) (map[domain.JobStatus]int, error) {
	counts, err := s.jobs.Count(ctx)
	if err != nil {
		return nil, NewJobServiceError("count_jobs", "failed to count jobs", err)
	}
	return counts, nil
}
