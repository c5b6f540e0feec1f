package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cards/internal/domain"
)

// JobStore defines the interface for job persistence.
//
// Implementations must be safe for concurrent use. Jobs handed out by Get and
// List are copies; changes to them are only persisted through Update.
type JobStore interface {
	// Create saves a new job.
	// Returns ErrJobExists if a job with the same ID is already stored.
	// Returns ErrInvalidEntity if the job fails validation.
	Create(ctx context.Context, job *domain.Job) error

	// Get retrieves a job by its ID.
	// Returns ErrJobNotFound if the job does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Job, error)

	// Update applies fn to the stored job atomically.
	// fn receives a copy; the copy replaces the stored job only when fn
	// returns nil and the result passes validation.
	// Returns ErrJobNotFound if the job does not exist.
	Update(ctx context.Context, id uuid.UUID, fn func(job *domain.Job) error) (*domain.Job, error)

	// List returns jobs newest first. A limit of zero or less returns every job.
	List(ctx context.Context, limit int) ([]*domain.Job, error)

	// Count returns the number of jobs per status.
	Count(ctx context.Context) (map[domain.JobStatus]int, error)
}
