package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/platform/logger"
	"github.com/phrazzld/scry-cards/internal/store"
)

// JobStore implements store.JobStore with a map guarded by a RWMutex.
type JobStore struct {
	mu     sync.RWMutex
	jobs   map[uuid.UUID]*domain.Job
	logger *slog.Logger
}

// Ensure JobStore implements store.JobStore interface
var _ store.JobStore = (*JobStore)(nil)

// NewJobStore creates an empty JobStore. If logger is nil, slog.Default() is used.
func NewJobStore(l *slog.Logger) *JobStore {
	if l == nil {
		l = slog.Default()
	}
	return &JobStore{
		jobs:   make(map[uuid.UUID]*domain.Job),
		logger: l.With(slog.String("component", "job_store")),
	}
}

// Create implements store.JobStore.Create
func (s *JobStore) Create(ctx context.Context, job *domain.Job) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if job == nil {
		return fmt.Errorf("%w: nil job", store.ErrInvalidEntity)
	}
	if err := job.Validate(); err != nil {
		log.Warn("job validation failed during create",
			slog.String("error", err.Error()),
			slog.String("job_id", job.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return store.ErrJobExists
	}
	s.jobs[job.ID] = job.Clone()

	log.Debug("job stored",
		slog.String("job_id", job.ID.String()),
		slog.String("status", string(job.Status)))
	return nil
}

// Get implements store.JobStore.Get
func (s *JobStore) Get(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrJobNotFound
	}
	return job.Clone(), nil
}

// Update implements store.JobStore.Update
func (s *JobStore) Update(
	ctx context.Context,
	id uuid.UUID,
	fn func(job *domain.Job) error,
) (*domain.Job, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.jobs[id]
	if !ok {
		return nil, store.ErrJobNotFound
	}

	updated := current.Clone()
	if err := fn(updated); err != nil {
		return nil, store.NewStoreError("job", "update", "update function failed",
			fmt.Errorf("%w: %w", store.ErrUpdateFailed, err))
	}
	if updated.ID != id {
		return nil, store.NewStoreError("job", "update", "job ID cannot change", store.ErrInvalidEntity)
	}
	if err := updated.Validate(); err != nil {
		log.Warn("job validation failed during update",
			slog.String("error", err.Error()),
			slog.String("job_id", id.String()))
		return nil, store.NewStoreError("job", "update", "validation failed",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	s.jobs[id] = updated
	return updated.Clone(), nil
}

// List implements store.JobStore.List
func (s *JobStore) List(ctx context.Context, limit int) ([]*domain.Job, error) {
	s.mu.RLock()
	jobs := make([]*domain.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID.String() < jobs[j].ID.String()
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})

	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

// Count implements store.JobStore.Count
func (s *JobStore) Count(ctx context.Context) (map[domain.JobStatus]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[domain.JobStatus]int{
		domain.JobStatusPending:    0,
		domain.JobStatusProcessing: 0,
		domain.JobStatusCompleted:  0,
		domain.JobStatusError:      0,
	}
	for _, job := range s.jobs {
		counts[job.Status]++
	}
	return counts, nil
}
