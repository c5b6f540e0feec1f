package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the lifecycle state of a generation job
type JobStatus string

// Possible job status values
const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusError      JobStatus = "error"
)

// Progress notes recorded on a job as it moves through its lifecycle.
const (
	ProgressCreated    = "Job created"
	ProgressGenerating = "Generating flashcards"
	ProgressCompleted  = "Processing completed"
	ProgressFailed     = "Processing failed"
)

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusError:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible from s.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusError
}

// Job tracks one asynchronous flashcard generation.
//
// Lifecycle: pending -> processing -> completed | error. A terminal job holds
// exactly one of Result or ErrorMessage.
type Job struct {
	ID             uuid.UUID      `json:"job_id"`
	Input          string         `json:"-"`
	Status         JobStatus      `json:"status"`
	Progress       string         `json:"progress"`
	Result         *Payload       `json:"result,omitempty"`
	ErrorMessage   string         `json:"error_message,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	StartedAt      *time.Time     `json:"started_at,omitempty"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
	ProcessingTime *time.Duration `json:"processing_time,omitempty"`
}

// NewJob creates a pending job for the given input text.
func NewJob(input string) (*Job, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}

	return &Job{
		ID:        uuid.New(),
		Input:     input,
		Status:    JobStatusPending,
		Progress:  ProgressCreated,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Start moves a pending job to processing.
func (j *Job) Start(progress string, now time.Time) error {
	if j.Status != JobStatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, j.Status, JobStatusProcessing)
	}

	started := now.UTC()
	j.Status = JobStatusProcessing
	j.Progress = progress
	j.StartedAt = &started
	return nil
}

// Complete moves a processing job to completed with its result.
func (j *Job) Complete(result *Payload, now time.Time, elapsed time.Duration) error {
	if j.Status != JobStatusProcessing {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, j.Status, JobStatusCompleted)
	}
	if result == nil {
		return ErrMissingResult
	}

	completed := now.UTC()
	j.Status = JobStatusCompleted
	j.Progress = ProgressCompleted
	j.Result = result
	j.ErrorMessage = ""
	j.CompletedAt = &completed
	j.ProcessingTime = &elapsed
	return nil
}

// Fail moves a processing job to error. A blank message is replaced so that
// failed jobs always explain themselves.
func (j *Job) Fail(message string, now time.Time) error {
	if j.Status != JobStatusProcessing {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, j.Status, JobStatusError)
	}
	if strings.TrimSpace(message) == "" {
		message = "unknown error"
	}

	completed := now.UTC()
	j.Status = JobStatusError
	j.Progress = ProgressFailed
	j.Result = nil
	j.ErrorMessage = message
	j.CompletedAt = &completed
	return nil
}

// Validate checks the job's invariants.
func (j *Job) Validate() error {
	if j.ID == uuid.Nil {
		return fmt.Errorf("%w: job ID", ErrInvalidID)
	}
	if !j.Status.Valid() {
		return ErrInvalidJobStatus
	}

	switch j.Status {
	case JobStatusCompleted:
		if j.Result == nil || j.ErrorMessage != "" {
			return fmt.Errorf("%w: completed job must hold only a result", ErrValidation)
		}
	case JobStatusError:
		if j.Result != nil || j.ErrorMessage == "" {
			return fmt.Errorf("%w: failed job must hold only an error", ErrValidation)
		}
	}

	return nil
}

// Clone returns a deep copy of the job. Readers outside the store only ever
// see clones.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	c := *j
	c.Result = j.Result.Clone()
	if j.StartedAt != nil {
		t := *j.StartedAt
		c.StartedAt = &t
	}
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		c.CompletedAt = &t
	}
	if j.ProcessingTime != nil {
		d := *j.ProcessingTime
		c.ProcessingTime = &d
	}
	return &c
}
