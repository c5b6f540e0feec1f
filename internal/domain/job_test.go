package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func samplePayload() *Payload {
	return NewPayload("explain recursion", GenerationResult{
		RawOutput: "[]",
		Cards:     []Card{{Question: "Q", Answer: "A"}},
		ParseMode: ParseModeStrict,
		Method:    MethodDirectBackend,
		Success:   true,
	})
}

func TestNewJob(t *testing.T) {
	t.Parallel()

	job, err := NewJob("explain recursion")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if job.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if job.Status != JobStatusPending {
		t.Errorf("Expected status %q, got %q", JobStatusPending, job.Status)
	}
	if job.Progress != ProgressCreated {
		t.Errorf("Expected progress %q, got %q", ProgressCreated, job.Progress)
	}
	if job.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt")
	}
	if err := job.Validate(); err != nil {
		t.Errorf("Expected valid job, got %v", err)
	}

	_, err = NewJob("  \n ")
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected error %v, got %v", ErrEmptyInput, err)
	}
}

func TestJobLifecycle_Completed(t *testing.T) {
	t.Parallel()

	job, _ := NewJob("text")
	now := time.Now()

	if err := job.Start(ProgressGenerating, now); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if job.Status != JobStatusProcessing || job.StartedAt == nil {
		t.Fatalf("Expected processing job with start time, got %+v", job)
	}

	if err := job.Complete(samplePayload(), now.Add(time.Second), time.Second); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if job.Status != JobStatusCompleted {
		t.Errorf("Expected status %q, got %q", JobStatusCompleted, job.Status)
	}
	if job.Result == nil || job.ErrorMessage != "" {
		t.Errorf("Expected only a result to be set, got %+v", job)
	}
	if job.CompletedAt == nil || job.ProcessingTime == nil || *job.ProcessingTime != time.Second {
		t.Errorf("Expected completion stamps, got %+v", job)
	}
	if err := job.Validate(); err != nil {
		t.Errorf("Expected valid job, got %v", err)
	}

	// Terminal states are final
	if err := job.Start(ProgressGenerating, now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected %v, got %v", ErrInvalidTransition, err)
	}
	if err := job.Fail("boom", now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected %v, got %v", ErrInvalidTransition, err)
	}
	if job.Status != JobStatusCompleted {
		t.Errorf("Expected status to remain %q, got %q", JobStatusCompleted, job.Status)
	}
}

func TestJobLifecycle_Error(t *testing.T) {
	t.Parallel()

	job, _ := NewJob("text")
	now := time.Now()

	if err := job.Start(ProgressGenerating, now); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := job.Fail("", now); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if job.Status != JobStatusError {
		t.Errorf("Expected status %q, got %q", JobStatusError, job.Status)
	}
	if job.ErrorMessage == "" || job.Result != nil {
		t.Errorf("Expected only an error message, got %+v", job)
	}
	if err := job.Validate(); err != nil {
		t.Errorf("Expected valid job, got %v", err)
	}

	if err := job.Complete(samplePayload(), now, 0); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected %v, got %v", ErrInvalidTransition, err)
	}
}

func TestJobTransitions_SkippingProcessing(t *testing.T) {
	t.Parallel()

	job, _ := NewJob("text")
	now := time.Now()

	if err := job.Complete(samplePayload(), now, 0); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected %v completing a pending job, got %v", ErrInvalidTransition, err)
	}
	if err := job.Fail("boom", now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected %v failing a pending job, got %v", ErrInvalidTransition, err)
	}

	_ = job.Start(ProgressGenerating, now)
	if err := job.Start(ProgressGenerating, now); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected %v starting twice, got %v", ErrInvalidTransition, err)
	}
	if err := job.Complete(nil, now, 0); !errors.Is(err, ErrMissingResult) {
		t.Errorf("Expected %v, got %v", ErrMissingResult, err)
	}
}

func TestJobValidate(t *testing.T) {
	t.Parallel()

	base := func() *Job {
		job, _ := NewJob("text")
		return job
	}

	tests := []struct {
		name    string
		mutate  func(*Job)
		wantErr error
	}{
		{name: "nil id", mutate: func(j *Job) { j.ID = uuid.Nil }, wantErr: ErrInvalidID},
		{name: "unknown status", mutate: func(j *Job) { j.Status = "done" }, wantErr: ErrInvalidJobStatus},
		{
			name: "completed without result",
			mutate: func(j *Job) {
				j.Status = JobStatusCompleted
			},
			wantErr: ErrValidation,
		},
		{
			name: "completed with result and error",
			mutate: func(j *Job) {
				j.Status = JobStatusCompleted
				j.Result = samplePayload()
				j.ErrorMessage = "boom"
			},
			wantErr: ErrValidation,
		},
		{
			name: "error with result",
			mutate: func(j *Job) {
				j.Status = JobStatusError
				j.Result = samplePayload()
				j.ErrorMessage = "boom"
			},
			wantErr: ErrValidation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			job := base()
			tc.mutate(job)
			if err := job.Validate(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestJobClone(t *testing.T) {
	t.Parallel()

	job, _ := NewJob("text")
	now := time.Now()
	_ = job.Start(ProgressGenerating, now)
	_ = job.Complete(samplePayload(), now, time.Second)

	clone := job.Clone()
	clone.Result.ParsedCards[0].Question = "changed"
	*clone.ProcessingTime = time.Hour
	clone.Status = JobStatusError

	if job.Result.ParsedCards[0].Question != "Q" {
		t.Error("Expected clone cards to be independent")
	}
	if *job.ProcessingTime != time.Second {
		t.Error("Expected clone duration to be independent")
	}
	if job.Status != JobStatusCompleted {
		t.Error("Expected clone status to be independent")
	}

	var nilJob *Job
	if nilJob.Clone() != nil {
		t.Error("Expected nil clone of nil job")
	}
}

func TestJobStatusIsTerminal(t *testing.T) {
	t.Parallel()

	if JobStatusPending.IsTerminal() || JobStatusProcessing.IsTerminal() {
		t.Error("Expected non-terminal statuses")
	}
	if !JobStatusCompleted.IsTerminal() || !JobStatusError.IsTerminal() {
		t.Error("Expected terminal statuses")
	}
}
