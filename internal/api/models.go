package api

import (
	"time"

	"github.com/phrazzld/scry-cards/internal/domain"
)

// GenerateRequest defines the payload for both generation endpoints.
type GenerateRequest struct {
	Text string `json:"text" validate:"required"`

	// UserID is accepted for compatibility and otherwise ignored.
	UserID *string `json:"user_id,omitempty"`
}

// JobCreatedResponse is returned when an asynchronous job is accepted.
type JobCreatedResponse struct {
	JobID   string           `json:"job_id"`
	Status  domain.JobStatus `json:"status"`
	Message string           `json:"message"`
}

// JobStatusResponse is a snapshot of a job. Result and ErrorMessage render as
// null until the job reaches the matching terminal state.
type JobStatusResponse struct {
	JobID        string           `json:"job_id"`
	Status       domain.JobStatus `json:"status"`
	Progress     string           `json:"progress"`
	Result       *domain.Payload  `json:"result"`
	ErrorMessage *string          `json:"error_message"`
}

// JobResultResponse carries the payload of a completed job.
type JobResultResponse struct {
	JobID          string          `json:"job_id"`
	Flashcards     *domain.Payload `json:"flashcards"`
	ProcessingTime float64         `json:"processing_time"`
}

// SyncResponse is returned by the synchronous generation endpoint.
type SyncResponse struct {
	Flashcards     *domain.Payload `json:"flashcards"`
	ProcessingTime float64         `json:"processing_time"`
	Success        bool            `json:"success"`
}

// JobListResponse lists recent jobs together with per-status totals.
type JobListResponse struct {
	Jobs   []JobStatusResponse      `json:"jobs"`
	Counts map[domain.JobStatus]int `json:"counts"`
}

// StatusResponse is the body of the root and probe endpoints.
type StatusResponse struct {
	Message string `json:"message,omitempty"`
	Status  string `json:"status"`
}

// Messages and probe states returned by the service endpoints.
const (
	MessageRoot       = "Flashcard API"
	MessageJobCreated = "Flashcard generation job created"
	StatusRunning     = "running"
	StatusHealthy     = "healthy"
	StatusReady       = "ready"
)

// newJobStatusResponse converts a job snapshot into its wire form.
func newJobStatusResponse(job *domain.Job) JobStatusResponse {
	resp := JobStatusResponse{
		JobID:    job.ID.String(),
		Status:   job.Status,
		Progress: job.Progress,
		Result:   job.Result,
	}
	if job.ErrorMessage != "" {
		msg := job.ErrorMessage
		resp.ErrorMessage = &msg
	}
	return resp
}

// seconds renders a duration the way the API reports processing times.
func seconds(d time.Duration) float64 {
	return d.Seconds()
}
