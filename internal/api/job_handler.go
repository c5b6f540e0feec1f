package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-cards/internal/api/shared"
	"github.com/phrazzld/scry-cards/internal/generation"
	"github.com/phrazzld/scry-cards/internal/platform/logger"
	"github.com/phrazzld/scry-cards/internal/service"
)

// Job listing bounds for GET /jobs.
const (
	DefaultListLimit = 50
	MaxListLimit     = 1000
)

// ReadyTimeout bounds the backend ping made by the readiness probe.
const ReadyTimeout = 5 * time.Second

// JobHandler handles flashcard generation HTTP requests
type JobHandler struct {
	jobs      service.JobService
	pinger    generation.Pinger
	validator *validator.Validate
	logger    *slog.Logger
}

// NewJobHandler creates a new JobHandler. pinger may be nil, in which case
// the readiness probe always reports ready.
func NewJobHandler(jobs service.JobService, pinger generation.Pinger, logger *slog.Logger) *JobHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobHandler{
		jobs:      jobs,
		pinger:    pinger,
		validator: validator.New(),
		logger:    logger.With("component", "job_handler"),
	}
}

func (h *JobHandler) log(r *http.Request) *slog.Logger {
	return logger.FromContextOrDefault(r.Context(), h.logger)
}

// Root handles GET /
func (h *JobHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Message: MessageRoot, Status: StatusRunning})
}

// Health handles GET /health
func (h *JobHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: StatusHealthy})
}

// Ready handles GET /ready by pinging the generation backend.
func (h *JobHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), ReadyTimeout)
		defer cancel()

		if err := h.pinger.Ping(ctx); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
				"Generation backend unavailable", err)
			return
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: StatusReady})
}

// decodeGenerateRequest reads and validates a GenerateRequest, writing a 400
// response and returning false when the body is unusable.
func (h *JobHandler) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (GenerateRequest, bool) {
	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return req, false
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return req, false
	}

	return req, true
}

// CreateJob handles POST /generate-flashcards
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	job, err := h.jobs.CreateJob(r.Context(), req.Text)
	if err != nil {
		message := ""
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			message = "Failed to create job"
		}
		HandleAPIError(w, r, err, message)
		return
	}

	h.log(r).Debug("job accepted", "job_id", job.ID)

	// 202 Accepted: generation happens in the background
	shared.RespondWithJSON(w, r, http.StatusAccepted, JobCreatedResponse{
		JobID:   job.ID.String(),
		Status:  job.Status,
		Message: MessageJobCreated,
	})
}

// GetJobStatus handles GET /job-status/{jobID}
func (h *JobHandler) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID, err := getPathJobID(r, "jobID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	job, err := h.jobs.GetStatus(r.Context(), jobID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newJobStatusResponse(job))
}

// GetJobResult handles GET /job-result/{jobID}
func (h *JobHandler) GetJobResult(w http.ResponseWriter, r *http.Request) {
	jobID, err := getPathJobID(r, "jobID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.jobs.GetResult(r.Context(), jobID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, JobResultResponse{
		JobID:          result.JobID.String(),
		Flashcards:     result.Payload,
		ProcessingTime: seconds(result.ProcessingTime),
	})
}

// GenerateSync handles POST /generate-flashcards-sync. A failed generation
// is still a 200 with success set to false.
func (h *JobHandler) GenerateSync(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	result, err := h.jobs.GenerateNow(r.Context(), req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if !result.Success {
		h.log(r).Warn("synchronous generation failed",
			"parse_mode", result.Payload.JSONParseMode,
			"method", result.Payload.Method)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SyncResponse{
		Flashcards:     result.Payload,
		ProcessingTime: seconds(result.ProcessingTime),
		Success:        result.Success,
	})
}

// ListJobs handles GET /jobs?limit=N
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid limit", err)
		return
	}

	jobs, err := h.jobs.ListJobs(r.Context(), limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list jobs")
		return
	}

	counts, err := h.jobs.CountJobs(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list jobs")
		return
	}

	resp := JobListResponse{
		Jobs:   make([]JobStatusResponse, 0, len(jobs)),
		Counts: counts,
	}
	for _, job := range jobs {
		resp.Jobs = append(resp.Jobs, newJobStatusResponse(job))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

var errInvalidLimit = errors.New("limit must be a positive integer")

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return DefaultListLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, errInvalidLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return limit, nil
}
