package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TypeFlashcardGeneration is the event type emitted for new generation jobs.
const TypeFlashcardGeneration = "flashcard_generation"

// ErrNoHandlers is returned when an event is emitted before any handler is registered.
var ErrNoHandlers = errors.New("no event handlers registered")

// TaskRequestEvent represents a request to run a background task.
type TaskRequestEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type indicates the task type that should be created
	Type string `json:"type"`

	// Payload contains the task-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// JobPayload is the payload of a flashcard generation event. The job's
// input text stays in the job store; only the ID travels with the event.
type JobPayload struct {
	JobID uuid.UUID `json:"job_id"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskRequestEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskRequestEvent creates a new TaskRequestEvent with the specified type and payload.
func NewTaskRequestEvent(eventType string, payload interface{}) (*TaskRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewJobEvent creates the event announcing a new flashcard generation job.
func NewJobEvent(jobID uuid.UUID) (*TaskRequestEvent, error) {
	return NewTaskRequestEvent(TypeFlashcardGeneration, JobPayload{JobID: jobID})
}

// JobID decodes the job ID carried by a flashcard generation event.
func (e *TaskRequestEvent) JobID() (uuid.UUID, error) {
	var payload JobPayload
	if err := e.UnmarshalPayload(&payload); err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s payload: %w", e.Type, err)
	}
	if payload.JobID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid %s payload: missing job_id", e.Type)
	}
	return payload.JobID, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
