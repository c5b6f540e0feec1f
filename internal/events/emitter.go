package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter hands job events to the handlers running in this
// process. Dispatch is synchronous: EmitEvent returns once every handler has
// accepted or rejected the job.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// NewInMemoryEventEmitter returns an emitter with no handlers. A nil logger
// falls back to slog.Default.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With("component", "job_dispatcher"),
	}
}

// RegisterHandler subscribes handler to every subsequent job event.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	count := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("job handler registered", "handlers", count)
}

// EmitEvent dispatches a job event. All handlers are tried; the first
// rejection is returned so the caller can fail the job. With no handlers
// registered the job could never run, so ErrNoHandlers is returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *TaskRequestEvent) error {
	e.mu.RLock()
	handlers := append([]EventHandler(nil), e.handlers...)
	e.mu.RUnlock()

	logger := e.logger.With("event_id", event.ID, "event_type", event.Type)
	if jobID, err := event.JobID(); err == nil {
		logger = logger.With("job_id", jobID)
	}

	if len(handlers) == 0 {
		logger.WarnContext(ctx, "job event dropped: no handlers")
		return ErrNoHandlers
	}

	logger.DebugContext(ctx, "dispatching job event", "handlers", len(handlers))

	var rejected error
	for i, handler := range handlers {
		err := handler.HandleEvent(ctx, event)
		if err == nil {
			continue
		}
		logger.ErrorContext(ctx, "job handler rejected event", "handler", i, "error", err)
		if rejected == nil {
			rejected = err
		}
	}
	return rejected
}
