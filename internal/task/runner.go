package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/semaphore"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// MaxConcurrent bounds how many tasks execute at the same time.
	// Submitted tasks beyond the bound wait for a free slot.
	MaxConcurrent int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		MaxConcurrent: 4,
	}
}

// TaskRunner executes submitted tasks on detached goroutines.
type TaskRunner struct {
	sem        *semaphore.Weighted
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     TaskRunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)

	mu      sync.Mutex
	started bool
	stopped bool
}

var _ Submitter = (*TaskRunner)(nil)

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = DefaultTaskRunnerConfig().MaxConcurrent
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "task_runner")

	ctx, cancel := context.WithCancel(context.Background())

	return &TaskRunner{
		sem:        semaphore.NewWeighted(int64(config.MaxConcurrent)),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger,
		errHandler: func(task Task, err error) {
			// Default error handler just logs the error
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler replaces the function called when a task fails or panics.
// It may be called at any time; tasks failing afterwards see the new handler.
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	if handler == nil {
		return
	}
	r.mu.Lock()
	r.errHandler = handler
	r.mu.Unlock()
}

// reportError passes a task failure to the current error handler.
func (r *TaskRunner) reportError(task Task, err error) {
	r.mu.Lock()
	handler := r.errHandler
	r.mu.Unlock()
	handler(task, err)
}

// Start allows Submit to accept tasks.
func (r *TaskRunner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return ErrRunnerStopped
	}
	if r.started {
		return fmt.Errorf("task runner already started")
	}
	r.started = true

	r.logger.Info("task runner started", "max_concurrent", r.config.MaxConcurrent)
	return nil
}

// Submit schedules task on its own goroutine and returns immediately.
// The caller's ctx only governs submission; the task runs under the
// runner's lifetime.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return ErrRunnerStopped
	}
	if !r.started {
		return ErrRunnerNotStarted
	}

	r.wg.Add(1)
	go r.run(task)
	return nil
}

// Stop stops accepting tasks, abandons tasks still waiting for a slot and
// waits for running tasks to finish.
func (r *TaskRunner) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	r.logger.Info("stopping task runner")
	r.cancelFunc()
	r.wg.Wait()
	r.logger.Info("task runner stopped")
}

// run waits for a slot and then processes the task.
func (r *TaskRunner) run(task Task) {
	defer r.wg.Done()

	if err := r.sem.Acquire(r.ctx, 1); err != nil {
		r.logger.Warn("task abandoned before it started",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"reason", err)
		return
	}
	defer r.sem.Release(1)

	r.processTask(task)
}

// processTask handles execution of a single task
func (r *TaskRunner) processTask(task Task) {
	// Running tasks are allowed to finish during Stop.
	ctx := context.WithoutCancel(r.ctx)
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
	)

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("task panicked: %v", rec)
			logger.Error("task panicked", "panic", rec)
			r.reportError(task, err)
		}
	}()

	logger.Debug("processing task")

	if err := task.Execute(ctx); err != nil {
		r.reportError(task, err)
		return
	}

	logger.Debug("task completed successfully")
}
