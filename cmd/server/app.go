package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-cards/internal/config"
	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/events"
	"github.com/phrazzld/scry-cards/internal/generation"
	"github.com/phrazzld/scry-cards/internal/platform/gemini"
	"github.com/phrazzld/scry-cards/internal/platform/memory"
	"github.com/phrazzld/scry-cards/internal/platform/ollama"
	"github.com/phrazzld/scry-cards/internal/service"
	"github.com/phrazzld/scry-cards/internal/store"
	"github.com/phrazzld/scry-cards/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	backend   generation.Backend
	generator generation.Generator
	jobStore  store.JobStore

	jobService service.JobService

	eventEmitter *events.InMemoryEventEmitter
	taskRunner   *task.TaskRunner
}

// newApplication creates the backend named in the configuration and wires
// the rest of the application around it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	backend, err := newBackend(ctx, cfg.Backend, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", cfg.Backend.Provider, err)
	}
	return newApplicationWithBackend(cfg, logger, backend)
}

// newBackend builds the generation backend for the configured provider.
func newBackend(ctx context.Context, cfg config.BackendConfig, logger *slog.Logger) (generation.Backend, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		model := cfg.Model
		if model == "" || model == ollama.DefaultModel {
			model = gemini.DefaultModel
		}
		backend, err := gemini.NewBackend(ctx, logger, gemini.Config{
			APIKey:  cfg.APIKey,
			Model:   model,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return backend, nil
	case config.ProviderOllama, "":
		backend, err := ollama.NewBackend(ollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

// newApplicationWithBackend wires the job pipeline:
// service -> event emitter -> task factory -> task runner -> generator.
// The task runner is started before the application is returned.
func newApplicationWithBackend(
	cfg *config.Config,
	logger *slog.Logger,
	backend generation.Backend,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		backend: backend,
	}

	prompts, err := generation.NewPromptBuilder(cfg.Backend.PromptTemplatePath, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template: %w", err)
	}

	app.generator, err = generation.NewClient(backend, prompts, generation.ClientConfig{
		Timeout:     cfg.Backend.Timeout,
		Temperature: cfg.Backend.Temperature,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation client: %w", err)
	}
	logger.Info("generation client initialized",
		"backend", backend.Name(),
		"timeout", cfg.Backend.Timeout)

	app.jobStore = memory.NewJobStore(logger)

	app.taskRunner = task.NewTaskRunner(task.TaskRunnerConfig{
		MaxConcurrent: cfg.Runner.MaxConcurrent,
	}, logger)
	if err := app.taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	factory := task.NewFlashcardGenerationTaskFactory(app.jobStore, app.generator, logger)
	app.eventEmitter.RegisterHandler(task.NewTaskFactoryEventHandler(factory, app.taskRunner, logger))

	app.jobService, err = service.NewJobService(app.jobStore, app.generator, app.eventEmitter, logger)
	if err != nil {
		app.taskRunner.Stop()
		return nil, fmt.Errorf("failed to create job service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// pinger returns the backend as a generation.Pinger when it can be pinged.
func (app *application) pinger() generation.Pinger {
	if p, ok := app.backend.(generation.Pinger); ok {
		return p
	}
	return nil
}

// cleanup stops the task runner: running jobs finish, waiting jobs are
// abandoned and stay pending.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if counts, err := app.jobStore.Count(context.Background()); err == nil {
		app.logger.Info("Application shutdown completed",
			"pending", counts[domain.JobStatusPending],
			"completed", counts[domain.JobStatusCompleted],
			"error", counts[domain.JobStatusError])
		return
	}
	app.logger.Info("Application shutdown completed")
}
