package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/recovery"
)

// Default decoding settings for a backend call.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultTemperature = 0.1
)

// ClientConfig holds the per-call settings of a Client.
type ClientConfig struct {
	// Timeout bounds a single backend call. Zero means DefaultTimeout.
	Timeout time.Duration

	// Temperature is sent with every request. Negative means DefaultTemperature.
	Temperature float64
}

// Client implements Generator on top of a Backend.
type Client struct {
	backend     Backend
	prompts     *PromptBuilder
	timeout     time.Duration
	temperature float64
	logger      *slog.Logger
}

var _ Generator = (*Client)(nil)

// NewClient creates a generation client.
func NewClient(backend Backend, prompts *PromptBuilder, cfg ClientConfig, logger *slog.Logger) (*Client, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend cannot be nil", ErrInvalidConfig)
	}
	if prompts == nil {
		return nil, fmt.Errorf("%w: prompt builder cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	temperature := cfg.Temperature
	if temperature < 0 {
		temperature = DefaultTemperature
	}

	return &Client{
		backend:     backend,
		prompts:     prompts,
		timeout:     timeout,
		temperature: temperature,
		logger:      logger.With("component", "generation_client", "backend", backend.Name()),
	}, nil
}

// Generate asks the backend for flashcards about input and recovers the
// cards from whatever text comes back.
func (c *Client) Generate(ctx context.Context, input string) domain.GenerationResult {
	prompt, err := c.prompts.Build(input)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to build prompt", "error", err)
		return exceptionResult(err)
	}

	c.logger.DebugContext(ctx, "calling generation backend",
		"input_length", len(input),
		"prompt_length", len(prompt),
		"timeout", c.timeout)

	start := time.Now()
	raw, err := c.complete(ctx, prompt)
	elapsed := time.Since(start)

	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			c.logger.WarnContext(ctx, "generation backend returned non-success status",
				"status_code", statusErr.StatusCode,
				"elapsed", elapsed)
			return errorResult(statusErr)
		}

		c.logger.ErrorContext(ctx, "generation backend call failed",
			"error", err,
			"elapsed", elapsed)
		return exceptionResult(err)
	}

	recovered := recovery.Recover(raw)
	if recovered.Err != nil {
		c.logger.WarnContext(ctx, "failed to recover cards from backend output",
			"error", recovered.Err,
			"raw_output", raw)
	}

	cards, dropped := domain.ValidCards(recovered.Cards)
	if dropped > 0 {
		c.logger.WarnContext(ctx, "dropped incomplete cards", "dropped", dropped)
	}
	if recovered.Mode != domain.ParseModeFailed && len(cards) != c.prompts.CardCount() {
		c.logger.WarnContext(ctx, "backend returned unexpected number of cards",
			"requested", c.prompts.CardCount(),
			"received", len(cards))
	}

	c.logger.InfoContext(ctx, "generation completed",
		"parse_mode", recovered.Mode,
		"card_count", len(cards),
		"elapsed", elapsed)

	result := domain.GenerationResult{
		RawOutput: raw,
		Cards:     cards,
		ParseMode: recovered.Mode,
		Method:    domain.MethodDirectBackend,
		Success:   true,
	}
	if recovered.Err != nil {
		result.Diagnostic = recovered.Err.Error()
	}
	return result
}

// complete performs the bounded backend call, converting a panic inside the
// backend into an error.
func (c *Client) complete(ctx context.Context, prompt string) (raw string, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panicked: %v", r)
		}
	}()

	return c.backend.Complete(ctx, CompletionRequest{
		Prompt:      prompt,
		Temperature: c.temperature,
	})
}

func errorResult(err *StatusError) domain.GenerationResult {
	return domain.GenerationResult{
		RawOutput:  placeholderOutput(err.Error()),
		Cards:      []domain.Card{},
		ParseMode:  domain.ParseModeError,
		Method:     domain.MethodError,
		Success:    false,
		Diagnostic: err.Error(),
	}
}

func exceptionResult(err error) domain.GenerationResult {
	return domain.GenerationResult{
		RawOutput:  placeholderOutput(err.Error()),
		Cards:      []domain.Card{},
		ParseMode:  domain.ParseModeException,
		Method:     domain.MethodException,
		Success:    false,
		Diagnostic: err.Error(),
	}
}

// placeholderOutput renders a single diagnostic card as the raw output of a
// failed generation.
func placeholderOutput(reason string) string {
	data, err := json.Marshal([]domain.Card{{Question: "Error", Answer: reason}})
	if err != nil {
		return `[{"question":"Error","answer":"generation failed"}]`
	}
	return string(data)
}
