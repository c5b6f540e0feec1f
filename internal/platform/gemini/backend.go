package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/scry-cards/internal/generation"
	"google.golang.org/genai"
)

// DefaultModel is used when no Gemini model is configured.
const DefaultModel = "gemini-2.0-flash"

// Config holds the settings needed to reach the Gemini API.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Backend implements generation.Backend using the Gemini API.
type Backend struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is the Gemini API client for making requests
	client *genai.Client

	// model is the name of the Gemini model to use
	model string
}

var _ generation.Backend = (*Backend)(nil)

// NewBackend creates a Gemini backend. The configuration is validated before
// any client is created.
func NewBackend(ctx context.Context, logger *slog.Logger, cfg Config) (*Backend, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Backend{
		logger: logger.With("component", "gemini_backend"),
		client: client,
		model:  cfg.Model,
	}, nil
}

// Name implements generation.Backend.
func (b *Backend) Name() string {
	return "gemini"
}

// Complete sends the prompt to Gemini and concatenates the text parts of the
// first candidate.
func (b *Backend) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	temperature := float32(req.Temperature)

	b.logger.DebugContext(ctx, "Making Gemini API call",
		"model", b.model,
		"prompt_length", len(req.Prompt))

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(req.Prompt),
		&genai.GenerateContentConfig{Temperature: &temperature})
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	return extractText(resp)
}

// extractText pulls the completion text out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyCandidates
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", ErrEmptyCandidates
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		b.WriteString(part.Text)
	}

	if b.Len() == 0 {
		return "", ErrEmptyCandidates
	}
	return b.String(), nil
}
