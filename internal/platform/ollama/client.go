package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/scry-cards/internal/generation"
)

const (
	// DefaultBaseURL is where a local Ollama server listens by default.
	DefaultBaseURL = "http://localhost:11434"

	// DefaultModel is a small model that runs on most laptops.
	DefaultModel = "llama3.2:1b"

	backendName = "ollama"
)

// Config holds the settings for an Ollama backend.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// generateRequest is the body of POST /api/generate.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
}

// generateResponse is the subset of the /api/generate reply that is used.
type generateResponse struct {
	Model    string  `json:"model"`
	Response *string `json:"response"`
	Done     bool    `json:"done"`
}

// Backend talks to an Ollama server over HTTP.
type Backend struct {
	httpClient *http.Client
	baseURL    string
	model      string
	logger     *slog.Logger
}

var (
	_ generation.Backend = (*Backend)(nil)
	_ generation.Pinger  = (*Backend)(nil)
)

// NewBackend creates an Ollama backend. Empty fields fall back to the defaults.
func NewBackend(cfg Config, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid ollama base URL %q", generation.ErrInvalidConfig, cfg.BaseURL)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Backend{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    baseURL,
		model:      model,
		logger:     logger.With("component", "ollama_backend"),
	}, nil
}

// Name implements generation.Backend.
func (b *Backend) Name() string {
	return backendName
}

// Model returns the model name sent with every request.
func (b *Backend) Model() string {
	return b.model
}

// Complete sends a single non-streaming generate request.
func (b *Backend) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:   b.model,
		Prompt:  req.Prompt,
		Stream:  false,
		Options: generateOptions{Temperature: req.Temperature},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	b.logger.DebugContext(ctx, "sending generate request",
		"model", b.model,
		"prompt_length", len(req.Prompt))

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b.logger.WarnContext(ctx, "ollama returned non-success status",
			"status", resp.StatusCode)
		return "", generation.NewStatusError(backendName, resp.StatusCode, string(respBody))
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}
	if genResp.Response == nil {
		return "", fmt.Errorf("%w: missing response field", generation.ErrInvalidResponse)
	}

	return *genResp.Response, nil
}

// Ping checks that the server answers GET /api/tags.
func (b *Backend) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ollama unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return generation.NewStatusError(backendName, resp.StatusCode, "")
	}
	return nil
}
