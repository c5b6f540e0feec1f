// Package apiclient is a typed HTTP client for the flashcard API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/scry-cards/internal/api"
	"github.com/phrazzld/scry-cards/internal/api/shared"
)

// DefaultServerURL is where the server listens by default.
const DefaultServerURL = "http://localhost:8000"

// ErrInvalidServerURL is returned by New for unusable server URLs.
var ErrInvalidServerURL = errors.New("invalid server URL")

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Message    string
	TraceID    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("server returned %d: %s (trace_id %s)", e.StatusCode, e.Message, e.TraceID)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client calls the flashcard API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL. A nil httpClient uses a
// client with a 60 second timeout, long enough for a synchronous generation.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidServerURL, baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// Submit creates an asynchronous generation job.
func (c *Client) Submit(ctx context.Context, text string) (*api.JobCreatedResponse, error) {
	var out api.JobCreatedResponse
	if err := c.do(ctx, http.MethodPost, "/generate-flashcards", api.GenerateRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status fetches a job snapshot.
func (c *Client) Status(ctx context.Context, jobID string) (*api.JobStatusResponse, error) {
	var out api.JobStatusResponse
	if err := c.do(ctx, http.MethodGet, "/job-status/"+url.PathEscape(jobID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Result fetches the payload of a completed job.
func (c *Client) Result(ctx context.Context, jobID string) (*api.JobResultResponse, error) {
	var out api.JobResultResponse
	if err := c.do(ctx, http.MethodGet, "/job-result/"+url.PathEscape(jobID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Generate runs a synchronous generation.
func (c *Client) Generate(ctx context.Context, text string) (*api.SyncResponse, error) {
	var out api.SyncResponse
	if err := c.do(ctx, http.MethodPost, "/generate-flashcards-sync", api.GenerateRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Jobs lists recent jobs.
func (c *Client) Jobs(ctx context.Context, limit int) (*api.JobListResponse, error) {
	path := "/jobs"
	if limit > 0 {
		path = fmt.Sprintf("/jobs?limit=%d", limit)
	}
	var out api.JobListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Wait polls the job status every interval until the job is completed or
// failed, or ctx is done.
func (c *Client) Wait(ctx context.Context, jobID string, interval time.Duration) (*api.JobStatusResponse, error) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := c.Status(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if status.Status.IsTerminal() {
			return status, nil
		}

		select {
		case <-ctx.Done():
			return status, fmt.Errorf("waiting for job %s: %w", jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody shared.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
			apiErr.TraceID = errBody.TraceID
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
