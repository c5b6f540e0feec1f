package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-cards/internal/generation"
)

// MockBackend implements generation.Backend and generation.Pinger for testing
type MockBackend struct {
	NameValue  string
	CompleteFn func(ctx context.Context, req generation.CompletionRequest) (string, error)
	PingFn     func(ctx context.Context) error

	mu       sync.Mutex
	requests []generation.CompletionRequest
}

var (
	_ generation.Backend = (*MockBackend)(nil)
	_ generation.Pinger  = (*MockBackend)(nil)
)

// Name implements generation.Backend
func (m *MockBackend) Name() string {
	if m.NameValue == "" {
		return "mock"
	}
	return m.NameValue
}

// Complete implements generation.Backend
func (m *MockBackend) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, req)
	}
	return "[]", nil
}

// Ping implements generation.Pinger
func (m *MockBackend) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}

// Requests returns a copy of every request passed to Complete.
func (m *MockBackend) Requests() []generation.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]generation.CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
