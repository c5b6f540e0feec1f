package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, input string) domain.GenerationResult

	// Result is returned when GenerateFn is nil
	Result domain.GenerationResult

	mu     sync.Mutex
	inputs []string
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, input string) domain.GenerationResult {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, input)
	}
	return m.Result
}

// Calls returns the number of Generate calls so far.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

// Inputs returns a copy of every input passed to Generate.
func (m *MockGenerator) Inputs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.inputs))
	copy(out, m.inputs)
	return out
}

// SampleCards returns n distinct, valid cards.
func SampleCards(n int) []domain.Card {
	cards := make([]domain.Card, 0, n)
	for i := 1; i <= n; i++ {
		cards = append(cards, domain.Card{
			Question: fmt.Sprintf("Question %d?", i),
			Answer:   fmt.Sprintf("Answer %d", i),
		})
	}
	return cards
}

// NewMockGeneratorWithCards creates a MockGenerator that succeeds with the
// given cards in strict mode
func NewMockGeneratorWithCards(cards []domain.Card) *MockGenerator {
	return &MockGenerator{
		Result: domain.GenerationResult{
			RawOutput: "[]",
			Cards:     cards,
			ParseMode: domain.ParseModeStrict,
			Method:    domain.MethodDirectBackend,
			Success:   true,
		},
	}
}

// NewMockGeneratorWithFailure creates a MockGenerator whose results report an
// unreachable backend
func NewMockGeneratorWithFailure(reason string) *MockGenerator {
	return &MockGenerator{
		Result: domain.GenerationResult{
			RawOutput:  `[{"question":"Error","answer":"` + reason + `"}]`,
			Cards:      []domain.Card{},
			ParseMode:  domain.ParseModeException,
			Method:     domain.MethodException,
			Success:    false,
			Diagnostic: reason,
		},
	}
}
