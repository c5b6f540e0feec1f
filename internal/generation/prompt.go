package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/phrazzld/scry-cards/internal/domain"
)

// DefaultCardCount is the number of cards every prompt asks for.
const DefaultCardCount = 5

//go:embed prompt.tmpl
var defaultPromptTemplate string

// exampleQuestions fill the format example, one per requested card.
var exampleQuestions = []string{
	"What is X?",
	"How does Y work?",
	"Why use Z?",
	"What is W?",
	"Explain V",
}

// promptData represents the data passed to the prompt template
type promptData struct {
	Text      string
	CardCount int
	Examples  []string
}

func examplesFor(count int) []string {
	examples := make([]string, count)
	for i := range examples {
		examples[i] = exampleQuestions[i%len(exampleQuestions)]
	}
	return examples
}

// PromptBuilder renders the flashcard prompt for a piece of input text.
type PromptBuilder struct {
	template  *template.Template
	cardCount int
}

// NewPromptBuilder parses the prompt template. An empty templatePath selects
// the built-in template.
func NewPromptBuilder(templatePath string, cardCount int) (*PromptBuilder, error) {
	if cardCount <= 0 {
		cardCount = DefaultCardCount
	}

	content := defaultPromptTemplate
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				ErrInvalidConfig, templatePath, err)
		}
		content = string(data)
	}

	tmpl, err := template.New("flashcards").Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}

	return &PromptBuilder{
		template:  tmpl,
		cardCount: cardCount,
	}, nil
}

// CardCount returns the number of cards the prompt requests.
func (b *PromptBuilder) CardCount() int {
	return b.cardCount
}

// Build renders the prompt. The input text is embedded verbatim.
func (b *PromptBuilder) Build(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", domain.ErrEmptyInput
	}

	var buf bytes.Buffer
	if err := b.template.Execute(&buf, promptData{
		Text:      input,
		CardCount: b.cardCount,
		Examples:  examplesFor(b.cardCount),
	}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String(), nil
}
