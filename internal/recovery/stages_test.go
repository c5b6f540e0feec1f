package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "json fence", input: "```json\n[1]\n```", expected: "[1]"},
		{name: "bare fence", input: "```\n[1]\n```", expected: "[1]"},
		{name: "fence with surrounding whitespace", input: "  \n```JSON\n[1]\n```\n\n", expected: "[1]"},
		{name: "only leading fence", input: "```json\n[1]", expected: "[1]"},
		{name: "only trailing fence", input: "[1]\n```", expected: "[1]"},
		{name: "no fence", input: "  [1]  ", expected: "[1]"},
		{name: "inline fence", input: "```[1]```", expected: "[1]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := StripFences(tc.input)
			assert.Equal(t, tc.expected, got)
			// Applying the stage twice changes nothing further
			assert.Equal(t, got, StripFences(got))
		})
	}
}

func TestExtractArray(t *testing.T) {
	t.Parallel()

	got, err := ExtractArray(`Here you go: [{"a": [1, 2]}] thanks`)
	require.NoError(t, err)
	assert.Equal(t, `[{"a": [1, 2]}]`, got)

	again, err := ExtractArray(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	for _, input := range []string{"", "no brackets", "[ only opening", "only closing ]", "] reversed ["} {
		_, err := ExtractArray(input)
		assert.ErrorIs(t, err, ErrNoArray, "input %q", input)
	}
}

func TestRemoveTrailingCommas(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "array", input: `[1, 2, ]`, expected: `[1, 2]`},
		{name: "object", input: `{"a": 1,}`, expected: `{"a": 1}`},
		{name: "newline before bracket", input: "[{\"a\": 1},\n\n]", expected: `[{"a": 1}]`},
		{name: "nested", input: `[{"a": [1,],},]`, expected: `[{"a": [1]}]`},
		{name: "no trailing comma", input: `[1, 2]`, expected: `[1, 2]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RemoveTrailingCommas(tc.input)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, got, RemoveTrailingCommas(got))
		})
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	cleaned, err := Clean("```json\n[{\"question\": \"Q\", \"answer\": \"A\",},]\n```", DefaultStages())
	require.NoError(t, err)
	assert.Equal(t, `[{"question": "Q", "answer": "A"}]`, cleaned)

	// Cleaning is idempotent
	twice, err := Clean(cleaned, DefaultStages())
	require.NoError(t, err)
	assert.Equal(t, cleaned, twice)

	_, err = Clean("no array here", DefaultStages())
	assert.ErrorIs(t, err, ErrNoArray)
	assert.Contains(t, err.Error(), "extract_array")
}

func TestDefaultStagesOrder(t *testing.T) {
	t.Parallel()

	stages := DefaultStages()
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{"strip_fences", "extract_array", "remove_trailing_commas"}, names)
}
