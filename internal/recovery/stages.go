package recovery

import (
	"fmt"
	"regexp"
	"strings"
)

// Stage is one cleanup step applied to model output before a repaired decode.
// Apply must be pure; it returns an error only when the text cannot be
// repaired by any later stage either.
type Stage struct {
	Name  string
	Apply func(text string) (string, error)
}

var (
	leadingFenceRegex  = regexp.MustCompile("^```[\\w+-]*")
	trailingFenceRegex = regexp.MustCompile("```$")
	trailingCommaRegex = regexp.MustCompile(`,\s*([\]}])`)
)

// DefaultStages returns the cleanup pipeline in the order it is applied.
func DefaultStages() []Stage {
	return []Stage{
		{Name: "strip_fences", Apply: wrap(StripFences)},
		{Name: "extract_array", Apply: ExtractArray},
		{Name: "remove_trailing_commas", Apply: wrap(RemoveTrailingCommas)},
	}
}

// Clean runs text through stages in order, stopping at the first stage error.
func Clean(text string, stages []Stage) (string, error) {
	out := text
	for _, stage := range stages {
		next, err := stage.Apply(out)
		if err != nil {
			return "", fmt.Errorf("stage %s: %w", stage.Name, err)
		}
		out = next
	}
	return out, nil
}

// StripFences removes a leading markdown code fence (with or without a
// language tag), a trailing fence, and surrounding whitespace.
func StripFences(text string) string {
	out := strings.TrimSpace(text)
	out = leadingFenceRegex.ReplaceAllString(out, "")
	out = trailingFenceRegex.ReplaceAllString(strings.TrimSpace(out), "")
	return strings.TrimSpace(out)
}

// ExtractArray keeps the text between the first '[' and the last ']'.
// Text without such a pair is rejected rather than guessed at.
func ExtractArray(text string) (string, error) {
	start := strings.IndexByte(text, '[')
	end := strings.LastIndexByte(text, ']')
	if start == -1 || end == -1 || end < start {
		return "", ErrNoArray
	}
	return text[start : end+1], nil
}

// RemoveTrailingCommas drops any comma that directly precedes a closing
// bracket or brace, ignoring whitespace in between.
func RemoveTrailingCommas(text string) string {
	return trailingCommaRegex.ReplaceAllString(text, "$1")
}

func wrap(fn func(string) string) func(string) (string, error) {
	return func(text string) (string, error) {
		return fn(text), nil
	}
}
