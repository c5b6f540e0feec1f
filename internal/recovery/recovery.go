package recovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/phrazzld/scry-cards/internal/domain"
)

// Errors carried in Result.Err. Recover itself never fails.
var (
	// ErrParseFailure is returned when every recovery stage was exhausted.
	ErrParseFailure = errors.New("model output could not be parsed as a card array")

	// ErrNoArray is returned when the text contains no bracket pair at all.
	ErrNoArray = errors.New("no JSON array found in model output")

	// ErrNotArray is returned when the text is valid JSON but not an array.
	ErrNotArray = errors.New("top-level JSON value is not an array")
)

// Result is the outcome of recovering one model response.
type Result struct {
	// Cards is never nil; it is empty when Mode is failed.
	Cards []domain.Card

	// Mode is strict, repaired or failed.
	Mode domain.ParseMode

	// Err explains a failed recovery and is nil otherwise.
	Err error
}

// Recover decodes raw model text into cards, repairing common formatting
// mistakes when a strict decode is not possible.
func Recover(raw string) Result {
	return RecoverWith(raw, DefaultStages())
}

// RecoverWith is Recover with an explicit list of cleanup stages.
func RecoverWith(raw string, stages []Stage) Result {
	cards, strictErr := Decode(raw)
	if strictErr == nil {
		return Result{Cards: cards, Mode: domain.ParseModeStrict}
	}

	cleaned, err := Clean(raw, stages)
	if err != nil {
		return failed(err)
	}

	cards, err = Decode(cleaned)
	if err != nil {
		return failed(err)
	}

	return Result{Cards: cards, Mode: domain.ParseModeRepaired}
}

// Decode parses text as a JSON array of card objects. Anything other than a
// top-level array is rejected.
func Decode(text string) ([]domain.Card, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") {
		if json.Valid([]byte(trimmed)) {
			return nil, ErrNotArray
		}
		return nil, fmt.Errorf("%w: input does not start with '['", ErrNoArray)
	}

	cards := []domain.Card{}
	if err := json.Unmarshal([]byte(trimmed), &cards); err != nil {
		return nil, fmt.Errorf("failed to decode card array: %w", err)
	}

	return cards, nil
}

func failed(err error) Result {
	return Result{
		Cards: []domain.Card{},
		Mode:  domain.ParseModeFailed,
		Err:   fmt.Errorf("%w: %v", ErrParseFailure, err),
	}
}
