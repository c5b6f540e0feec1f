package domain

import (
	"unicode/utf8"
)

// ParseMode records which stage of response recovery produced the cards.
type ParseMode string

// Possible parse modes
const (
	// ParseModeStrict means the backend text decoded as-is.
	ParseModeStrict ParseMode = "strict"
	// ParseModeRepaired means the text decoded after cleanup.
	ParseModeRepaired ParseMode = "repaired"
	// ParseModeFailed means no cleanup stage produced a decodable array.
	ParseModeFailed ParseMode = "failed"
	// ParseModeError means the backend answered with a non-success status.
	ParseModeError ParseMode = "error"
	// ParseModeException means the backend could not be reached or timed out.
	ParseModeException ParseMode = "exception"
)

// Method tags which backend path produced a GenerationResult.
type Method string

// Possible methods
const (
	MethodDirectBackend Method = "direct-backend"
	MethodError         Method = "error"
	MethodException     Method = "exception"
)

// Payload constants exposed to callers of the result endpoints.
const (
	// TopicPreviewLength is the number of characters of input echoed back in a payload.
	TopicPreviewLength = 100

	// ReviewStatusCompleted is the fixed review status of every payload.
	ReviewStatusCompleted = "completed"

	// IterationsCompleted is the fixed iteration count of every payload.
	IterationsCompleted = 1
)

// GenerationResult is the outcome of one call to the generation backend.
// Failures are encoded in the value itself: Success is false and Diagnostic
// carries the reason.
type GenerationResult struct {
	RawOutput  string
	Cards      []Card
	ParseMode  ParseMode
	Method     Method
	Success    bool
	Diagnostic string
}

// Payload is the structured result returned by the result and sync endpoints.
type Payload struct {
	FinalRawOutput      string    `json:"final_raw_output"`
	ParsedCards         []Card    `json:"parsed_cards"`
	TopicsAnalyzed      string    `json:"topics_analyzed"`
	ReviewStatus        string    `json:"review_status"`
	IterationsCompleted int       `json:"iterations_completed"`
	Method              Method    `json:"method"`
	JSONParseMode       ParseMode `json:"json_parse_mode"`
}

// NewPayload builds the caller-facing payload for a generation over input.
func NewPayload(input string, result GenerationResult) *Payload {
	cards := make([]Card, len(result.Cards))
	copy(cards, result.Cards)

	return &Payload{
		FinalRawOutput:      result.RawOutput,
		ParsedCards:         cards,
		TopicsAnalyzed:      TopicPreview(input),
		ReviewStatus:        ReviewStatusCompleted,
		IterationsCompleted: IterationsCompleted,
		Method:              result.Method,
		JSONParseMode:       result.ParseMode,
	}
}

// Clone returns a copy of the payload that shares no slices with p.
func (p *Payload) Clone() *Payload {
	if p == nil {
		return nil
	}
	c := *p
	c.ParsedCards = make([]Card, len(p.ParsedCards))
	copy(c.ParsedCards, p.ParsedCards)
	return &c
}

// TopicPreview returns the first TopicPreviewLength characters of input.
func TopicPreview(input string) string {
	if utf8.RuneCountInString(input) <= TopicPreviewLength {
		return input
	}
	runes := []rune(input)
	return string(runes[:TopicPreviewLength])
}
