package domain

import (
	"errors"
	"strings"
)

// Card-specific validation errors
var (
	// ErrCardQuestionEmpty is returned when a card has a blank question.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardAnswerEmpty is returned when a card has a blank answer.
	ErrCardAnswerEmpty = errors.New("card answer cannot be empty")
)

// Card is a single question/answer flashcard produced from model output.
// Cards are values; once created they are never mutated.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NewCard creates a Card and validates it.
func NewCard(question, answer string) (Card, error) {
	card := Card{
		Question: question,
		Answer:   answer,
	}

	if err := card.Validate(); err != nil {
		return Card{}, err
	}

	return card, nil
}

// Validate checks that both sides of the card carry text.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Question) == "" {
		return ErrCardQuestionEmpty
	}

	if strings.TrimSpace(c.Answer) == "" {
		return ErrCardAnswerEmpty
	}

	return nil
}

// ValidCards returns the cards that pass Validate, in their original order,
// together with the number of cards that were dropped.
func ValidCards(cards []Card) ([]Card, int) {
	valid := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.Validate() != nil {
			continue
		}
		valid = append(valid, c)
	}
	return valid, len(cards) - len(valid)
}
