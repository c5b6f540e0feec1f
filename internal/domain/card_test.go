package domain

import (
	"errors"
	"testing"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	card, err := NewCard("What is Go?", "A programming language")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if card.Question != "What is Go?" {
		t.Errorf("Expected question %q, got %q", "What is Go?", card.Question)
	}
	if card.Answer != "A programming language" {
		t.Errorf("Expected answer %q, got %q", "A programming language", card.Answer)
	}

	// Blank question
	_, err = NewCard("   ", "answer")
	if !errors.Is(err, ErrCardQuestionEmpty) {
		t.Errorf("Expected error %v, got %v", ErrCardQuestionEmpty, err)
	}

	// Blank answer
	_, err = NewCard("question", "")
	if !errors.Is(err, ErrCardAnswerEmpty) {
		t.Errorf("Expected error %v, got %v", ErrCardAnswerEmpty, err)
	}
}

func TestValidCards(t *testing.T) {
	t.Parallel()

	cards := []Card{
		{Question: "Q1", Answer: "A1"},
		{Question: "", Answer: "A2"},
		{Question: "Q3", Answer: "A3"},
		{Question: "Q4", Answer: " "},
	}

	valid, dropped := ValidCards(cards)
	if dropped != 2 {
		t.Errorf("Expected 2 dropped cards, got %d", dropped)
	}
	if len(valid) != 2 {
		t.Fatalf("Expected 2 valid cards, got %d", len(valid))
	}
	if valid[0].Question != "Q1" || valid[1].Question != "Q3" {
		t.Errorf("Expected order to be preserved, got %+v", valid)
	}

	valid, dropped = ValidCards(nil)
	if len(valid) != 0 || dropped != 0 {
		t.Errorf("Expected empty result for nil input, got %v, %d", valid, dropped)
	}
}
