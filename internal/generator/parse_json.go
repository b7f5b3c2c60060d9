package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"study-rag/internal/models"
)

// ParseFlashcardsJSON decodes a JSON array of {front, back} objects. Any
// decoding or validation failure rejects the whole response.
func ParseFlashcardsJSON(raw string) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	if err := decodeArray(raw, &cards); err != nil {
		return nil, err
	}
	for i, c := range cards {
		if err := validateItem(c); err != nil {
			return nil, fmt.Errorf("%w: flashcard %d: %v", models.ErrMalformedResponse, i+1, err)
		}
	}
	return cards, nil
}

// ParseQuizJSON decodes a JSON array of {question, options, correct_option}
// objects with options labelled A to D.
func ParseQuizJSON(raw string) ([]models.QuizQuestion, error) {
	var questions []models.QuizQuestion
	if err := decodeArray(raw, &questions); err != nil {
		return nil, err
	}
	for i, q := range questions {
		if err := validateItem(q); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", models.ErrMalformedResponse, i+1, err)
		}
	}
	return questions, nil
}

func decodeArray(raw string, v any) error {
	body := stripCodeFence(raw)
	if !strings.HasPrefix(body, "[") {
		return fmt.Errorf("%w: expected a JSON array", models.ErrMalformedResponse)
	}

	// the whole body must be one array, trailing text included
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}
	return nil
}

// stripCodeFence removes a surrounding ```json ... ``` fence.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
