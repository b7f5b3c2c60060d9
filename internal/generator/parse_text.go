package generator

import (
	"strings"

	"study-rag/internal/models"
)

// ParseIssue describes a block the text parsers could not use.
type ParseIssue struct {
	Block  string
	Reason string
}

// ParseFlashcardsText parses blank-line separated "Q: ...\nA: ..." blocks.
//
// Deprecated: models are asked for JSON now; use ParseFlashcardsJSON.
func ParseFlashcardsText(raw string) ([]models.Flashcard, []ParseIssue) {
	var (
		cards  []models.Flashcard
		issues []ParseIssue
	)
	for _, block := range splitBlocks(raw) {
		parts := strings.Split(block, models.AnswerMarker)
		if len(parts) != 2 {
			issues = append(issues, ParseIssue{Block: block, Reason: "expected one question and one answer"})
			continue
		}
		front := strings.TrimSpace(strings.TrimPrefix(parts[0], models.QuestionMarker))
		back := strings.TrimSpace(parts[1])
		if front == "" || back == "" {
			issues = append(issues, ParseIssue{Block: block, Reason: "empty question or answer"})
			continue
		}
		cards = append(cards, models.Flashcard{Front: front, Back: back})
	}
	return cards, issues
}

// ParseQuizText parses blocks of a question line followed by four labelled
// option lines. The option suffixed with "(<--)" is the correct one.
//
// Deprecated: use ParseQuizJSON.
func ParseQuizText(raw string) ([]models.QuizQuestion, []ParseIssue) {
	var (
		questions []models.QuizQuestion
		issues    []ParseIssue
	)
	for _, block := range splitBlocks(raw) {
		lines := strings.Split(block, "\n")
		if len(lines) < 5 {
			issues = append(issues, ParseIssue{Block: block, Reason: "expected a question and four options"})
			continue
		}

		q := models.QuizQuestion{
			Question: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[0]), models.QuestionMarker)),
			Options:  make(map[string]string, 4),
		}
		ok := true
		for _, line := range lines[1:5] {
			label, text, found := splitOption(strings.TrimSpace(line))
			if !found {
				issues = append(issues, ParseIssue{Block: block, Reason: "unlabelled option: " + line})
				ok = false
				break
			}
			if strings.Contains(text, models.CorrectMarker) {
				text = strings.TrimSpace(strings.ReplaceAll(text, models.CorrectMarker, ""))
				q.CorrectOption = label
			}
			q.Options[label] = text
		}
		if ok {
			questions = append(questions, q)
		}
	}
	return questions, issues
}

// splitOption accepts "A: text" and "A. text".
func splitOption(line string) (label, text string, ok bool) {
	if len(line) < 2 {
		return "", "", false
	}
	label = strings.ToUpper(line[:1])
	if !isOptionLabel(label) || (line[1] != ':' && line[1] != '.') {
		return "", "", false
	}
	return label, strings.TrimSpace(line[2:]), true
}

func isOptionLabel(s string) bool {
	for _, l := range models.OptionLabels {
		if s == l {
			return true
		}
	}
	return false
}

func splitBlocks(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var blocks []string
	for _, b := range strings.Split(raw, "\n\n") {
		if b = strings.TrimSpace(b); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
