package report

import (
	"fmt"
	"strings"

	"study-rag/internal/models"
)

const noAnswer = "(no answer marked)"

func FormatFlashcards(cards []models.Flashcard) string {
	var sb strings.Builder
	for i, c := range cards {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "Card %d\n  Front: %s\n  Back:  %s\n", i+1, c.Front, c.Back)
	}
	return sb.String()
}

// FormatQuiz renders the questions with their options. Answers are listed
// after each question when showAnswers is set.
func FormatQuiz(questions []models.QuizQuestion, showAnswers bool) string {
	var sb strings.Builder
	for i, q := range questions {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, q.Question)
		for _, label := range q.SortedLabels() {
			fmt.Fprintf(&sb, "   %s) %s\n", label, q.Options[label])
		}
		if showAnswers {
			sb.WriteString("   Answer: " + AnswerLabel(q) + "\n")
		}
	}
	return sb.String()
}

// AnswerLabel is "B) text" for the correct option, or a placeholder when
// none was marked.
func AnswerLabel(q models.QuizQuestion) string {
	if !q.IsAnswered() {
		return noAnswer
	}
	return fmt.Sprintf("%s) %s", q.CorrectOption, q.Options[q.CorrectOption])
}

func FormatAnswer(a *models.Answer) string {
	if a == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(a.Content)
	if a.Source != "" {
		sb.WriteString("\n\nSources:\n")
		sb.WriteString(a.Source)
	}
	sb.WriteString("\n")
	return sb.String()
}
