package models

import "sort"

// OptionLabels are the quiz option keys in display order.
var OptionLabels = []string{"A", "B", "C", "D"}

type Flashcard struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back" validate:"required"`
}

// QuizQuestion is a multiple-choice question. An empty CorrectOption means
// the model did not mark an answer.
type QuizQuestion struct {
	Question      string            `json:"question" validate:"required"`
	Options       map[string]string `json:"options" validate:"len=4,dive,keys,oneof=A B C D,endkeys,required"`
	CorrectOption string            `json:"correct_option" validate:"required,oneof=A B C D"`
}

func (q QuizQuestion) IsAnswered() bool {
	_, ok := q.Options[q.CorrectOption]
	return q.CorrectOption != "" && ok
}

// SortedLabels returns the option labels present in q, in label order.
func (q QuizQuestion) SortedLabels() []string {
	labels := make([]string, 0, len(q.Options))
	for l := range q.Options {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

type Summary struct {
	Title    string
	Text     string
	PDFPath  string
	HTMLPath string
}
