package session

import (
	"errors"

	"study-rag/internal/models"
)

type Stage int

const (
	NoDocument Stage = iota
	Uploaded
	Processed
)

func (s Stage) String() string {
	switch s {
	case Uploaded:
		return "uploaded"
	case Processed:
		return "processed"
	default:
		return "no document"
	}
}

type Mode int

const (
	ModeNone Mode = iota
	ModeFlashcards
	ModeQuiz
	ModeAsk
	ModeSummarize
)

func (m Mode) String() string {
	switch m {
	case ModeFlashcards:
		return "flashcards"
	case ModeQuiz:
		return "quiz"
	case ModeAsk:
		return "ask"
	case ModeSummarize:
		return "summarize"
	default:
		return "none"
	}
}

const PreconditionWarning = "Please upload and process a document first."

// State is one snapshot of a study session. It is only ever replaced, never
// modified: Reduce returns a fresh value and copies every slice it keeps.
type State struct {
	ID         string
	Stage      Stage
	Mode       Mode
	Document   string
	ChunkCount int

	Flashcards []models.Flashcard
	Quiz       []models.QuizQuestion
	Answer     *models.Answer
	Summary    *models.Summary

	// Warning and Err describe the last action only.
	Warning string
	Err     error
}

func New(id string) State {
	return State{ID: id}
}

func (s State) Ready() bool {
	return s.Stage == Processed
}

// Action is a user event or the result of one.
type Action interface {
	action()
}

type (
	// UploadedDoc records a stored upload. A new upload drops all artifacts.
	UploadedDoc struct{ Path string }
	// ProcessedDoc records a built index of Chunks chunks.
	ProcessedDoc    struct{ Chunks int }
	ModeSelected    struct{ Mode Mode }
	FlashcardsReady struct{ Cards []models.Flashcard }
	QuizReady       struct{ Questions []models.QuizQuestion }
	AnswerReady     struct{ Answer *models.Answer }
	SummaryReady    struct{ Summary *models.Summary }
	// Failed records an error. Precondition errors become a warning.
	Failed struct{ Err error }
)

func (UploadedDoc) action()     {}
func (ProcessedDoc) action()    {}
func (ModeSelected) action()    {}
func (FlashcardsReady) action() {}
func (QuizReady) action()       {}
func (AnswerReady) action()     {}
func (SummaryReady) action()    {}
func (Failed) action()          {}

// Reduce returns the state that follows s after a.
func Reduce(s State, a Action) State {
	next := s.clone()
	next.Warning, next.Err = "", nil

	switch a := a.(type) {
	case UploadedDoc:
		next = State{ID: s.ID, Stage: Uploaded, Document: a.Path}
	case ProcessedDoc:
		if s.Stage == NoDocument {
			return warn(next)
		}
		next = State{ID: s.ID, Stage: Processed, Document: s.Document, ChunkCount: a.Chunks}
	case ModeSelected:
		if a.Mode != ModeNone && !s.Ready() {
			return warn(next)
		}
		next.Mode = a.Mode
	case FlashcardsReady:
		if !s.Ready() {
			return warn(next)
		}
		next.Mode = ModeFlashcards
		next.Flashcards = append([]models.Flashcard(nil), a.Cards...)
	case QuizReady:
		if !s.Ready() {
			return warn(next)
		}
		next.Mode = ModeQuiz
		next.Quiz = cloneQuiz(a.Questions)
	case AnswerReady:
		if !s.Ready() {
			return warn(next)
		}
		next.Mode = ModeAsk
		if a.Answer != nil {
			ans := *a.Answer
			next.Answer = &ans
		}
	case SummaryReady:
		if !s.Ready() {
			return warn(next)
		}
		next.Mode = ModeSummarize
		if a.Summary != nil {
			sum := *a.Summary
			next.Summary = &sum
		}
	case Failed:
		if errors.Is(a.Err, models.ErrPreconditionNotMet) {
			return warn(next)
		}
		next.Err = a.Err
	}
	return next
}

func warn(s State) State {
	s.Warning = PreconditionWarning
	return s
}

func (s State) clone() State {
	c := s
	c.Flashcards = append([]models.Flashcard(nil), s.Flashcards...)
	c.Quiz = cloneQuiz(s.Quiz)
	if s.Answer != nil {
		ans := *s.Answer
		c.Answer = &ans
	}
	if s.Summary != nil {
		sum := *s.Summary
		c.Summary = &sum
	}
	return c
}

func cloneQuiz(questions []models.QuizQuestion) []models.QuizQuestion {
	if questions == nil {
		return nil
	}
	out := make([]models.QuizQuestion, len(questions))
	for i, q := range questions {
		out[i] = q
		out[i].Options = make(map[string]string, len(q.Options))
		for k, v := range q.Options {
			out[i].Options[k] = v
		}
	}
	return out
}
