package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"study-rag/internal/config"
	"study-rag/internal/embedding"
	"study-rag/internal/generator"
	"study-rag/internal/helper"
	"study-rag/internal/models"
	"study-rag/internal/parser"
	"study-rag/internal/rag"
)

// Service runs the effects behind each session action. Every method takes
// the current state and returns the next one; on failure the error is both
// folded into the returned state and returned.
type Service struct {
	cfg     *config.Config
	rag     *rag.RAG
	gen     *generator.Generator
	chunker *parser.Chunker
}

func NewService(cfg *config.Config, r *rag.RAG) (*Service, error) {
	chunker, err := parser.NewChunker(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:     cfg,
		rag:     r,
		gen:     generator.NewGenerator(r, cfg),
		chunker: chunker,
	}, nil
}

// Restore starts a session. It begins Processed when the persisted index
// already holds a document.
func (s *Service) Restore(ctx context.Context) (State, error) {
	id, err := helper.GenerateUUID()
	if err != nil {
		return State{}, err
	}
	st := New(id)

	n, err := s.rag.Store().Count(ctx)
	if err != nil {
		return st, fmt.Errorf("failed to read index: %w", err)
	}
	if n > 0 {
		st = Reduce(Reduce(st, UploadedDoc{}), ProcessedDoc{Chunks: n})
		log.Info().Str("session", id).Int("chunks", n).Msg("Restored processed index")
	}
	return st, nil
}

// Upload stores src under the upload dir. Only .pdf and .docx are accepted.
func (s *Service) Upload(ctx context.Context, st State, src string) (State, error) {
	if !parser.SupportedExtension(filepath.Ext(src)) {
		return s.fail(st, fmt.Errorf("%w: %s", models.ErrUnsupportedFormat, filepath.Base(src)))
	}
	dst, err := helper.SaveUpload(src, s.cfg.UploadDir)
	if err != nil {
		return s.fail(st, err)
	}
	log.Info().Str("session", st.ID).Str("file", dst).Msg("Uploaded file")
	return Reduce(st, UploadedDoc{Path: dst}), nil
}

// Process extracts, chunks and indexes the uploaded document, replacing the
// previous index.
func (s *Service) Process(ctx context.Context, st State, progress embedding.Progress) (State, error) {
	if st.Stage == NoDocument {
		return s.fail(st, fmt.Errorf("%w: no uploaded document", models.ErrPreconditionNotMet))
	}
	pages, err := parser.Load(st.Document)
	if err != nil {
		return s.fail(st, err)
	}
	chunks, err := s.chunker.Chunk(st.Document, pages)
	if err != nil {
		return s.fail(st, err)
	}
	n, err := s.rag.BuildIndex(ctx, chunks, progress)
	if err != nil {
		return s.fail(st, err)
	}
	log.Info().Str("session", st.ID).Int("pages", len(pages)).Int("chunks", n).Msg("Processed document")
	return Reduce(st, ProcessedDoc{Chunks: n}), nil
}

func (s *Service) Flashcards(ctx context.Context, st State, numCards int) (State, error) {
	if err := requireProcessed(st); err != nil {
		return s.fail(st, err)
	}
	cards, err := s.gen.Flashcards(ctx, numCards)
	if err != nil {
		return s.fail(st, err)
	}
	return Reduce(st, FlashcardsReady{Cards: cards}), nil
}

func (s *Service) Quiz(ctx context.Context, st State, numQuestions int) (State, error) {
	if err := requireProcessed(st); err != nil {
		return s.fail(st, err)
	}
	questions, err := s.gen.Quiz(ctx, numQuestions)
	if err != nil {
		return s.fail(st, err)
	}
	return Reduce(st, QuizReady{Questions: questions}), nil
}

func (s *Service) Ask(ctx context.Context, st State, question string) (State, error) {
	if err := requireProcessed(st); err != nil {
		return s.fail(st, err)
	}
	answer, err := s.rag.Ask(ctx, question)
	if err != nil {
		return s.fail(st, err)
	}
	return Reduce(st, AnswerReady{Answer: answer}), nil
}

// Summarize writes the summary files. An empty title falls back to the
// document's file name.
func (s *Service) Summarize(ctx context.Context, st State, title, outDir string) (State, error) {
	if err := requireProcessed(st); err != nil {
		return s.fail(st, err)
	}
	if strings.TrimSpace(title) == "" {
		title = documentTitle(st.Document)
	}
	summary, err := s.gen.Summarize(ctx, title, outDir)
	if err != nil {
		return s.fail(st, err)
	}
	return Reduce(st, SummaryReady{Summary: summary}), nil
}

func (s *Service) fail(st State, err error) (State, error) {
	ev := log.Error()
	if errors.Is(err, models.ErrPreconditionNotMet) {
		ev = log.Warn()
	}
	ev.Err(err).Str("session", st.ID).Str("kind", models.Kind(err)).Msg("Action failed")
	return Reduce(st, Failed{Err: err}), err
}

func requireProcessed(st State) error {
	if !st.Ready() {
		return fmt.Errorf("%w: document not processed", models.ErrPreconditionNotMet)
	}
	return nil
}

func documentTitle(path string) string {
	if path == "" {
		return "Document Summary"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + " Summary"
}
