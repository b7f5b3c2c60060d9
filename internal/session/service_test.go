package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"study-rag/internal/config"
	"study-rag/internal/embedding"
	"study-rag/internal/llmservice"
	"study-rag/internal/models"
	"study-rag/internal/parser/parsertest"
	"study-rag/internal/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var documentXML = parsertest.DocumentXML(
	"Mitosis is a type of cell division that yields two identical daughter cells.",
	"Photosynthesis converts light energy into chemical energy inside chloroplasts.",
)

type fixture struct {
	cfg *config.Config
	llm *llmservice.MockLLM
	svc *Service
}

func newFixture(t *testing.T, responses ...string) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.UploadDir = filepath.Join(dir, "data")
	cfg.Index.Path = filepath.Join(dir, "db")
	cfg.RAG.ChunkSize = 80
	cfg.RAG.ChunkOverlap = 10
	return newFixtureWith(t, cfg, responses...)
}

func newFixtureWith(t *testing.T, cfg *config.Config, responses ...string) *fixture {
	t.Helper()
	embedder := embedding.NewMockEmbedder(128)
	store, err := rag.NewVectorStore(context.Background(), cfg, embedder)
	require.NoError(t, err)

	llm := llmservice.NewMockLLM(responses...)
	svc, err := NewService(cfg, rag.NewRAG(store, embedder, llm, cfg))
	require.NoError(t, err)
	return &fixture{cfg: cfg, llm: llm, svc: svc}
}

func (f *fixture) processedState(t *testing.T) State {
	t.Helper()
	ctx := context.Background()
	src := filepath.Join(t.TempDir(), "bio.docx")
	parsertest.WriteDocx(t, src, documentXML)

	st, err := f.svc.Restore(ctx)
	require.NoError(t, err)
	st, err = f.svc.Upload(ctx, st, src)
	require.NoError(t, err)
	st, err = f.svc.Process(ctx, st, nil)
	require.NoError(t, err)
	return st
}

func TestService_UploadAndProcess(t *testing.T) {
	f := newFixture(t)
	st := f.processedState(t)

	assert.Equal(t, Processed, st.Stage)
	assert.Equal(t, filepath.Join(f.cfg.UploadDir, "bio.docx"), st.Document)
	assert.FileExists(t, st.Document)
	assert.Greater(t, st.ChunkCount, 1)
	assert.NotEmpty(t, st.ID)
}

func TestService_UploadUnsupported(t *testing.T) {
	f := newFixture(t)
	src := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("plain text"), 0o644))

	st, err := f.svc.Upload(context.Background(), New("s1"), src)
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
	assert.ErrorIs(t, st.Err, models.ErrUnsupportedFormat)
	assert.Equal(t, NoDocument, st.Stage)
}

func TestService_StudyBeforeProcessing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	st := New("s1")

	next, err := f.svc.Flashcards(ctx, st, 3)
	assert.ErrorIs(t, err, models.ErrPreconditionNotMet)
	assert.Equal(t, PreconditionWarning, next.Warning)
	assert.NoError(t, next.Err)

	_, err = f.svc.Ask(ctx, st, "What is mitosis?")
	assert.ErrorIs(t, err, models.ErrPreconditionNotMet)
	_, err = f.svc.Process(ctx, st, nil)
	assert.ErrorIs(t, err, models.ErrPreconditionNotMet)

	assert.Empty(t, f.llm.Calls())
}

func TestService_MalformedResponseKeepsArtifacts(t *testing.T) {
	f := newFixture(t,
		`[{"front":"Q1","back":"A1"}]`,
		`not json at all`,
	)
	ctx := context.Background()
	st := f.processedState(t)

	st, err := f.svc.Flashcards(ctx, st, 1)
	require.NoError(t, err)
	require.Len(t, st.Flashcards, 1)

	next, err := f.svc.Flashcards(ctx, st, 1)
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
	assert.ErrorIs(t, next.Err, models.ErrMalformedResponse)
	assert.Equal(t, st.Flashcards, next.Flashcards)
	assert.Equal(t, Processed, next.Stage)
}

func TestService_QuizAskSummarize(t *testing.T) {
	f := newFixture(t,
		`[{"question":"What divides cells?","options":{"A":"Osmosis","B":"Mitosis","C":"Catalysis","D":"Diffusion"},"correct_option":"B"}]`,
		"Two identical daughter cells.",
		"# Cell Biology\nMitosis yields two cells.",
	)
	ctx := context.Background()
	st := f.processedState(t)

	st, err := f.svc.Quiz(ctx, st, 1)
	require.NoError(t, err)
	require.Len(t, st.Quiz, 1)
	assert.Equal(t, ModeQuiz, st.Mode)

	st, err = f.svc.Ask(ctx, st, "What does mitosis produce?")
	require.NoError(t, err)
	assert.Equal(t, "Two identical daughter cells.", st.Answer.Content)
	assert.Equal(t, ModeAsk, st.Mode)

	out := t.TempDir()
	st, err = f.svc.Summarize(ctx, st, "", out)
	require.NoError(t, err)
	assert.Equal(t, "bio Summary", st.Summary.Title)
	assert.FileExists(t, st.Summary.PDFPath)
	assert.Len(t, st.Quiz, 1)
}

func TestService_RestoreProcessedIndex(t *testing.T) {
	f := newFixture(t)
	first := f.processedState(t)

	again := newFixtureWith(t, f.cfg)
	st, err := again.svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Processed, st.Stage)
	assert.Equal(t, first.ChunkCount, st.ChunkCount)
	assert.NotEqual(t, first.ID, st.ID)
}

func TestRequireProcessed(t *testing.T) {
	st := New("s1")
	assert.ErrorIs(t, requireProcessed(st), models.ErrPreconditionNotMet)

	st = Reduce(st, UploadedDoc{Path: "bio.docx"})
	assert.ErrorIs(t, requireProcessed(st), models.ErrPreconditionNotMet)

	st = Reduce(st, ProcessedDoc{Chunks: 3})
	require.NoError(t, requireProcessed(st))
}
