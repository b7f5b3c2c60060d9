package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"study-rag/internal/config"
	"study-rag/internal/embedding"
	"study-rag/internal/llmservice"
	"study-rag/internal/models"
	"study-rag/internal/rag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notes = []string{
	"Photosynthesis converts light energy into chemical energy inside chloroplasts.",
	"Mitosis is a type of cell division that yields two identical daughter cells.",
	"Enzymes are biological catalysts that speed up chemical reactions.",
}

func newTestGenerator(t *testing.T, llm *llmservice.MockLLM, indexed bool) (*Generator, *config.Config) {
	t.Helper()
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.Index.Path = t.TempDir()
	embedder := embedding.NewMockEmbedder(128)

	store, err := rag.NewVectorStore(ctx, cfg, embedder)
	require.NoError(t, err)
	r := rag.NewRAG(store, embedder, llm, cfg)

	if indexed {
		chunks := make([]models.Chunk, len(notes))
		for i, n := range notes {
			chunks[i] = models.Chunk{ID: fmt.Sprintf("bio-p1-c%d", i+1), Content: n, PageNumber: 1, ChunkID: i + 1}
		}
		_, err := r.BuildIndex(ctx, chunks, nil)
		require.NoError(t, err)
	}
	return NewGenerator(r, cfg), cfg
}

func TestFlashcards(t *testing.T) {
	llm := llmservice.NewMockLLM("<think>plan the cards</think>\n" + `[{"front":"Q1","back":"A1"},{"front":"Q2","back":"A2"}]`)
	g, cfg := newTestGenerator(t, llm, true)

	cards, err := g.Flashcards(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []models.Flashcard{{Front: "Q1", Back: "A1"}, {Front: "Q2", Back: "A2"}}, cards)

	calls := llm.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "generate 2 flashcards")
	assert.Contains(t, calls[0].Prompt, notes[0])
	assert.Equal(t, cfg.Generation.FlashcardTemperature, calls[0].Options.Temperature)
}

func TestQuiz(t *testing.T) {
	llm := llmservice.NewMockLLM(`[{"question":"What divides cells?","options":{"A":"Osmosis","B":"Mitosis","C":"Catalysis","D":"Diffusion"},"correct_option":"B"}]`)
	g, cfg := newTestGenerator(t, llm, true)

	questions, err := g.Quiz(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "B", questions[0].CorrectOption)

	calls := llm.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, fmt.Sprintf("create %d multiple choice questions", cfg.Generation.NumQuestions))
}

func TestFlashcards_MalformedResponse(t *testing.T) {
	g, _ := newTestGenerator(t, llmservice.NewMockLLM("Sure! Here are some flashcards."), true)

	cards, err := g.Flashcards(context.Background(), 3)
	assert.ErrorIs(t, err, models.ErrMalformedResponse)
	assert.Nil(t, cards)
}

func TestFlashcards_BeforeProcessing(t *testing.T) {
	llm := llmservice.NewMockLLM()
	g, _ := newTestGenerator(t, llm, false)

	_, err := g.Flashcards(context.Background(), 3)
	assert.ErrorIs(t, err, models.ErrPreconditionNotMet)
	assert.Empty(t, llm.Calls())
}

func TestQuiz_LLMError(t *testing.T) {
	llm := llmservice.NewMockLLM()
	llm.FailWith(errors.New("rate limited"))
	g, _ := newTestGenerator(t, llm, true)

	_, err := g.Quiz(context.Background(), 2)
	assert.ErrorContains(t, err, "rate limited")
}

func TestSummarize(t *testing.T) {
	llm := llmservice.NewMockLLM("# Overview\nKEY TERMS\nCells divide by mitosis.")
	g, _ := newTestGenerator(t, llm, true)
	out := t.TempDir()

	summary, err := g.Summarize(context.Background(), "Bio Notes", out)
	require.NoError(t, err)
	assert.Equal(t, "Bio Notes", summary.Title)
	assert.Equal(t, filepath.Join(out, "Bio_Notes.pdf"), summary.PDFPath)
	assert.FileExists(t, summary.PDFPath)

	html, err := os.ReadFile(summary.HTMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>Overview</h1>")
}

func TestSummarize_TempFile(t *testing.T) {
	g, _ := newTestGenerator(t, llmservice.NewMockLLM("Short summary."), true)

	summary, err := g.Summarize(context.Background(), "Notes", "")
	require.NoError(t, err)
	defer os.Remove(summary.PDFPath)

	assert.FileExists(t, summary.PDFPath)
	assert.Empty(t, summary.HTMLPath)
}
