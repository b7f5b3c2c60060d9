package embedding

import (
	"context"
	"errors"
	"testing"

	"study-rag/internal/config"
	"study-rag/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingEmbedder struct{}

func (failingEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("model not loaded")
}

func (failingEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("model not loaded")
}

func chunks(texts ...string) []models.Chunk {
	out := make([]models.Chunk, len(texts))
	for i, t := range texts {
		out[i] = models.Chunk{ID: t, Content: t, ChunkID: i + 1}
	}
	return out
}

func TestGenerateEmbedding_Batches(t *testing.T) {
	var calls [][2]int
	progress := func(done, total int) { calls = append(calls, [2]int{done, total}) }

	got, err := GenerateEmbedding(context.Background(), NewMockEmbedder(16), chunks("a", "b", "c", "d", "e"), 2, progress)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "c", got[2].Content)
	assert.Len(t, got[0].Embedding, 16)
	assert.Equal(t, [][2]int{{2, 5}, {4, 5}, {5, 5}}, calls)
}

func TestGenerateEmbedding_EmptyChunk(t *testing.T) {
	_, err := GenerateEmbedding(context.Background(), NewMockEmbedder(16), chunks("a", "  "), 8, nil)
	assert.ErrorIs(t, err, models.ErrEmbedding)
}

func TestGenerateEmbedding_NoChunks(t *testing.T) {
	_, err := GenerateEmbedding(context.Background(), NewMockEmbedder(16), nil, 8, nil)
	assert.ErrorIs(t, err, models.ErrEmbedding)
}

func TestGenerateEmbedding_ProviderFailure(t *testing.T) {
	_, err := GenerateEmbedding(context.Background(), failingEmbedder{}, chunks("a"), 8, nil)
	assert.ErrorIs(t, err, models.ErrEmbedding)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestEmbedQuery(t *testing.T) {
	_, err := EmbedQuery(context.Background(), NewMockEmbedder(16), " ")
	assert.ErrorIs(t, err, models.ErrEmbedding)

	_, err = EmbedQuery(context.Background(), failingEmbedder{}, "cells")
	assert.ErrorIs(t, err, models.ErrEmbedding)

	vec, err := EmbedQuery(context.Background(), NewMockEmbedder(16), "cells")
	require.NoError(t, err)
	assert.Len(t, vec, 16)
}

func TestMockEmbedder_Deterministic(t *testing.T) {
	e := NewMockEmbedder(64)
	a, _ := e.EmbedQuery(context.Background(), "The Mitochondria, powerhouse!")
	b, _ := e.EmbedQuery(context.Background(), "the mitochondria powerhouse")
	c, _ := e.EmbedQuery(context.Background(), "photosynthesis in leaves")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, float32(0.1), a[63])
}

func TestNewEmbedder(t *testing.T) {
	e, err := NewEmbedder(&config.LLMConfig{Provider: config.ProviderMock})
	require.NoError(t, err)
	assert.IsType(t, &MockEmbedder{}, e)

	_, err = NewEmbedder(&config.LLMConfig{Provider: "unknown"})
	assert.ErrorIs(t, err, models.ErrEmbedding)

	e, err = NewEmbedder(&config.LLMConfig{Provider: config.ProviderOllama, BaseURL: "http://localhost:11434", Model: "all-minilm"})
	require.NoError(t, err)
	assert.NotNil(t, e)
}
