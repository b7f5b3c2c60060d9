package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"study-rag/internal/config"
	"study-rag/internal/models"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const defaultBatchSize = 32

// Progress is called after every embedded batch.
type Progress func(done, total int)

// NewEmbedder creates the embedder configured in LLMconfig
func NewEmbedder(LLMconfig *config.LLMConfig) (embeddings.Embedder, error) {
	log.Debug().Interface("config", map[string]string{
		"provider":        LLMconfig.Provider,
		"base_url":        LLMconfig.BaseURL,
		"embedding_model": LLMconfig.Model,
	}).Msg("Creating embedder")

	var (
		client embeddings.EmbedderClient
		err    error
	)
	switch LLMconfig.Provider {
	case config.ProviderOllama:
		opts := []ollama.Option{ollama.WithModel(LLMconfig.Model)}
		if LLMconfig.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(LLMconfig.BaseURL))
		}
		client, err = ollama.New(opts...)
	case config.ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(strings.TrimPrefix(LLMconfig.Key, "Bearer ")),
			openai.WithEmbeddingModel(LLMconfig.Model),
		}
		if LLMconfig.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(LLMconfig.BaseURL))
		}
		client, err = openai.New(opts...)
	case config.ProviderMock:
		return NewMockEmbedder(DefaultMockDimension), nil
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", models.ErrEmbedding, LLMconfig.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to initialize embedding model: %v", models.ErrEmbedding, err)
	}

	embedder, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create embedder: %v", models.ErrEmbedding, err)
	}
	return embedder, nil
}

// GenerateEmbedding embeds chunks in batches. Any empty chunk or provider
// failure aborts the whole run.
func GenerateEmbedding(ctx context.Context, embedder embeddings.Embedder, chunks []models.Chunk, batchSize int, progress Progress) ([]models.ChunkEmbedding, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks to embed", models.ErrEmbedding)
	}
	for _, c := range chunks {
		if strings.TrimSpace(c.Content) == "" {
			return nil, fmt.Errorf("%w: chunk %s is empty", models.ErrEmbedding, c.ID)
		}
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	chunkEmbeddings := make([]models.ChunkEmbedding, 0, len(chunks))
	for start := 0; start < len(chunks); start += batchSize {
		end := min(start+batchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		vectors, err := embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrEmbedding, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("%w: expected %d vectors, got %d", models.ErrEmbedding, len(batch), len(vectors))
		}
		for i, c := range batch {
			if len(vectors[i]) == 0 {
				return nil, fmt.Errorf("%w: empty vector for chunk %s", models.ErrEmbedding, c.ID)
			}
			chunkEmbeddings = append(chunkEmbeddings, models.ChunkEmbedding{Chunk: c, Embedding: vectors[i]})
		}
		if progress != nil {
			progress(end, len(chunks))
		}
	}

	log.Debug().Int("chunks", len(chunkEmbeddings)).Msg("Generated embeddings")
	return chunkEmbeddings, nil
}

// EmbedQuery embeds a single retrieval query.
func EmbedQuery(ctx context.Context, embedder embeddings.Embedder, query string) ([]float32, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", models.ErrEmbedding)
	}
	vec, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEmbedding, err)
	}
	return vec, nil
}
