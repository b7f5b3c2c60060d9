package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"

	"study-rag/internal/chromemdb"
	"study-rag/internal/config"
	"study-rag/internal/db"
	"study-rag/internal/embedding"
	"study-rag/internal/llmservice"
	"study-rag/internal/models"
)

// VectorStore is a single-namespace index of chunk embeddings.
type VectorStore interface {
	// Reset discards the previous index.
	Reset(ctx context.Context) error
	Add(ctx context.Context, chunks []models.ChunkEmbedding) error
	Search(ctx context.Context, query []float32, k int) ([]models.SearchResult, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

type RAG struct {
	store    VectorStore
	embedder embeddings.Embedder
	llm      llms.Model
	cfg      *config.Config
}

func NewRAG(store VectorStore, embedder embeddings.Embedder, llm llms.Model, cfg *config.Config) *RAG {
	return &RAG{store: store, embedder: embedder, llm: llm, cfg: cfg}
}

// NewVectorStore opens the index backend selected in the config.
func NewVectorStore(ctx context.Context, cfg *config.Config, embedder embeddings.Embedder) (VectorStore, error) {
	var (
		store VectorStore
		err   error
	)
	switch cfg.Index.Backend {
	case config.BackendPGVector:
		store, err = db.NewStore(ctx, &cfg.Database)
	case config.BackendChromem, "":
		var embedFunc chromem.EmbeddingFunc
		if embedder != nil {
			embedFunc = func(ctx context.Context, text string) ([]float32, error) {
				return embedder.EmbedQuery(ctx, text)
			}
		}
		store, err = chromemdb.NewVectorDBManager(cfg.Index.Path, cfg.Index.Collection, cfg.Index.Compress, cfg.RAG.EncryptionKey, embedFunc)
	default:
		return nil, fmt.Errorf("unknown index backend %q", cfg.Index.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (r *RAG) Store() VectorStore {
	return r.store
}

func (r *RAG) LLM() llms.Model {
	return r.llm
}

// BuildIndex embeds the chunks and replaces the stored index with them. The
// previous index is left alone when embedding fails. Once the store has been
// reset a failed write leaves the index empty, never partially filled.
func (r *RAG) BuildIndex(ctx context.Context, chunks []models.Chunk, progress embedding.Progress) (int, error) {
	chunkEmbeddings, err := embedding.GenerateEmbedding(ctx, r.embedder, chunks, r.cfg.RAG.BatchSize, progress)
	if err != nil {
		return 0, err
	}
	if err := r.store.Reset(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrEmbedding, err)
	}
	if err := r.store.Add(ctx, chunkEmbeddings); err != nil {
		if resetErr := r.store.Reset(ctx); resetErr != nil {
			log.Error().Err(resetErr).Msg("Failed to clear partial index")
		}
		return 0, fmt.Errorf("%w: %v", models.ErrEmbedding, err)
	}
	log.Info().Int("chunks", len(chunkEmbeddings)).Msg("Index built")
	return len(chunkEmbeddings), nil
}

// IsIndexed reports whether the store holds a processed document.
func (r *RAG) IsIndexed(ctx context.Context) (bool, error) {
	n, err := r.store.Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Retrieve returns the k chunks nearest to query, fewer if the index is smaller.
func (r *RAG) Retrieve(ctx context.Context, query string, k int) ([]models.SearchResult, error) {
	if k <= 0 {
		k = r.cfg.RAG.TopK
	}
	indexed, err := r.IsIndexed(ctx)
	if err != nil {
		return nil, err
	}
	if !indexed {
		return nil, fmt.Errorf("%w: no processed document", models.ErrPreconditionNotMet)
	}

	queryEmbedding, err := embedding.EmbedQuery(ctx, r.embedder, query)
	if err != nil {
		return nil, err
	}
	results, err := r.store.Search(ctx, queryEmbedding, k)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("query", query).Int("k", k).Int("results", len(results)).Msg("Retrieved chunks")
	return results, nil
}

// RetrieveContext retrieves for query and joins the chunk texts.
func (r *RAG) RetrieveContext(ctx context.Context, query string) (string, []models.SearchResult, error) {
	results, err := r.Retrieve(ctx, query, r.cfg.RAG.TopK)
	if err != nil {
		return "", nil, err
	}
	return Context(results), results, nil
}

// Context joins the retrieved chunk texts with single spaces.
func Context(results []models.SearchResult) string {
	parts := make([]string, len(results))
	for i, res := range results {
		parts[i] = res.Chunk.Content
	}
	return strings.Join(parts, " ")
}

// Sources lists where the retrieved chunks come from.
func Sources(results []models.SearchResult) string {
	var sb strings.Builder
	for i, res := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "- page %d, chunk %d (similarity %.2f)", res.Chunk.PageNumber, res.Chunk.ChunkID, res.Similarity)
	}
	return sb.String()
}

// Ask answers a free-text question from the retrieved chunks.
func (r *RAG) Ask(ctx context.Context, question string) (*models.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question must not be empty")
	}
	content, results, err := r.RetrieveContext(ctx, question)
	if err != nil {
		return nil, err
	}

	prompt, err := prompts.NewPromptTemplate(models.AskPromptTemplate, []string{"content", "question"}).
		Format(map[string]any{"content": content, "question": question})
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}

	response, err := llmservice.Generate(ctx, r.llm, prompt, llmservice.Options{
		Model:       r.cfg.InferenceLLM.Model,
		Temperature: r.cfg.Generation.AskTemperature,
	})
	if err != nil {
		return nil, err
	}

	return &models.Answer{
		Query:   question,
		Source:  Sources(results),
		Content: response,
	}, nil
}
