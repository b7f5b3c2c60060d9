package chromemdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"study-rag/internal/models"
)

// metadata keys
const (
	metaSource  = "source"
	metaPage    = "page"
	metaChunkID = "chunk_id"
	metaOffset  = "offset"
	metaOverlap = "overlap"
)

// VectorDBManager encapsulates the chromem-go database operations
type VectorDBManager struct {
	db             *chromem.DB
	collection     *chromem.Collection
	collectionName string
	embeddingFunc  chromem.EmbeddingFunc
	dbPath         string
	compress       bool
	encryptionKey  string
	filePath       string
}

// NewVectorDBManager opens (or creates) the persistent database at dbPath.
// embeddingFunc is used only when chromem has to embed text itself.
func NewVectorDBManager(dbPath, collectionName string, compress bool, encryptionKey string, embeddingFunc chromem.EmbeddingFunc) (*VectorDBManager, error) {
	db, err := chromem.NewPersistentDB(dbPath, compress)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	m := &VectorDBManager{
		db:             db,
		collectionName: collectionName,
		embeddingFunc:  embeddingFunc,
		dbPath:         dbPath,
		compress:       compress,
		encryptionKey:  encryptionKey,
		filePath:       filepath.Clean(dbPath) + "-" + collectionName + ".chromem",
	}
	// an existing index is picked up, a missing one stays nil until Reset
	m.collection = db.GetCollection(collectionName, embeddingFunc)
	if m.collection == nil && encryptionKey != "" {
		if _, err := os.Stat(m.filePath); err == nil {
			if err := m.Import(context.Background()); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Reset drops any previous index and starts an empty collection.
func (m *VectorDBManager) Reset(ctx context.Context) error {
	if err := m.db.DeleteCollection(m.collectionName); err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	c, err := m.db.CreateCollection(m.collectionName, nil, m.embeddingFunc)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	m.collection = c
	return nil
}

// add multiple documents
func (m *VectorDBManager) Add(ctx context.Context, chunks []models.ChunkEmbedding) error {
	if m.collection == nil {
		return fmt.Errorf("collection %s does not exist", m.collectionName)
	}
	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = chromem.Document{
			ID:        c.ID,
			Content:   c.Content,
			Metadata:  createMetadata(c.Chunk),
			Embedding: c.Embedding,
		}
	}
	if err := m.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	log.Debug().Int("documents", len(docs)).Str("collection", m.collectionName).Msg("Added documents")

	// the persistent db already holds the documents, the snapshot is a copy
	if m.encryptionKey != "" {
		if err := m.Export(ctx); err != nil {
			log.Warn().Err(err).Str("file", m.filePath).Msg("Snapshot not written")
		}
	}
	return nil
}

// Search returns up to k nearest chunks to the query embedding.
func (m *VectorDBManager) Search(ctx context.Context, query []float32, k int) ([]models.SearchResult, error) {
	if len(query) == 0 {
		return nil, fmt.Errorf("query embedding must be provided")
	}
	count := m.count()
	if count == 0 || k <= 0 {
		return nil, nil
	}
	// chromem rejects nResults above the collection size
	k = min(k, count)

	results, err := m.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: query,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}

	out := make([]models.SearchResult, len(results))
	for i, r := range results {
		out[i] = models.SearchResult{
			Chunk:      chunkFromResult(r),
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

func (m *VectorDBManager) Count(ctx context.Context) (int, error) {
	return m.count(), nil
}

func (m *VectorDBManager) count() int {
	if m.collection == nil {
		return 0
	}
	return m.collection.Count()
}

// export to an encrypted snapshot file next to the database directory,
// encryptionKey must be 32 bytes
func (m *VectorDBManager) Export(ctx context.Context) error {
	if m.encryptionKey == "" {
		return fmt.Errorf("encryption key is required")
	}
	if m.collection == nil {
		return fmt.Errorf("collection is required")
	}

	log.Debug().Str("collection", m.collectionName).Str("file", m.filePath).Bool("compress", m.compress).Msg("Exporting collection")
	if err := m.db.ExportToFile(m.filePath, m.compress, m.encryptionKey, m.collectionName); err != nil {
		return fmt.Errorf("failed to export database: %w", err)
	}
	return nil
}

// import a snapshot written by Export
func (m *VectorDBManager) Import(ctx context.Context) error {
	if err := m.db.ImportFromFile(m.filePath, m.encryptionKey, m.collectionName); err != nil {
		return fmt.Errorf("failed to import database: %w", err)
	}
	m.collection = m.db.GetCollection(m.collectionName, m.embeddingFunc)
	return nil
}

func (m *VectorDBManager) Close() error {
	return nil
}

// meta data will have source filename, page number, chunk id and offsets
func createMetadata(c models.Chunk) map[string]string {
	return map[string]string{
		metaSource:  c.SourceFilename,
		metaPage:    strconv.Itoa(c.PageNumber),
		metaChunkID: strconv.Itoa(c.ChunkID),
		metaOffset:  strconv.Itoa(c.Offset),
		metaOverlap: strconv.Itoa(c.Overlap),
	}
}

func chunkFromResult(r chromem.Result) models.Chunk {
	atoi := func(key string) int {
		n, _ := strconv.Atoi(r.Metadata[key])
		return n
	}
	return models.Chunk{
		ID:             r.ID,
		Content:        r.Content,
		SourceFilename: r.Metadata[metaSource],
		PageNumber:     atoi(metaPage),
		ChunkID:        atoi(metaChunkID),
		Offset:         atoi(metaOffset),
		Overlap:        atoi(metaOverlap),
	}
}
