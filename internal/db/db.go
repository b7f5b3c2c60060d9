package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"study-rag/internal/config"
	"study-rag/internal/models"
)

type Document struct {
	bun.BaseModel  `bun:"table:documents,alias:d"`
	ID             int64           `bun:"id,pk,autoincrement"`
	ChunkID        string          `bun:"chunk_id,notnull,unique"`
	Content        string          `bun:"content,notnull"`
	SourceFilename string          `bun:"source_filename"`
	PageNumber     int             `bun:"page_number"`
	ChunkSeq       int             `bun:"chunk_seq"`
	ChunkOffset    int             `bun:"chunk_offset"`
	ChunkOverlap   int             `bun:"chunk_overlap"`
	Embedding      pgvector.Vector `bun:"embedding,notnull,type:vector"`
	Distance       float64         `bun:"distance,scanonly"`
}

// Store is a pgvector backed index.
type Store struct {
	db *bun.DB
}

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

func ConnectDB(cfg *config.DatabaseConfig) *sql.DB {
	return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
}

// NewStore connects to Postgres and verifies the connection.
func NewStore(ctx context.Context, cfg *config.DatabaseConfig) (*Store, error) {
	db := NewDB(ConnectDB(cfg), cfg.Debug)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: db}, nil
}

// Reset drops the documents table and recreates it empty.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("failed to enable pgvector: %w", err)
	}
	if _, err := s.db.NewDropTable().Model((*Document)(nil)).IfExists().Exec(ctx); err != nil {
		return fmt.Errorf("failed to drop documents: %w", err)
	}
	if _, err := s.db.NewCreateTable().Model((*Document)(nil)).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create documents: %w", err)
	}
	return nil
}

func (s *Store) Add(ctx context.Context, chunks []models.ChunkEmbedding) error {
	if len(chunks) == 0 {
		return nil
	}
	docs := make([]Document, len(chunks))
	for i, c := range chunks {
		docs[i] = toDocument(c)
	}
	if _, err := s.db.NewInsert().Model(&docs).Exec(ctx); err != nil {
		return fmt.Errorf("failed to store documents: %w", err)
	}
	log.Debug().Int("documents", len(docs)).Msg("Stored documents")
	return nil
}

// Search orders by cosine distance and reports similarity as 1 - distance.
func (s *Store) Search(ctx context.Context, query []float32, k int) ([]models.SearchResult, error) {
	if k <= 0 {
		return nil, nil
	}
	vec := pgvector.NewVector(query)

	var docs []Document
	err := s.db.NewSelect().
		Model(&docs).
		ColumnExpr("d.*").
		ColumnExpr("d.embedding <=> ? AS distance", vec).
		OrderExpr("distance").
		Limit(k).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}

	results := make([]models.SearchResult, len(docs))
	for i, d := range docs {
		results[i] = models.SearchResult{
			Chunk:      d.chunk(),
			Similarity: float32(1 - d.Distance),
		}
	}
	return results, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var exists bool
	err := s.db.NewRaw("SELECT to_regclass('documents') IS NOT NULL").Scan(ctx, &exists)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}
	return s.db.NewSelect().Model((*Document)(nil)).Count(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func toDocument(c models.ChunkEmbedding) Document {
	return Document{
		ChunkID:        c.ID,
		Content:        c.Content,
		SourceFilename: c.SourceFilename,
		PageNumber:     c.PageNumber,
		ChunkSeq:       c.ChunkID,
		ChunkOffset:    c.Offset,
		ChunkOverlap:   c.Overlap,
		Embedding:      pgvector.NewVector(c.Embedding),
	}
}

func (d Document) chunk() models.Chunk {
	return models.Chunk{
		ID:             d.ChunkID,
		Content:        d.Content,
		SourceFilename: d.SourceFilename,
		PageNumber:     d.PageNumber,
		ChunkID:        d.ChunkSeq,
		Offset:         d.ChunkOffset,
		Overlap:        d.ChunkOverlap,
	}
}
