package cli

import (
	"context"
	"fmt"

	"study-rag/internal/embedding"
	"study-rag/internal/llmservice"
	"study-rag/internal/rag"
	"study-rag/internal/session"
)

// app is the wiring shared by every command.
type app struct {
	svc   *session.Service
	store rag.VectorStore
}

func newApp(ctx context.Context) (*app, error) {
	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		return nil, err
	}
	// created on first use, uploads need no inference credentials
	llm := llmservice.NewLazy(&cfg.InferenceLLM)
	store, err := rag.NewVectorStore(ctx, cfg, embedder)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	svc, err := session.NewService(cfg, rag.NewRAG(store, embedder, llm, cfg))
	if err != nil {
		store.Close()
		return nil, err
	}
	return &app{svc: svc, store: store}, nil
}

// restore opens the app and the session persisted in the index.
func restore(ctx context.Context) (*app, session.State, error) {
	a, err := newApp(ctx)
	if err != nil {
		return nil, session.State{}, err
	}
	st, err := a.svc.Restore(ctx)
	if err != nil {
		a.Close()
		return nil, session.State{}, err
	}
	return a, st, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
