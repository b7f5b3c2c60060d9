package llmservice

import (
	"context"
	"sync"

	"study-rag/internal/config"

	"github.com/tmc/langchaingo/llms"
)

// lazyModel builds the client on its first call, so commands that never
// generate text need no inference credentials.
type lazyModel struct {
	cfg *config.LLMConfig
	build func(*config.LLMConfig) (llms.Model, error)

	mu  sync.Mutex
	llm llms.Model
}

// NewLazy returns an llms.Model that creates the client described by
// llmConfig when it is first used. A failed creation is retried on the
// next call.
func NewLazy(llmConfig *config.LLMConfig) llms.Model {
	return &lazyModel{cfg: llmConfig, build: New}
}

func (m *lazyModel) model() (llms.Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.llm != nil {
		return m.llm, nil
	}
	llm, err := m.build(m.cfg)
	if err != nil {
		return nil, err
	}
	m.llm = llm
	return llm, nil
}

func (m *lazyModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	llm, err := m.model()
	if err != nil {
		return nil, err
	}
	return llm.GenerateContent(ctx, messages, options...)
}

func (m *lazyModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}
