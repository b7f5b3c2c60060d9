package llmservice

import (
	"context"
	"errors"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// MockCall records one request made to a MockLLM.
type MockCall struct {
	Prompt  string
	Options llms.CallOptions
}

// MockLLM is an llms.Model that returns pre-configured responses in order.
type MockLLM struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     []MockCall
	respIndex int
}

func NewMockLLM(responses ...string) *MockLLM {
	return &MockLLM{responses: responses}
}

// FailWith makes the next calls return err, one per call.
func (m *MockLLM) FailWith(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, errs...)
}

func (m *MockLLM) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

func (m *MockLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, o := range options {
		o(&opts)
	}
	var prompt string
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				prompt += text.Text
			}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Prompt: prompt, Options: opts})

	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		return nil, err
	}
	if m.respIndex >= len(m.responses) {
		return nil, errors.New("mock llm: no response configured")
	}
	resp := m.responses[m.respIndex]
	m.respIndex++
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: resp}}}, nil
}

func (m *MockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}
