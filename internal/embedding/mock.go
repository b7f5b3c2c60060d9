package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

const DefaultMockDimension = 256

// MockEmbedder is an offline embedder that hashes lower-cased words into a
// fixed number of buckets. Identical texts always map to identical vectors.
type MockEmbedder struct {
	dimension int
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	if dimension <= 1 {
		dimension = DefaultMockDimension
	}
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors[i] = e.embed(text)
	}
	return vectors, nil
}

func (e *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(text), nil
}

func (e *MockEmbedder) embed(text string) []float32 {
	vec := make([]float32, e.dimension)
	// last bucket is a constant so no vector is all zeros
	vec[e.dimension-1] = 0.1
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		h.Write([]byte(w))
		vec[int(h.Sum32())%(e.dimension-1)]++
	}
	return vec
}
