package models

// Page is one block of text extracted from a source document.
type Page struct {
	Number  int
	Content string
}

// Chunk represents a parsed chunk with metadata
type Chunk struct {
	ID             string
	Content        string
	SourceFilename string
	PageNumber     int
	ChunkID        int
	// Offset is the byte offset of Content within its page, -1 if unknown.
	Offset int
	// Overlap is the number of bytes shared with the previous chunk of the same page.
	Overlap int
}

type ChunkEmbedding struct {
	Chunk
	Embedding []float32
}

type SearchResult struct {
	Chunk      Chunk
	Similarity float32
}

// Answer is the result of a free-text question over the indexed document.
type Answer struct {
	Query   string
	Source  string
	Content string
}
