package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"study-rag/internal/models"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	DefaultChunkSize    = 500 // runes
	DefaultChunkOverlap = 100 // runes
)

// boundary preference: paragraph, line, sentence, word, character
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// room left for the separator the splitter drops between two pieces
const maxSeparatorLen = 2

// Chunker splits page text into chunks of at most size runes. Every chunk
// after the first on a page starts with the last overlap runes of the
// previous one.
type Chunker struct {
	size     int
	overlap  int
	splitter textsplitter.TextSplitter
}

func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", size, overlap)
	}

	// pieces leave room for the prepended overlap
	pieceSize := size
	if overlap > 0 {
		pieceSize = max(size-overlap-maxSeparatorLen, 1)
	}
	return &Chunker{
		size:    size,
		overlap: overlap,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(pieceSize),
			textsplitter.WithChunkOverlap(0),
			textsplitter.WithSeparators(separators),
			textsplitter.WithLenFunc(utf8.RuneCountInString),
		),
	}, nil
}

// Chunk splits every page separately so a chunk never spans two pages.
func (c *Chunker) Chunk(source string, pages []models.Page) ([]models.Chunk, error) {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))

	var chunks []models.Chunk
	for _, page := range pages {
		texts, err := c.splitter.SplitText(page.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to split page %d: %w", page.Number, err)
		}
		chunks = append(chunks, c.getChunks(base, source, page, texts)...)
	}
	return chunks, nil
}

// span is a rune range of the page text
type span struct{ start, end int }

// get chunks from split pieces. Offsets and overlaps are in runes.
func (c *Chunker) getChunks(base, source string, page models.Page, texts []string) []models.Chunk {
	runes := []rune(page.Content)

	var (
		chunks []models.Chunk
		from   int // byte position to search from
		prev   *span
	)
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		n := len(chunks) + 1
		chunk := models.Chunk{
			ID:             fmt.Sprintf("%s-p%d-c%d", base, page.Number, n),
			Content:        text,
			SourceFilename: source,
			PageNumber:     page.Number,
			ChunkID:        n,
			Offset:         -1,
		}

		idx := strings.Index(page.Content[from:], text)
		if idx < 0 {
			// not locatable, keep the piece as is
			chunks = append(chunks, chunk)
			prev = nil
			continue
		}
		byteStart := from + idx
		from = byteStart + len(text)

		piece := span{start: utf8.RuneCountInString(page.Content[:byteStart])}
		piece.end = piece.start + utf8.RuneCountInString(text)

		start := piece.start
		if prev != nil && c.overlap > 0 {
			start = c.overlapStart(runes, *prev, piece)
			chunk.Overlap = max(prev.end-start, 0)
		}
		chunk.Offset = start
		chunk.Content = string(runes[start:piece.end])
		chunks = append(chunks, chunk)
		prev = &span{start: start, end: piece.end}
	}
	return chunks
}

// overlapStart picks where a chunk ending at piece.end begins so it repeats
// at least overlap runes of prev, backing up to a word start while the chunk
// still fits.
func (c *Chunker) overlapStart(runes []rune, prev, piece span) int {
	start := max(prev.end-c.overlap, prev.start)
	for start > prev.start && piece.end-(start-1) <= c.size && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	// keep within size when the gap between pieces was unusually wide
	if piece.end-start > c.size {
		start = piece.end - c.size
	}
	return start
}
