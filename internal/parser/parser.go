package parser

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"study-rag/internal/models"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog/log"
)

const defaultPageNumber = 1

var (
	paragraphEndRe = regexp.MustCompile(`</w:p>|<w:br[^>]*/>|<w:cr[^>]*/>`)
	tabRe          = regexp.MustCompile(`<w:tab[^>]*/>`)
	xmlTagRe       = regexp.MustCompile(`<[^>]+>`)
)

// SupportedExtension reports whether the loader can read files with ext.
func SupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".pdf", ".docx":
		return true
	}
	return false
}

// Load extracts the text blocks of a .pdf or .docx file in document order.
func Load(filePath string) ([]models.Page, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	var (
		pages []models.Page
		err   error
	)
	switch ext {
	case ".pdf":
		pages, err = loadPDF(filePath)
	case ".docx":
		pages, err = loadDOCX(filePath)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrNoText, filepath.Base(filePath))
	}
	log.Debug().Str("file", filePath).Int("pages", len(pages)).Msg("Loaded document")
	return pages, nil
}

func loadPDF(filePath string) (pages []models.Page, err error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Get file size for reader initialization
	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("failed to read pdf %s: %v", filePath, r)
		}
	}()

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract page %d: %w", i, err)
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, models.Page{Number: i, Content: pageText})
	}
	return pages, nil
}

func loadDOCX(filePath string) ([]models.Page, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx: %w", err)
	}
	defer r.Close()

	text := extractTextFromXML(r.Editable().GetContent())
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	// DOCX has no page numbers
	return []models.Page{{Number: defaultPageNumber, Content: text}}, nil
}

// extractTextFromXML turns WordprocessingML into plain text with a blank line
// between paragraphs, dropping empty paragraphs.
func extractTextFromXML(xmlContent string) string {
	xmlContent = tabRe.ReplaceAllString(xmlContent, "\t")
	xmlContent = paragraphEndRe.ReplaceAllString(xmlContent, "\n")
	plain := html.UnescapeString(xmlTagRe.ReplaceAllString(xmlContent, ""))

	var paragraphs []string
	for _, p := range strings.Split(plain, "\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
