package report

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog/log"
)

type LineStyle int

const (
	StyleBody LineStyle = iota
	StyleHeading
	StyleSubheading
)

func (s LineStyle) String() string {
	switch s {
	case StyleHeading:
		return "heading"
	case StyleSubheading:
		return "subheading"
	default:
		return "body"
	}
}

// ClassifyLine picks the PDF style of a trimmed summary line: a leading "#"
// is a heading, an all upper case line longer than three characters is a
// subheading, anything else is body text.
func ClassifyLine(line string) LineStyle {
	switch {
	case strings.HasPrefix(line, "#"):
		return StyleHeading
	case len([]rune(line)) > 3 && isUpper(line):
		return StyleSubheading
	default:
		return StyleBody
	}
}

// at least one cased letter and no lower case ones
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

const (
	lineHeight  = 6.0
	paraSpacing = 3.5
)

// SummaryPDF writes title and text to a letter sized PDF at path. An empty
// path writes to a new temp file. The written path is returned.
func SummaryPDF(title, text, path string) (string, error) {
	if path == "" {
		f, err := os.CreateTemp("", "summary-*.pdf")
		if err != nil {
			return "", fmt.Errorf("failed to create temp file: %w", err)
		}
		path = f.Name()
		f.Close()
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetMargins(20, 20, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(title), "", "C", false)
	pdf.Ln(7)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch ClassifyLine(line) {
		case StyleHeading:
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 14)
			pdf.MultiCell(0, 7, tr(strings.TrimSpace(strings.TrimLeft(line, "#"))), "", "L", false)
			pdf.Ln(1)
		case StyleSubheading:
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
			pdf.Ln(paraSpacing)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write summary pdf: %w", err)
	}
	log.Debug().Str("path", path).Int("pages", pdf.PageNo()).Msg("Summary PDF written")
	return path, nil
}
