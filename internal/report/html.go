package report

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// SummaryHTML renders the markdown summary text as an HTML fragment.
func SummaryHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return buf.String(), nil
}

// SummaryHTMLPage wraps the rendered summary in a standalone page.
func SummaryHTMLPage(title, text string) (string, error) {
	body, err := SummaryHTML(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, pageData{Title: title, Body: body}); err != nil {
		return "", fmt.Errorf("failed to render summary page: %w", err)
	}
	return buf.String(), nil
}
