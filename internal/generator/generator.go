package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"

	"study-rag/internal/config"
	"study-rag/internal/helper"
	"study-rag/internal/llmservice"
	"study-rag/internal/models"
	"study-rag/internal/rag"
	"study-rag/internal/report"
)

// Generator turns retrieved context into study material.
type Generator struct {
	rag *rag.RAG
	llm llms.Model
	cfg *config.Config
}

func NewGenerator(r *rag.RAG, cfg *config.Config) *Generator {
	return &Generator{rag: r, llm: r.LLM(), cfg: cfg}
}

func (g *Generator) Flashcards(ctx context.Context, numCards int) ([]models.Flashcard, error) {
	if numCards <= 0 {
		numCards = g.cfg.Generation.NumCards
	}
	raw, err := g.generate(ctx, models.FlashcardQuery, models.FlashcardPromptTemplate,
		map[string]any{"num_cards": numCards}, g.cfg.Generation.FlashcardTemperature)
	if err != nil {
		return nil, err
	}
	cards, err := ParseFlashcardsJSON(raw)
	if err != nil {
		log.Warn().Err(err).Msg("Discarding flashcard response")
		return nil, err
	}
	log.Info().Int("requested", numCards).Int("cards", len(cards)).Msg("Flashcards generated")
	return cards, nil
}

func (g *Generator) Quiz(ctx context.Context, numQuestions int) ([]models.QuizQuestion, error) {
	if numQuestions <= 0 {
		numQuestions = g.cfg.Generation.NumQuestions
	}
	raw, err := g.generate(ctx, models.QuizQuery, models.QuizPromptTemplate,
		map[string]any{"num_questions": numQuestions}, g.cfg.Generation.QuizTemperature)
	if err != nil {
		return nil, err
	}
	questions, err := ParseQuizJSON(raw)
	if err != nil {
		log.Warn().Err(err).Msg("Discarding quiz response")
		return nil, err
	}
	log.Info().Int("requested", numQuestions).Int("questions", len(questions)).Msg("Quiz generated")
	return questions, nil
}

// Summarize writes the summary as PDF and HTML. With an empty outDir the
// PDF goes to a temp file and no HTML file is written.
func (g *Generator) Summarize(ctx context.Context, title, outDir string) (*models.Summary, error) {
	text, err := g.generate(ctx, models.SummaryQuery, models.SummaryPromptTemplate, nil, g.cfg.Generation.SummaryTemperature)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("%w: empty summary", models.ErrMalformedResponse)
	}

	summary := &models.Summary{Title: title, Text: text}
	var pdfPath string
	if outDir != "" {
		if err := helper.CreateFolder(outDir); err != nil {
			return nil, err
		}
		pdfPath = filepath.Join(outDir, fileStem(title)+".pdf")
	}
	if summary.PDFPath, err = report.SummaryPDF(title, text, pdfPath); err != nil {
		return nil, err
	}

	if outDir != "" {
		page, err := report.SummaryHTMLPage(title, text)
		if err != nil {
			return nil, err
		}
		summary.HTMLPath = filepath.Join(outDir, fileStem(title)+".html")
		if err := os.WriteFile(summary.HTMLPath, []byte(page), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write summary html: %w", err)
		}
	}
	log.Info().Str("pdf", summary.PDFPath).Str("html", summary.HTMLPath).Msg("Summary written")
	return summary, nil
}

func (g *Generator) generate(ctx context.Context, query, tmpl string, vars map[string]any, temperature float64) (string, error) {
	content, _, err := g.rag.RetrieveContext(ctx, query)
	if err != nil {
		return "", err
	}

	values := map[string]any{"content": content}
	inputs := []string{"content"}
	for k, v := range vars {
		values[k] = v
		inputs = append(inputs, k)
	}
	prompt, err := prompts.NewPromptTemplate(tmpl, inputs).Format(values)
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	return llmservice.Generate(ctx, g.llm, prompt, llmservice.Options{
		Model:       g.cfg.InferenceLLM.Model,
		Temperature: temperature,
	})
}

func fileStem(title string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(title))
	if stem == "" {
		return "summary"
	}
	return stem
}
