package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"study-rag/internal/config"
	"study-rag/internal/models"
	"study-rag/internal/parser/parsertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args and returns what it printed.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// flag values outlive a single execution
	forceInit, debug = false, false
	numCards, outputJSON = 0, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// offlineConfig writes a config that embeds with the mock provider and keeps
// all state under a temp dir.
func offlineConfig(t *testing.T) (string, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	c := config.DefaultConfig()
	c.UploadDir = filepath.Join(dir, "data")
	c.Index.Path = filepath.Join(dir, "db")
	c.EmbedLLM = config.LLMConfig{Provider: config.ProviderMock}
	c.RAG.ChunkSize = 80
	c.RAG.ChunkOverlap = 10

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, c.Save(path))
	return path, c
}

func TestUpload_WithoutInferenceKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path, c := offlineConfig(t)

	doc := filepath.Join(t.TempDir(), "bio.docx")
	parsertest.WriteDocx(t, doc, parsertest.DocumentXML(
		"Mitosis is a type of cell division that yields two identical daughter cells.",
		"Photosynthesis converts light energy into chemical energy inside chloroplasts.",
	))

	out, err := executeCommand(t, "--config", path, "upload", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "Uploaded file: "+filepath.Join(c.UploadDir, "bio.docx"))
	assert.Contains(t, out, "Processing complete")
	assert.FileExists(t, filepath.Join(c.UploadDir, "bio.docx"))

	// only generating needs the inference model
	_, err = executeCommand(t, "--config", path, "flashcards", "-n", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI API key")
}

func TestUpload_UnsupportedFormat(t *testing.T) {
	path, _ := offlineConfig(t)
	doc := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(doc, []byte("plain text"), 0o644))

	_, err := executeCommand(t, "--config", path, "upload", doc)
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestConfigInit(t *testing.T) {
	tests := []struct {
		name     string
		existing bool
		force    bool
		wantErr  bool
	}{
		{"new file", false, false, false},
		{"existing file", true, false, true},
		{"existing file with force", true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "configs", "config.yaml")
			if tt.existing {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, []byte("upload_dir: mine\n"), 0o644))
			}

			args := []string{"--config", path, "config", "init"}
			if tt.force {
				args = append(args, "--force")
			}
			out, err := executeCommand(t, args...)

			data, readErr := os.ReadFile(path)
			require.NoError(t, readErr)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "--force")
				assert.Equal(t, "upload_dir: mine\n", string(data))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "Wrote "+path)
			loaded, err := config.LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, config.DefaultConfig().UploadDir, loaded.UploadDir)
		})
	}
}

func TestErrorLine(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: \".txt\"", models.ErrUnsupportedFormat), `UnsupportedFormat: unsupported format: ".txt"`},
		{fmt.Errorf("%w: document not processed", models.ErrPreconditionNotMet), "PreconditionNotMet: precondition not met: document not processed"},
		{fmt.Errorf("%w: flashcard 2: back is required", models.ErrMalformedResponse), "MalformedResponse: malformed response: flashcard 2: back is required"},
		{fmt.Errorf("%w: bio.pdf", models.ErrNoText), "NoText: no extractable text: bio.pdf"},
		{errors.New("connection refused"), "Error: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, errorLine(tt.err))
		})
	}
}
