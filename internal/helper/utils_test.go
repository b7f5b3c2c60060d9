package helper

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUUID(t *testing.T) {
	id, err := GenerateUUID()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestSaveUpload_OverwritesSameName(t *testing.T) {
	srcDir := t.TempDir()
	uploadDir := filepath.Join(t.TempDir(), "data")
	src := filepath.Join(srcDir, "notes.pdf")

	require.NoError(t, os.WriteFile(src, []byte("first"), 0644))
	dst, err := SaveUpload(src, uploadDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(uploadDir, "notes.pdf"), dst)

	require.NoError(t, os.WriteFile(src, []byte("second"), 0644))
	_, err = SaveUpload(src, uploadDir)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestSaveUpload_SameFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.docx")
	require.NoError(t, os.WriteFile(src, []byte("content"), 0644))

	dst, err := SaveUpload(src, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestSaveUpload_MissingSource(t *testing.T) {
	_, err := SaveUpload(filepath.Join(t.TempDir(), "nope.pdf"), t.TempDir())
	assert.Error(t, err)
}

func TestPrettyPrint(t *testing.T) {
	var buf bytes.Buffer
	PrettyPrint(&buf, map[string]string{"front": "Q1"})
	assert.Contains(t, buf.String(), `"front": "Q1"`)
}
