package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/kotoba/internal/dictionary"
)

func TestWriter_Write(t *testing.T) {
	set := dictionary.NewSet("base", dictionary.Source{Name: "Basics", Path: "dictionaries/base.json"}, time.Time{}, []dictionary.Entry{
		{Headword: "hello", Reading: "hello", Romaji: "hello", Meaning: "greeting"},
	})

	t.Run("markdown only", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "outputs")
		writer := NewWriter(dir, "", nil)
		writer.now = func() time.Time { return time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC) }

		result, err := writer.Write(set, false)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "base.md"), result.MarkdownPath)
		assert.Empty(t, result.PDFPath)

		content, err := os.ReadFile(result.MarkdownPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "# Basics\n")
		assert.Contains(t, string(content), "1 words from `base.json`, exported 2024-04-01.")
		assert.Contains(t, string(content), "| hello | hello | hello | greeting |")
	})

	t.Run("with pdf", func(t *testing.T) {
		dir := t.TempDir()
		result, err := NewWriter(dir, "", nil).Write(set, true)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "base.pdf"), result.PDFPath)
		info, err := os.Stat(result.PDFPath)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})
}

func TestConvertMarkdownToPDF(t *testing.T) {
	t.Run("rejects other extensions", func(t *testing.T) {
		_, err := ConvertMarkdownToPDF(filepath.Join(t.TempDir(), "base.txt"))
		assert.ErrorContains(t, err, "must have .md extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ConvertMarkdownToPDF(filepath.Join(t.TempDir(), "missing.md"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
