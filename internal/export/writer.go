package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/at-ishikawa/kotoba/internal/dictionary"
)

// Result lists the files written by an export.
type Result struct {
	MarkdownPath string
	PDFPath      string
}

type Writer struct {
	outputDirectory string
	templatePath    string
	logger          *slog.Logger
	now             func() time.Time
}

func NewWriter(outputDirectory, templatePath string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		outputDirectory: outputDirectory,
		templatePath:    templatePath,
		logger:          logger,
		now:             time.Now,
	}
}

// Write renders the dictionary to <outputDirectory>/<file name>.md, and to a
// PDF beside it when generatePDF is set.
func (writer *Writer) Write(set *dictionary.Set, generatePDF bool) (Result, error) {
	if err := os.MkdirAll(writer.outputDirectory, 0o755); err != nil {
		return Result{}, fmt.Errorf("os.MkdirAll(%s) > %w", writer.outputDirectory, err)
	}

	stem := strings.TrimSuffix(filepath.Base(set.Path), filepath.Ext(set.Path))
	outputFilename := filepath.Join(writer.outputDirectory, stem+".md")
	output, err := os.Create(outputFilename)
	if err != nil {
		return Result{}, fmt.Errorf("os.Create(%s) > %w", outputFilename, err)
	}
	defer func() {
		_ = output.Close()
	}()

	if err := WriteVocabulary(output, writer.templatePath, newVocabularyTemplate(set, writer.now()), writer.logger); err != nil {
		return Result{}, fmt.Errorf("WriteVocabulary(%s, %s) > %w", outputFilename, writer.templatePath, err)
	}
	if err := output.Close(); err != nil {
		return Result{}, fmt.Errorf("output.Close() > %w", err)
	}
	result := Result{MarkdownPath: outputFilename}
	writer.logger.Info("vocabulary written", slog.String("path", outputFilename), slog.Int("words", set.Len()))

	if generatePDF {
		pdfPath, err := ConvertMarkdownToPDF(outputFilename)
		if err != nil {
			return result, fmt.Errorf("ConvertMarkdownToPDF(%s) > %w", outputFilename, err)
		}
		result.PDFPath = pdfPath
	}
	return result, nil
}

func newVocabularyTemplate(set *dictionary.Set, exportedAt time.Time) VocabularyTemplate {
	words := make([]VocabularyWord, 0, set.Len())
	for _, e := range set.Entries {
		words = append(words, VocabularyWord{
			Headword: e.Headword,
			Reading:  e.Reading,
			Romaji:   e.Romaji,
			Meaning:  e.Meaning,
		})
	}
	title := set.Name
	if title == "" {
		title = set.ID
	}
	return VocabularyTemplate{
		Title:      title,
		Source:     filepath.Base(set.Path),
		ExportedAt: exportedAt,
		Words:      words,
	}
}
