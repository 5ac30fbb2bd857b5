// Package export writes dictionaries as Markdown vocabulary lists and PDFs.
package export

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

const embeddedTemplateName = "vocabulary.md.go.tmpl"

//go:embed templates/vocabulary.md.go.tmpl
var fallbackVocabularyTemplate string

// VocabularyTemplate is the data passed to the vocabulary template.
type VocabularyTemplate struct {
	Title      string
	Source     string
	ExportedAt time.Time
	Words      []VocabularyWord
}

type VocabularyWord struct {
	Headword string
	Reading  string
	Romaji   string
	Meaning  string
}

func WriteVocabulary(output io.Writer, templatePath string, data VocabularyTemplate, logger *slog.Logger) error {
	tmpl, err := parseTemplateWithFallback(templatePath, logger)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// parseTemplateWithFallback uses the template file when it exists and
// parses, and the embedded template otherwise.
func parseTemplateWithFallback(templatePath string, logger *slog.Logger) (*template.Template, error) {
	if logger == nil {
		logger = slog.Default()
	}
	funcMap := template.FuncMap{
		"join": strings.Join,
		"cell": tableCell,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			logger.Warn("failed to parse a template",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(embeddedTemplateName).
		Funcs(funcMap).
		Parse(fallbackVocabularyTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// tableCell keeps a value on one line of a Markdown table.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
