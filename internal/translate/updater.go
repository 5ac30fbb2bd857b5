package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/kotoba/internal/dictionary"
)

const (
	translationSeparator = "；"
	defaultLockTimeout   = 10 * time.Second
)

// Report summarizes a translation run over a dictionary file.
type Report struct {
	Phrases        int
	Translated     int
	Failed         []string
	UpdatedEntries int
	Written        bool
}

// Updater appends translations to the glosses of dictionary files.
type Updater struct {
	translator  Translator
	interval    time.Duration
	lockTimeout time.Duration
	logger      *slog.Logger
}

func NewUpdater(translator Translator, interval time.Duration, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{
		translator:  translator,
		interval:    interval,
		lockTimeout: defaultLockTimeout,
		logger:      logger,
	}
}

// UpdateFile translates every gloss of the file without CJK text or an
// earlier translation and rewrites the file with the translations appended. Each distinct gloss is
// translated once; a phrase that cannot be translated is left as it is.
// With dryRun the file is not written.
func (u *Updater) UpdateFile(ctx context.Context, path string, dryRun bool) (Report, error) {
	release, err := dictionary.LockFile(path, u.lockTimeout)
	if err != nil {
		return Report{}, err
	}
	defer release()

	entries, err := dictionary.ReadRawFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("dictionary.ReadRawFile() > %w", err)
	}

	phrases := collectPhrases(entries)
	report := Report{Phrases: len(phrases)}
	translations := make(map[string]string, len(phrases))
	for i, phrase := range phrases {
		if i > 0 && u.interval > 0 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(u.interval):
			}
		}
		translated, err := u.translator.Translate(ctx, phrase)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			u.logger.Warn("failed to translate", slog.String("phrase", phrase), slog.Any("error", err))
			report.Failed = append(report.Failed, phrase)
			continue
		}
		translations[phrase] = translated
		report.Translated++
	}

	for i, entry := range entries {
		annotation, meaning := dictionary.SplitAnnotation(entry.Gloss)
		if !needsTranslation(meaning) {
			continue
		}
		translated := strings.TrimSpace(translations[meaning])
		if translated == "" {
			continue
		}
		entries[i].Gloss = MergeGloss(annotation, meaning, translated)
		report.UpdatedEntries++
	}

	if report.UpdatedEntries == 0 || dryRun {
		return report, nil
	}
	if err := dictionary.WriteRawFile(path, entries); err != nil {
		return report, fmt.Errorf("dictionary.WriteRawFile() > %w", err)
	}
	report.Written = true
	u.logger.Info("updated dictionary", slog.String("path", path), slog.Int("entries", report.UpdatedEntries))
	return report, nil
}

func collectPhrases(entries []dictionary.RawEntry) []string {
	seen := make(map[string]struct{})
	var phrases []string
	for _, entry := range entries {
		_, meaning := dictionary.SplitAnnotation(entry.Gloss)
		if !needsTranslation(meaning) {
			continue
		}
		if _, ok := seen[meaning]; ok {
			continue
		}
		seen[meaning] = struct{}{}
		phrases = append(phrases, meaning)
	}
	return phrases
}

// needsTranslation is false for glosses already carrying a translation,
// whatever the target language, so reruns do not append another one.
func needsTranslation(meaning string) bool {
	return meaning != "" &&
		!strings.Contains(meaning, translationSeparator) &&
		!ContainsCJK(meaning)
}

// MergeGloss composes "annotation meaning；translation".
func MergeGloss(annotation, meaning, translation string) string {
	base := strings.TrimSpace(annotation)
	if meaning = strings.TrimSpace(meaning); meaning != "" {
		if base == "" {
			base = meaning
		} else {
			base = base + " " + meaning
		}
	}
	if translation = strings.TrimSpace(translation); translation != "" {
		base = base + translationSeparator + translation
	}
	return base
}

// ContainsCJK reports whether text has a CJK unified ideograph.
func ContainsCJK(text string) bool {
	for _, r := range text {
		if (r >= 0x4E00 && r <= 0x9FFF) || (r >= 0x3400 && r <= 0x4DBF) {
			return true
		}
	}
	return false
}
