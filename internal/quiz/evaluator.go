// Package quiz judges typed answers against a dictionary entry.
package quiz

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/at-ishikawa/kotoba/internal/dictionary"
	"github.com/at-ishikawa/kotoba/internal/transliterate"
)

// MatchedForm is the form of the entry an answer matched.
type MatchedForm string

const (
	MatchedKanji   MatchedForm = "kanji"
	MatchedReading MatchedForm = "reading"
	MatchedRomaji  MatchedForm = "romaji"
	MatchedNone    MatchedForm = "none"
)

// Judgment is the verdict on one answer.
type Judgment struct {
	Correct     bool        `json:"correct"`
	MatchedForm MatchedForm `json:"matchedForm"`
	UserRomaji  string      `json:"userRomaji"`
}

// Evaluator compares answers in romaji space, so the headword, its kana
// reading and its romanization are all accepted.
type Evaluator struct {
	transliterator transliterate.Transliterator
}

func NewEvaluator(t transliterate.Transliterator) *Evaluator {
	return &Evaluator{transliterator: t}
}

// Evaluate judges input against entry. Errors of the transliterator are
// returned instead of being treated as a wrong answer.
func (e *Evaluator) Evaluate(entry dictionary.Entry, input string) (Judgment, error) {
	normalized := NormalizeInput(input)
	if normalized == "" {
		return Judgment{MatchedForm: MatchedNone}, nil
	}

	userRomaji, err := transliterate.Romanize(e.transliterator, normalized)
	if err != nil {
		return Judgment{}, fmt.Errorf("romanize answer: %w", err)
	}
	kanjiRomaji, err := transliterate.Romanize(e.transliterator, entry.Headword)
	if err != nil {
		return Judgment{}, fmt.Errorf("romanize headword: %w", err)
	}
	readingRomaji, err := transliterate.Romanize(e.transliterator, removeSpaces(entry.Reading))
	if err != nil {
		return Judgment{}, fmt.Errorf("romanize reading: %w", err)
	}
	targetRomaji := strings.ToLower(removeSpaces(entry.Romaji))

	if userRomaji == "" {
		return Judgment{MatchedForm: MatchedNone}, nil
	}

	judgment := Judgment{
		Correct:     true,
		MatchedForm: MatchedNone,
		UserRomaji:  userRomaji,
	}
	switch userRomaji {
	case targetRomaji:
		judgment.MatchedForm = MatchedRomaji
	case readingRomaji:
		judgment.MatchedForm = MatchedReading
	case kanjiRomaji:
		judgment.MatchedForm = MatchedKanji
	default:
		judgment.Correct = false
	}
	return judgment, nil
}

// NormalizeInput folds full-width and half-width forms and drops all
// whitespace, including the ideographic space.
func NormalizeInput(input string) string {
	return removeSpaces(width.Fold.String(input))
}

func removeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
