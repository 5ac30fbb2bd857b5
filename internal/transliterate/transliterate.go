// Package transliterate splits Japanese text into segments carrying a kana
// reading and a Hepburn romanization.
package transliterate

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// ErrTransliteration is returned when text cannot be segmented.
var ErrTransliteration = errors.New("transliteration failed")

// Segment is one token of the input text.
type Segment struct {
	Text    string
	Reading string
	Romaji  string
}

//go:generate mockgen -source=transliterate.go -destination=../mocks/transliterate/mock_transliterator.go -package=mock_transliterate

// Transliterator produces the ordered segments of a text.
type Transliterator interface {
	Segments(text string) ([]Segment, error)
}

// Kagome is a Transliterator backed by the kagome morphological analyzer
// and the IPA dictionary. It is safe for concurrent use.
type Kagome struct {
	tokenizer *tokenizer.Tokenizer
}

func NewKagome() (*Kagome, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("tokenizer.New() > %w", err)
	}
	return &Kagome{tokenizer: t}, nil
}

func (k *Kagome) Segments(text string) ([]Segment, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: invalid UTF-8 in %q", ErrTransliteration, text)
	}
	if text == "" {
		return nil, nil
	}

	tokens := k.tokenizer.Tokenize(text)
	segments := make([]Segment, 0, len(tokens))
	readings := make([]string, 0, len(tokens))
	for _, token := range tokens {
		reading, ok := token.Reading()
		// unknown words, latin text and symbols carry no reading
		if !ok || reading == "" || reading == "*" {
			reading = token.Surface
		}
		reading = ToHiragana(reading)
		readings = append(readings, reading)
		segments = append(segments, Segment{
			Text:    token.Surface,
			Reading: reading,
		})
	}

	for i, romaji := range romanizeReadings(readings) {
		segments[i].Romaji = romaji
	}
	return segments, nil
}

// Romanize returns the lower-cased romaji of text with no separators.
func Romanize(t Transliterator, text string) (string, error) {
	segments, err := t.Segments(text)
	if err != nil {
		return "", fmt.Errorf("t.Segments(%q) > %w", text, err)
	}
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Romaji)
	}
	return strings.ToLower(b.String()), nil
}

func JoinReadings(segments []Segment) string {
	readings := make([]string, 0, len(segments))
	for _, s := range segments {
		readings = append(readings, s.Reading)
	}
	return strings.Join(readings, " ")
}

func JoinRomaji(segments []Segment) string {
	romaji := make([]string, 0, len(segments))
	for _, s := range segments {
		romaji = append(romaji, s.Romaji)
	}
	return strings.Join(romaji, " ")
}
