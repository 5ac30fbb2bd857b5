package dictionary

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/kotoba/internal/transliterate"
)

var annotationBrackets = []struct {
	open, close string
}{
	{"(", ")"},
	{"（", "）"},
}

// StripAnnotation removes a leading parenthesized pronunciation hint:
// "(わたし) I, me" becomes "I, me". A gloss without one is returned unchanged.
func StripAnnotation(gloss string) string {
	annotation, meaning := SplitAnnotation(gloss)
	if annotation == "" {
		return gloss
	}
	return meaning
}

// SplitAnnotation splits a gloss into its leading parenthesized annotation,
// brackets included, and the trimmed rest. The annotation is empty when the
// gloss has none.
func SplitAnnotation(gloss string) (string, string) {
	trimmed := strings.TrimLeft(gloss, " \t")
	for _, b := range annotationBrackets {
		if !strings.HasPrefix(trimmed, b.open) {
			continue
		}
		end := strings.Index(trimmed, b.close)
		if end < 0 {
			continue
		}
		end += len(b.close)
		return trimmed[:end], strings.TrimSpace(trimmed[end:])
	}
	return "", strings.TrimSpace(gloss)
}

// NormalizeEntry derives the full entry of a headword. The reading and
// romaji always come from the transliterator, never from the gloss.
func NormalizeEntry(t transliterate.Transliterator, raw RawEntry) (Entry, error) {
	segments, err := t.Segments(raw.Headword)
	if err != nil {
		return Entry{}, fmt.Errorf("t.Segments(%q) > %w", raw.Headword, err)
	}

	entrySegments := make([]Segment, 0, len(segments))
	for _, s := range segments {
		entrySegments = append(entrySegments, Segment{
			Text:        s.Text,
			Reading:     s.Reading,
			Romaji:      s.Romaji,
			HasKanji:    HasKanji(s.Text),
			HasKatakana: HasKatakana(s.Text),
		})
	}

	return Entry{
		Headword: raw.Headword,
		Meaning:  StripAnnotation(raw.Gloss),
		Reading:  transliterate.JoinReadings(segments),
		Romaji:   transliterate.JoinRomaji(segments),
		Segments: entrySegments,
	}, nil
}

func normalizeAll(t transliterate.Transliterator, raw []RawEntry) ([]Entry, error) {
	entries := make([]Entry, 0, len(raw))
	for _, r := range raw {
		entry, err := NormalizeEntry(t, r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func HasKanji(text string) bool {
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FFF {
			return true
		}
	}
	return false
}

func HasKatakana(text string) bool {
	for _, r := range text {
		if r >= 0x30A0 && r <= 0x30FF {
			return true
		}
	}
	return false
}
