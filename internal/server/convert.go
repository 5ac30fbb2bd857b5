package server

import (
	"fmt"

	apiv1 "github.com/at-ishikawa/kotoba/internal/api/v1"
	"github.com/at-ishikawa/kotoba/internal/dictionary"
	"github.com/at-ishikawa/kotoba/internal/furigana"
)

func toWord(entry dictionary.Entry, showKatakanaReading bool) (apiv1.Word, error) {
	segments := make([]apiv1.Segment, 0, len(entry.Segments))
	for _, s := range entry.Segments {
		segments = append(segments, apiv1.Segment{
			Text:        s.Text,
			Reading:     s.Reading,
			Romaji:      s.Romaji,
			HasKanji:    s.HasKanji,
			HasKatakana: s.HasKatakana,
		})
	}

	furiganaHTML, err := furigana.Render(entry.Segments, furigana.Options{
		ShowKatakanaReading: showKatakanaReading,
	})
	if err != nil {
		return apiv1.Word{}, fmt.Errorf("furigana.Render() > %w", err)
	}
	return apiv1.Word{
		Headword:     entry.Headword,
		Reading:      entry.Reading,
		Romaji:       entry.Romaji,
		Meaning:      entry.Meaning,
		Segments:     segments,
		FuriganaHTML: furiganaHTML,
	}, nil
}

func toDictionaries(sources []dictionary.Source) []apiv1.Dictionary {
	dictionaries := make([]apiv1.Dictionary, 0, len(sources))
	for _, s := range sources {
		dictionaries = append(dictionaries, apiv1.Dictionary{
			ID:   s.Name,
			Name: s.Name,
			Path: s.Path,
		})
	}
	return dictionaries
}
