// Package dictionary loads vocabulary files and derives the reading,
// romaji and furigana segments of every headword.
package dictionary

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a dictionary identifier resolves to no
	// configured source, or the source file does not exist.
	ErrNotFound = errors.New("dictionary not found")
	// ErrEmptyDictionary is returned when a random entry is requested from
	// a dictionary without entries.
	ErrEmptyDictionary = errors.New("dictionary has no entries")
)

// Entry is one vocabulary item.
type Entry struct {
	Headword string    `json:"headword" yaml:"headword"`
	Meaning  string    `json:"meaning" yaml:"meaning"`
	Reading  string    `json:"reading" yaml:"reading"`
	Romaji   string    `json:"romaji" yaml:"romaji"`
	Segments []Segment `json:"segments" yaml:"segments"`
}

// Segment is a sub-token of a headword used for furigana rendering.
type Segment struct {
	Text        string `json:"text" yaml:"text"`
	Reading     string `json:"reading" yaml:"reading"`
	Romaji      string `json:"romaji" yaml:"romaji"`
	HasKanji    bool   `json:"hasKanji" yaml:"has_kanji"`
	HasKatakana bool   `json:"hasKatakana" yaml:"has_katakana"`
}

// Source is a configured dictionary file.
type Source struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// Set is a loaded dictionary. It is immutable once built.
type Set struct {
	ID      string
	Name    string
	Path    string
	ModTime time.Time
	Entries []Entry

	index map[string]int
}

// NewSet indexes entries by headword. The id is the source name, so it
// resolves back to the same source.
func NewSet(id string, source Source, modTime time.Time, entries []Entry) *Set {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Headword] = i
	}
	return &Set{
		ID:      id,
		Name:    source.Name,
		Path:    source.Path,
		ModTime: modTime,
		Entries: entries,
		index:   index,
	}
}

// Lookup returns the entry for a headword.
func (s *Set) Lookup(headword string) (Entry, bool) {
	i, ok := s.index[headword]
	if !ok {
		return Entry{}, false
	}
	return s.Entries[i], true
}

func (s *Set) Len() int {
	return len(s.Entries)
}

// Random picks an entry uniformly using intN, which must return a value in [0, n).
func (s *Set) Random(intN func(n int) int) (Entry, error) {
	if len(s.Entries) == 0 {
		return Entry{}, ErrEmptyDictionary
	}
	return s.Entries[intN(len(s.Entries))], nil
}
