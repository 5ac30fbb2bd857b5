package dictionary

import (
	"strings"
)

const headwordPunctuation = "~()、，。！？；：‘’“”【】《》（）[]「」『』〈〉…・"

// CleanReport describes what Clean removed.
type CleanReport struct {
	Original        int
	Cleaned         int
	DuplicateKeys   []string
	DuplicateValues []string
}

func (r CleanReport) Removed() int {
	return r.Original - r.Cleaned
}

// Clean strips punctuation from headwords and the leading annotation from
// glosses, then drops entries whose headword or gloss was already seen.
// The first occurrence wins.
func Clean(raw []RawEntry) ([]RawEntry, CleanReport) {
	report := CleanReport{Original: len(raw)}
	seenKeys := make(map[string]struct{}, len(raw))
	seenValues := make(map[string]string, len(raw))

	cleaned := make([]RawEntry, 0, len(raw))
	for _, r := range raw {
		headword := stripPunctuation(r.Headword)
		gloss := StripAnnotation(r.Gloss)

		if _, ok := seenValues[gloss]; ok {
			report.DuplicateValues = append(report.DuplicateValues, headword)
			continue
		}
		if _, ok := seenKeys[headword]; ok {
			report.DuplicateKeys = append(report.DuplicateKeys, headword)
			continue
		}
		seenValues[gloss] = headword
		seenKeys[headword] = struct{}{}
		cleaned = append(cleaned, RawEntry{Headword: headword, Gloss: gloss})
	}
	report.Cleaned = len(cleaned)
	return cleaned, report
}

func stripPunctuation(headword string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(headwordPunctuation, r) {
			return -1
		}
		return r
	}, headword)
}
