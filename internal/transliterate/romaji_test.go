package transliterate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHiragana(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "katakana word", input: "ネコ", want: "ねこ"},
		{name: "long vowel mark is kept", input: "コーヒー", want: "こーひー"},
		{name: "vu", input: "ヴァイオリン", want: "ゔぁいおりん"},
		{name: "hiragana and latin untouched", input: "ねこ cat", want: "ねこ cat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHiragana(tt.input))
		})
	}
}

func TestToRomaji(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "ねこ", want: "neko"},
		{name: "shi chi tsu fu", input: "しちつふ", want: "shichitsufu"},
		{name: "yoon", input: "きょうしつ", want: "kyoushitsu"},
		{name: "sokuon", input: "がっこう", want: "gakkou"},
		{name: "sokuon before ch", input: "まっちゃ", want: "matcha"},
		{name: "trailing sokuon", input: "あっ", want: "a"},
		{name: "long vowel mark", input: "コーヒー", want: "koohii"},
		{name: "katakana extension", input: "パーティー", want: "paatii"},
		{name: "fa", input: "ファイル", want: "fairu"},
		{name: "syllabic n", input: "しんぶん", want: "shinbun"},
		{name: "particle wo", input: "を", want: "o"},
		{name: "non kana passes through", input: "CDを", want: "CDo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToRomaji(tt.input))
		})
	}
}

func TestRomanizeReadings(t *testing.T) {
	tests := []struct {
		name     string
		readings []string
		want     []string
	}{
		{
			name:     "sokuon at the end of a segment doubles the next consonant",
			readings: []string{"いっ", "た"},
			want:     []string{"it", "ta"},
		},
		{
			name:     "long mark at the start of a segment extends the previous vowel",
			readings: []string{"らー", "めん"},
			want:     []string{"raa", "men"},
		},
		{
			name:     "empty segments are kept",
			readings: []string{"", "ねこ"},
			want:     []string{"", "neko"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, romanizeReadings(tt.readings))
		})
	}
}
