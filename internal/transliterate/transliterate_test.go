package transliterate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKagome(t *testing.T) *Kagome {
	t.Helper()
	k, err := NewKagome()
	require.NoError(t, err)
	return k
}

func TestKagome_Segments(t *testing.T) {
	k := newTestKagome(t)

	tests := []struct {
		name        string
		text        string
		wantReading string
		wantRomaji  string
		wantErr     error
	}{
		{
			name:        "kanji",
			text:        "猫",
			wantReading: "ねこ",
			wantRomaji:  "neko",
		},
		{
			name:        "katakana",
			text:        "ネコ",
			wantReading: "ねこ",
			wantRomaji:  "neko",
		},
		{
			name:        "latin text passes through",
			text:        "neko",
			wantReading: "neko",
			wantRomaji:  "neko",
		},
		{
			name: "empty text",
			text: "",
		},
		{
			name:    "invalid utf-8",
			text:    string([]byte{0xff, 0xfe}),
			wantErr: ErrTransliteration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := k.Segments(tt.text)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)

			var reading, romaji string
			for _, s := range got {
				reading += s.Reading
				romaji += s.Romaji
			}
			assert.Equal(t, tt.wantReading, reading)
			assert.Equal(t, tt.wantRomaji, romaji)
		})
	}
}

func TestKagome_SegmentsKeepSurfaceText(t *testing.T) {
	k := newTestKagome(t)

	got, err := k.Segments("私は猫")
	require.NoError(t, err)

	var text string
	for _, s := range got {
		text += s.Text
	}
	assert.Equal(t, "私は猫", text)
}

func TestRomanize(t *testing.T) {
	k := newTestKagome(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "kanji", text: "猫", want: "neko"},
		{name: "hiragana", text: "ねこ", want: "neko"},
		{name: "upper case latin is lowered", text: "NEKO", want: "neko"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Romanize(k, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoin(t *testing.T) {
	segments := []Segment{
		{Text: "食べ", Reading: "たべ", Romaji: "tabe"},
		{Text: "る", Reading: "る", Romaji: "ru"},
	}

	assert.Equal(t, "たべ る", JoinReadings(segments))
	assert.Equal(t, "tabe ru", JoinRomaji(segments))
	assert.Equal(t, "", JoinReadings(nil))
}
