package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	mock_transliterate "github.com/at-ishikawa/kotoba/internal/mocks/transliterate"
	"github.com/at-ishikawa/kotoba/internal/transliterate"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var stubSegments = map[string][]transliterate.Segment{
	"猫":    {{Text: "猫", Reading: "ねこ", Romaji: "neko"}},
	"私":    {{Text: "私", Reading: "わたし", Romaji: "watashi"}},
	"食べ物":  {{Text: "食べ物", Reading: "たべもの", Romaji: "tabemono"}},
	"コーヒー": {{Text: "コーヒー", Reading: "こーひー", Romaji: "koohii"}},
	"日本語":  {{Text: "日本", Reading: "にほん", Romaji: "nihon"}, {Text: "語", Reading: "ご", Romaji: "go"}},
}

func stubSegmentsFunc(text string) ([]transliterate.Segment, error) {
	if segments, ok := stubSegments[text]; ok {
		return segments, nil
	}
	return []transliterate.Segment{{Text: text, Reading: text, Romaji: text}}, nil
}

func newStubTransliterator(t *testing.T) *mock_transliterate.MockTransliterator {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mock_transliterate.NewMockTransliterator(ctrl)
	m.EXPECT().Segments(gomock.Any()).DoAndReturn(stubSegmentsFunc).AnyTimes()
	return m
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
