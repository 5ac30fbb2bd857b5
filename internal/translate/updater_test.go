package translate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/kotoba/internal/dictionary"
	mock_translate "github.com/at-ishikawa/kotoba/internal/mocks/translate"
)

func TestUpdater_UpdateFile(t *testing.T) {
	content := `{
    "猫": "(ねこ) cat",
    "子猫": "(こねこ) cat",
    "私": "(わたし) I, me；我",
    "犬": "dog",
    "空": "",
    "鳥": "(とり) bird"
}
`

	tests := []struct {
		name       string
		dryRun     bool
		setupMock  func(m *mock_translate.MockTranslator)
		want       []dictionary.RawEntry
		wantReport Report
	}{
		{
			name: "appends translations",
			setupMock: func(m *mock_translate.MockTranslator) {
				m.EXPECT().Translate(gomock.Any(), "cat").Return("猫", nil)
				m.EXPECT().Translate(gomock.Any(), "dog").Return("狗", nil)
				m.EXPECT().Translate(gomock.Any(), "bird").Return("", errors.New("response error 400"))
			},
			want: []dictionary.RawEntry{
				{Headword: "猫", Gloss: "(ねこ) cat；猫"},
				{Headword: "子猫", Gloss: "(こねこ) cat；猫"},
				{Headword: "私", Gloss: "(わたし) I, me；我"},
				{Headword: "犬", Gloss: "dog；狗"},
				{Headword: "空", Gloss: ""},
				{Headword: "鳥", Gloss: "(とり) bird"},
			},
			wantReport: Report{Phrases: 3, Translated: 2, Failed: []string{"bird"}, UpdatedEntries: 3, Written: true},
		},
		{
			name:   "dry run keeps the file",
			dryRun: true,
			setupMock: func(m *mock_translate.MockTranslator) {
				m.EXPECT().Translate(gomock.Any(), gomock.Any()).Return("x", nil).Times(3)
			},
			want: []dictionary.RawEntry{
				{Headword: "猫", Gloss: "(ねこ) cat"},
				{Headword: "子猫", Gloss: "(こねこ) cat"},
				{Headword: "私", Gloss: "(わたし) I, me；我"},
				{Headword: "犬", Gloss: "dog"},
				{Headword: "空", Gloss: ""},
				{Headword: "鳥", Gloss: "(とり) bird"},
			},
			wantReport: Report{Phrases: 3, Translated: 3, UpdatedEntries: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "jlpt_n5.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			ctrl := gomock.NewController(t)
			m := mock_translate.NewMockTranslator(ctrl)
			tt.setupMock(m)

			report, err := NewUpdater(m, 0, nil).UpdateFile(context.Background(), path, tt.dryRun)
			require.NoError(t, err)
			assert.Equal(t, tt.wantReport, report)

			got, err := dictionary.ReadRawFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdater_UpdateFile_Locked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"犬": "dog"}`), 0o644))

	release, err := dictionary.LockFile(path, 0)
	require.NoError(t, err)
	defer release()

	ctrl := gomock.NewController(t)
	updater := NewUpdater(mock_translate.NewMockTranslator(ctrl), 0, nil)
	updater.lockTimeout = 0
	_, err = updater.UpdateFile(context.Background(), path, false)
	assert.ErrorContains(t, err, "being updated by another process")
}

func TestUpdater_UpdateFile_RerunWithLatinTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"猫": "(ねこ) cat", "犬": "dog"}`), 0o644))

	ctrl := gomock.NewController(t)
	translator := mock_translate.NewMockTranslator(ctrl)
	// a Spanish target yields translations without CJK text; only the
	// first run may call the translator
	translator.EXPECT().Translate(gomock.Any(), "cat").Return("gato", nil).Times(1)
	translator.EXPECT().Translate(gomock.Any(), "dog").Return("perro", nil).Times(1)

	updater := NewUpdater(translator, 0, nil)
	_, err := updater.UpdateFile(context.Background(), path, false)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = updater.UpdateFile(context.Background(), path, false)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	entries, err := dictionary.ReadRawFile(path)
	require.NoError(t, err)
	assert.Equal(t, []dictionary.RawEntry{
		{Headword: "猫", Gloss: "(ねこ) cat；gato"},
		{Headword: "犬", Gloss: "dog；perro"},
	}, entries)
}

func TestNeedsTranslation(t *testing.T) {
	tests := []struct {
		meaning string
		want    bool
	}{
		{meaning: "cat", want: true},
		{meaning: "", want: false},
		{meaning: "cat；猫", want: false},
		{meaning: "cat；gato", want: false},
		{meaning: "猫", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.meaning, func(t *testing.T) {
			assert.Equal(t, tt.want, needsTranslation(tt.meaning))
		})
	}
}

func TestMergeGloss(t *testing.T) {
	tests := []struct {
		annotation  string
		meaning     string
		translation string
		want        string
	}{
		{annotation: "(ねこ)", meaning: "cat", translation: "猫", want: "(ねこ) cat；猫"},
		{meaning: "dog", translation: "狗", want: "dog；狗"},
		{annotation: "(ねこ)", meaning: "cat", want: "(ねこ) cat"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeGloss(tt.annotation, tt.meaning, tt.translation))
		})
	}
}

func TestContainsCJK(t *testing.T) {
	assert.True(t, ContainsCJK("I, me；我"))
	assert.True(t, ContainsCJK("㐀"))
	assert.False(t, ContainsCJK("cat"))
	assert.False(t, ContainsCJK("ねこ"))
}
