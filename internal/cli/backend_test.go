package cli_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiv1 "github.com/at-ishikawa/kotoba/internal/api/v1"
	"github.com/at-ishikawa/kotoba/internal/cli"
	"github.com/at-ishikawa/kotoba/internal/client"
	"github.com/at-ishikawa/kotoba/internal/dictionary"
	"github.com/at-ishikawa/kotoba/internal/quiz"
	"github.com/at-ishikawa/kotoba/internal/scoreboard"
	"github.com/at-ishikawa/kotoba/internal/server"
	"github.com/at-ishikawa/kotoba/internal/session"
	"github.com/at-ishikawa/kotoba/internal/trainer"
	"github.com/at-ishikawa/kotoba/internal/transliterate"
)

func newTrainerService(t *testing.T) *trainer.Service {
	t.Helper()

	kagome, err := transliterate.NewKagome()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "base.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"猫": "(ねこ) cat"}`), 0o644))

	return trainer.NewService(
		dictionary.NewLoader([]dictionary.Source{{Path: path}}, "", kagome, nil),
		quiz.NewEvaluator(kagome),
		session.NewTracker(session.DefaultTTL),
		scoreboard.NewMemoryRepository(),
	)
}

func TestBackends(t *testing.T) {
	tests := []struct {
		name       string
		newBackend func(t *testing.T) cli.Backend
	}{
		{
			name: "local",
			newBackend: func(t *testing.T) cli.Backend {
				return cli.NewLocalBackend(newTrainerService(t))
			},
		},
		{
			name: "remote",
			newBackend: func(t *testing.T) cli.Backend {
				srv, err := server.New(newTrainerService(t), nil)
				require.NoError(t, err)
				ts := httptest.NewServer(srv.Handler(nil))
				t.Cleanup(ts.Close)
				return cli.NewRemoteBackend(client.New(ts.URL))
			},
		},
		{
			name: "connect",
			newBackend: func(t *testing.T) cli.Backend {
				srv, err := server.New(newTrainerService(t), nil)
				require.NoError(t, err)
				ts := httptest.NewServer(srv.Handler(nil))
				t.Cleanup(ts.Close)
				return cli.NewConnectBackend(client.New(ts.URL), apiv1.NewTrainerServiceClient(ts.Client(), ts.URL))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := tt.newBackend(t)
			ctx := context.Background()

			sessionID, err := backend.StartSession(ctx)
			require.NoError(t, err)
			require.NotEmpty(t, sessionID)

			question, err := backend.NextQuestion(ctx, "", sessionID)
			require.NoError(t, err)
			assert.Equal(t, cli.Question{
				Headword:       "猫",
				Reading:        "ねこ",
				Romaji:         "neko",
				Meaning:        "cat",
				DictionaryID:   "base",
				DictionaryName: "base",
				TotalWords:     1,
				ActiveSessions: 1,
			}, question)

			wrong, err := backend.Check(ctx, question.DictionaryID, question.Headword, "いぬ", sessionID)
			require.NoError(t, err)
			assert.Equal(t, cli.Result{
				MatchedForm: "none",
				UserRomaji:  "inu",
				Headword:    "猫",
				Reading:     "ねこ",
				Romaji:      "neko",
			}, wrong)

			right, err := backend.Check(ctx, question.DictionaryID, question.Headword, "neko", sessionID)
			require.NoError(t, err)
			assert.True(t, right.Correct)
			assert.Equal(t, "romaji", right.MatchedForm)

			score, err := backend.Score(ctx, sessionID)
			require.NoError(t, err)
			assert.Equal(t, cli.Score{Correct: 1, Wrong: 1}, score)

			_, err = backend.NextQuestion(ctx, "missing", sessionID)
			assert.ErrorIs(t, err, dictionary.ErrNotFound)
		})
	}
}
