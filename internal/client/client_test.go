package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiv1 "github.com/at-ishikawa/kotoba/internal/api/v1"
	"github.com/at-ishikawa/kotoba/internal/dictionary"
	"github.com/at-ishikawa/kotoba/internal/quiz"
	"github.com/at-ishikawa/kotoba/internal/scoreboard"
	"github.com/at-ishikawa/kotoba/internal/server"
	"github.com/at-ishikawa/kotoba/internal/session"
	"github.com/at-ishikawa/kotoba/internal/trainer"
	"github.com/at-ishikawa/kotoba/internal/transliterate"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	kagome, err := transliterate.NewKagome()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "base.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"猫": "(ねこ) cat"}`), 0o644))

	service := trainer.NewService(
		dictionary.NewLoader([]dictionary.Source{{Path: path}}, "", kagome, nil),
		quiz.NewEvaluator(kagome),
		session.NewTracker(session.DefaultTTL),
		scoreboard.NewMemoryRepository(),
	)
	srv, err := server.New(service, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler(nil))
	t.Cleanup(ts.Close)

	return New(ts.URL + "/")
}

func TestClient(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	dictionaries, err := c.Dictionaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, "base", dictionaries.Default)

	created, err := c.CreateSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, created.Session)

	word, err := c.RandomWord(ctx, apiv1.GetRandomEntryRequest{Session: created.Session, ShowKatakanaReading: true})
	require.NoError(t, err)
	assert.Equal(t, "猫", word.Word.Headword)
	assert.Equal(t, 1, word.ActiveUsers)

	checked, err := c.Check(ctx, apiv1.CheckAnswerRequest{Word: "猫", Answer: "ねこ", Session: created.Session})
	require.NoError(t, err)
	assert.True(t, checked.Correct)

	heartbeat, err := c.Heartbeat(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, 2, heartbeat.ActiveUsers)

	score, err := c.Score(ctx, created.Session)
	require.NoError(t, err)
	assert.Equal(t, 1, score.Correct)
	assert.Equal(t, 0, score.Wrong)
}

func TestClient_Errors(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		_, err := c.RandomWord(ctx, apiv1.GetRandomEntryRequest{Dict: "missing"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, dictionary.ErrNotFound))

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := c.Check(ctx, apiv1.CheckAnswerRequest{Answer: "neko"})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, []string{"word is a required field"}, apiErr.Details)
		assert.False(t, errors.Is(err, dictionary.ErrNotFound))
	})

	t.Run("connection refused", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, err := New(ts.URL).Dictionaries(ctx)
		assert.Error(t, err)
	})
}
