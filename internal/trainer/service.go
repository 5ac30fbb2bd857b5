// Package trainer combines dictionaries, answer evaluation and session
// tracking into the operations served to learners.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/at-ishikawa/kotoba/internal/dictionary"
	"github.com/at-ishikawa/kotoba/internal/quiz"
	"github.com/at-ishikawa/kotoba/internal/scoreboard"
	"github.com/at-ishikawa/kotoba/internal/session"
)

// Service is safe for concurrent use. It owns no goroutines.
type Service struct {
	loader    *dictionary.Loader
	evaluator *quiz.Evaluator
	sessions  *session.Tracker
	answers   scoreboard.Repository
	logger    *slog.Logger
	intN      func(n int) int
	now       func() time.Time
}

type Option func(*Service)

// WithRandom replaces the source of random indexes.
func WithRandom(intN func(n int) int) Option {
	return func(s *Service) {
		s.intN = intN
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(
	loader *dictionary.Loader,
	evaluator *quiz.Evaluator,
	sessions *session.Tracker,
	answers scoreboard.Repository,
	opts ...Option,
) *Service {
	s := &Service{
		loader:    loader,
		evaluator: evaluator,
		sessions:  sessions,
		answers:   answers,
		logger:    slog.Default(),
		intN:      rand.IntN,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ResolveAndLoad(ctx context.Context, identifier string) (*dictionary.Set, error) {
	return s.loader.Load(ctx, identifier)
}

func (s *Service) PickRandomEntry(set *dictionary.Set) (dictionary.Entry, error) {
	return set.Random(s.intN)
}

func (s *Service) EvaluateAnswer(entry dictionary.Entry, input string) (quiz.Judgment, error) {
	return s.evaluator.Evaluate(entry, input)
}

func (s *Service) TouchSession(sessionID string) int {
	return s.sessions.Touch(sessionID)
}

type NextParams struct {
	DictionaryID string
	SessionID    string
}

// Question is a randomly picked entry with the dictionary it came from.
type Question struct {
	Entry          dictionary.Entry
	DictionaryID   string
	DictionaryName string
	DictionaryPath string
	TotalWords     int
	ActiveSessions int
}

func (s *Service) NextQuestion(ctx context.Context, params NextParams) (Question, error) {
	set, err := s.ResolveAndLoad(ctx, params.DictionaryID)
	if err != nil {
		return Question{}, err
	}
	entry, err := s.PickRandomEntry(set)
	if err != nil {
		return Question{}, fmt.Errorf("pick entry from %s: %w", set.ID, err)
	}
	return Question{
		Entry:          entry,
		DictionaryID:   set.ID,
		DictionaryName: set.Name,
		DictionaryPath: set.Path,
		TotalWords:     set.Len(),
		ActiveSessions: s.TouchSession(params.SessionID),
	}, nil
}

type CheckParams struct {
	DictionaryID string
	Headword     string
	Answer       string
	SessionID    string
}

type CheckResult struct {
	Judgment       quiz.Judgment
	Entry          dictionary.Entry
	DictionaryID   string
	ActiveSessions int
}

// Check judges an answer for a headword of a dictionary. Answers with a
// session id are written to the answer log; a failed write is only logged.
func (s *Service) Check(ctx context.Context, params CheckParams) (CheckResult, error) {
	set, err := s.ResolveAndLoad(ctx, params.DictionaryID)
	if err != nil {
		return CheckResult{}, err
	}
	entry, ok := set.Lookup(params.Headword)
	if !ok {
		return CheckResult{}, fmt.Errorf("%w: %q is not in %s", dictionary.ErrNotFound, params.Headword, set.ID)
	}

	judgment, err := s.EvaluateAnswer(entry, params.Answer)
	if err != nil {
		return CheckResult{}, fmt.Errorf("evaluate answer for %q: %w", params.Headword, err)
	}

	if params.SessionID != "" {
		log := &scoreboard.AnswerLog{
			SessionID:    params.SessionID,
			DictionaryID: set.ID,
			Headword:     entry.Headword,
			Answer:       params.Answer,
			Correct:      judgment.Correct,
			MatchedForm:  string(judgment.MatchedForm),
			AnsweredAt:   s.now().UTC(),
		}
		if err := s.answers.Create(ctx, log); err != nil {
			s.logger.Warn("failed to record answer",
				slog.String("session", params.SessionID),
				slog.String("headword", entry.Headword),
				slog.Any("error", err),
			)
		}
	}

	return CheckResult{
		Judgment:       judgment,
		Entry:          entry,
		DictionaryID:   set.ID,
		ActiveSessions: s.TouchSession(params.SessionID),
	}, nil
}

// ErrMissingSession is returned when a score is requested without a session id.
var ErrMissingSession = errors.New("session id is required")

func (s *Service) Score(ctx context.Context, sessionID string) (scoreboard.Score, error) {
	if sessionID == "" {
		return scoreboard.Score{}, ErrMissingSession
	}
	score, err := s.answers.ScoreBySession(ctx, sessionID)
	if err != nil {
		return scoreboard.Score{}, fmt.Errorf("answers.ScoreBySession() > %w", err)
	}
	return score, nil
}

// DictionaryList is the configured dictionaries and the one used by default.
type DictionaryList struct {
	Sources   []dictionary.Source
	DefaultID string
}

func (s *Service) Dictionaries() DictionaryList {
	list := DictionaryList{Sources: s.loader.Sources()}
	if source, err := s.loader.DefaultSource(); err == nil {
		list.DefaultID = source.Name
	}
	return list
}
