package cli

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	apiv1 "github.com/at-ishikawa/kotoba/internal/api/v1"
	"github.com/at-ishikawa/kotoba/internal/client"
	"github.com/at-ishikawa/kotoba/internal/dictionary"
	"github.com/at-ishikawa/kotoba/internal/trainer"
)

//go:generate mockgen -source=backend.go -destination=../mocks/cli/mock_backend.go -package=mock_cli Backend

// Backend is where the quiz gets its questions and judgments from.
type Backend interface {
	StartSession(ctx context.Context) (string, error)
	NextQuestion(ctx context.Context, dictionaryID, sessionID string) (Question, error)
	Check(ctx context.Context, dictionaryID, headword, answer, sessionID string) (Result, error)
	Score(ctx context.Context, sessionID string) (Score, error)
}

type Question struct {
	Headword       string
	Reading        string
	Romaji         string
	Meaning        string
	DictionaryID   string
	DictionaryName string
	TotalWords     int
	ActiveSessions int
}

type Result struct {
	Correct     bool
	MatchedForm string
	UserRomaji  string
	Headword    string
	Reading     string
	Romaji      string
}

type Score struct {
	Correct int
	Wrong   int
}

// LocalBackend runs the quiz against dictionaries on this machine.
type LocalBackend struct {
	service *trainer.Service
}

func NewLocalBackend(service *trainer.Service) *LocalBackend {
	return &LocalBackend{service: service}
}

func (b *LocalBackend) StartSession(_ context.Context) (string, error) {
	id := uuid.NewString()
	b.service.TouchSession(id)
	return id, nil
}

func (b *LocalBackend) NextQuestion(ctx context.Context, dictionaryID, sessionID string) (Question, error) {
	q, err := b.service.NextQuestion(ctx, trainer.NextParams{DictionaryID: dictionaryID, SessionID: sessionID})
	if err != nil {
		return Question{}, err
	}
	return Question{
		Headword:       q.Entry.Headword,
		Reading:        q.Entry.Reading,
		Romaji:         q.Entry.Romaji,
		Meaning:        q.Entry.Meaning,
		DictionaryID:   q.DictionaryID,
		DictionaryName: q.DictionaryName,
		TotalWords:     q.TotalWords,
		ActiveSessions: q.ActiveSessions,
	}, nil
}

func (b *LocalBackend) Check(ctx context.Context, dictionaryID, headword, answer, sessionID string) (Result, error) {
	r, err := b.service.Check(ctx, trainer.CheckParams{
		DictionaryID: dictionaryID,
		Headword:     headword,
		Answer:       answer,
		SessionID:    sessionID,
	})
	if err != nil {
		return Result{}, err
	}
	return Result{
		Correct:     r.Judgment.Correct,
		MatchedForm: string(r.Judgment.MatchedForm),
		UserRomaji:  r.Judgment.UserRomaji,
		Headword:    r.Entry.Headword,
		Reading:     r.Entry.Reading,
		Romaji:      r.Entry.Romaji,
	}, nil
}

func (b *LocalBackend) Score(ctx context.Context, sessionID string) (Score, error) {
	score, err := b.service.Score(ctx, sessionID)
	if err != nil {
		return Score{}, err
	}
	return Score{Correct: score.Correct, Wrong: score.Wrong}, nil
}

// RemoteBackend runs the quiz against a kotoba server.
type RemoteBackend struct {
	client *client.Client
}

func NewRemoteBackend(c *client.Client) *RemoteBackend {
	return &RemoteBackend{client: c}
}

func (b *RemoteBackend) StartSession(ctx context.Context) (string, error) {
	res, err := b.client.CreateSession(ctx)
	if err != nil {
		return "", fmt.Errorf("client.CreateSession() > %w", err)
	}
	return res.Session, nil
}

func (b *RemoteBackend) NextQuestion(ctx context.Context, dictionaryID, sessionID string) (Question, error) {
	res, err := b.client.RandomWord(ctx, apiv1.GetRandomEntryRequest{Dict: dictionaryID, Session: sessionID})
	if err != nil {
		return Question{}, fmt.Errorf("client.RandomWord() > %w", err)
	}
	return Question{
		Headword:       res.Word.Headword,
		Reading:        res.Word.Reading,
		Romaji:         res.Word.Romaji,
		Meaning:        res.Word.Meaning,
		DictionaryID:   res.Dictionary.ID,
		DictionaryName: res.Dictionary.Name,
		TotalWords:     res.TotalWords,
		ActiveSessions: res.ActiveUsers,
	}, nil
}

func (b *RemoteBackend) Check(ctx context.Context, dictionaryID, headword, answer, sessionID string) (Result, error) {
	res, err := b.client.Check(ctx, apiv1.CheckAnswerRequest{
		Dict:    dictionaryID,
		Word:    headword,
		Answer:  answer,
		Session: sessionID,
	})
	if err != nil {
		return Result{}, fmt.Errorf("client.Check() > %w", err)
	}
	return Result{
		Correct:     res.Correct,
		MatchedForm: res.MatchedForm,
		UserRomaji:  res.UserRomaji,
		Headword:    res.Word.Headword,
		Reading:     res.Word.Reading,
		Romaji:      res.Word.Romaji,
	}, nil
}

func (b *RemoteBackend) Score(ctx context.Context, sessionID string) (Score, error) {
	res, err := b.client.Score(ctx, sessionID)
	if err != nil {
		return Score{}, fmt.Errorf("client.Score() > %w", err)
	}
	return Score{Correct: res.Correct, Wrong: res.Wrong}, nil
}

// ConnectBackend asks for questions and judgments over the Connect service.
// Sessions and scores have no Connect procedure and go through REST.
type ConnectBackend struct {
	*RemoteBackend
	rpc *apiv1.TrainerServiceClient
}

func NewConnectBackend(rest *client.Client, rpc *apiv1.TrainerServiceClient) *ConnectBackend {
	return &ConnectBackend{
		RemoteBackend: NewRemoteBackend(rest),
		rpc:           rpc,
	}
}

func (b *ConnectBackend) NextQuestion(ctx context.Context, dictionaryID, sessionID string) (Question, error) {
	res, err := b.rpc.GetRandomEntry(ctx, connect.NewRequest(&apiv1.GetRandomEntryRequest{
		Dict:    dictionaryID,
		Session: sessionID,
	}))
	if err != nil {
		return Question{}, fmt.Errorf("rpc.GetRandomEntry() > %w", fromConnectError(err))
	}
	msg := res.Msg
	return Question{
		Headword:       msg.Word.Headword,
		Reading:        msg.Word.Reading,
		Romaji:         msg.Word.Romaji,
		Meaning:        msg.Word.Meaning,
		DictionaryID:   msg.Dictionary.ID,
		DictionaryName: msg.Dictionary.Name,
		TotalWords:     msg.TotalWords,
		ActiveSessions: msg.ActiveUsers,
	}, nil
}

func (b *ConnectBackend) Check(ctx context.Context, dictionaryID, headword, answer, sessionID string) (Result, error) {
	res, err := b.rpc.CheckAnswer(ctx, connect.NewRequest(&apiv1.CheckAnswerRequest{
		Dict:    dictionaryID,
		Word:    headword,
		Answer:  answer,
		Session: sessionID,
	}))
	if err != nil {
		return Result{}, fmt.Errorf("rpc.CheckAnswer() > %w", fromConnectError(err))
	}
	msg := res.Msg
	return Result{
		Correct:     msg.Correct,
		MatchedForm: msg.MatchedForm,
		UserRomaji:  msg.UserRomaji,
		Headword:    msg.Word.Headword,
		Reading:     msg.Word.Reading,
		Romaji:      msg.Word.Romaji,
	}, nil
}

func fromConnectError(err error) error {
	if connect.CodeOf(err) == connect.CodeNotFound {
		return fmt.Errorf("%w: %v", dictionary.ErrNotFound, err)
	}
	return err
}
