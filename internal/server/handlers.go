package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	apiv1 "github.com/at-ishikawa/kotoba/internal/api/v1"
	"github.com/at-ishikawa/kotoba/internal/trainer"
)

const maxRequestBytes = 1 << 16

// getRandomEntry, checkAnswer and heartbeat are shared by the REST and
// Connect handlers.

func (s *Server) getRandomEntry(ctx context.Context, req *apiv1.GetRandomEntryRequest) (*apiv1.GetRandomEntryResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	question, err := s.service.NextQuestion(ctx, trainer.NextParams{
		DictionaryID: req.Dict,
		SessionID:    req.Session,
	})
	if err != nil {
		return nil, err
	}
	word, err := toWord(question.Entry, req.ShowKatakanaReading)
	if err != nil {
		return nil, err
	}
	return &apiv1.GetRandomEntryResponse{
		Word: word,
		Dictionary: apiv1.Dictionary{
			ID:   question.DictionaryID,
			Name: question.DictionaryName,
			Path: question.DictionaryPath,
		},
		TotalWords:  question.TotalWords,
		ActiveUsers: question.ActiveSessions,
	}, nil
}

func (s *Server) checkAnswerMessage(ctx context.Context, req *apiv1.CheckAnswerRequest) (*apiv1.CheckAnswerResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	result, err := s.service.Check(ctx, trainer.CheckParams{
		DictionaryID: req.Dict,
		Headword:     req.Word,
		Answer:       req.Answer,
		SessionID:    req.Session,
	})
	if err != nil {
		return nil, err
	}
	word, err := toWord(result.Entry, false)
	if err != nil {
		return nil, err
	}
	return &apiv1.CheckAnswerResponse{
		Correct:     result.Judgment.Correct,
		MatchedForm: string(result.Judgment.MatchedForm),
		UserRomaji:  result.Judgment.UserRomaji,
		Word:        word,
		ActiveUsers: result.ActiveSessions,
	}, nil
}

func (s *Server) heartbeatMessage(_ context.Context, req *apiv1.HeartbeatRequest) (*apiv1.HeartbeatResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	return &apiv1.HeartbeatResponse{
		ActiveUsers: s.service.TouchSession(req.Session),
	}, nil
}

func (s *Server) listDictionaries(w http.ResponseWriter, _ *http.Request) {
	list := s.service.Dictionaries()
	s.writeJSON(w, http.StatusOK, apiv1.ListDictionariesResponse{
		Dictionaries: toDictionaries(list.Sources),
		Default:      list.DefaultID,
	})
}

func (s *Server) randomWord(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	res, err := s.getRandomEntry(r.Context(), &apiv1.GetRandomEntryRequest{
		Dict:                query.Get("dict"),
		Session:             query.Get("session"),
		ShowKatakanaReading: query.Get("show_katakana_reading") == "1",
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) checkAnswer(w http.ResponseWriter, r *http.Request) {
	var req apiv1.CheckAnswerRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.checkAnswerMessage(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) heartbeat(w http.ResponseWriter, r *http.Request) {
	var req apiv1.HeartbeatRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.heartbeatMessage(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) createSession(w http.ResponseWriter, _ *http.Request) {
	id := uuid.NewString()
	s.writeJSON(w, http.StatusCreated, apiv1.CreateSessionResponse{
		Session:     id,
		ActiveUsers: s.service.TouchSession(id),
	})
}

func (s *Server) score(w http.ResponseWriter, r *http.Request) {
	score, err := s.service.Score(r.Context(), r.URL.Query().Get("session"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, apiv1.ScoreResponse{
		Session: score.SessionID,
		Correct: score.Correct,
		Wrong:   score.Wrong,
	})
}

// decodeBody decodes a JSON body. An empty body leaves v unchanged.
func decodeBody(r *http.Request, v any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBytes))
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &validationError{messages: []string{fmt.Sprintf("malformed JSON body: %v", err)}}
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	res := apiv1.ErrorResponse{Error: err.Error()}
	var vErr *validationError
	if errors.As(err, &vErr) {
		res.Error = errInvalidRequest.Error()
		res.Details = vErr.messages
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.Any("error", err))
		res.Error = http.StatusText(status)
	}
	s.writeJSON(w, status, res)
}
