// Package scoreboard records judged answers and aggregates them per session.
package scoreboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// AnswerLog is one judged answer.
type AnswerLog struct {
	ID           int64     `db:"id" json:"id"`
	SessionID    string    `db:"session_id" json:"sessionId"`
	DictionaryID string    `db:"dictionary_id" json:"dictionaryId"`
	Headword     string    `db:"headword" json:"headword"`
	Answer       string    `db:"answer" json:"answer"`
	Correct      bool      `db:"correct" json:"correct"`
	MatchedForm  string    `db:"matched_form" json:"matchedForm"`
	AnsweredAt   time.Time `db:"answered_at" json:"answeredAt"`
}

// Score counts the answers of a session.
type Score struct {
	SessionID string `db:"session_id" json:"sessionId"`
	Correct   int    `db:"correct" json:"correct"`
	Wrong     int    `db:"wrong" json:"wrong"`
}

//go:generate mockgen -source=repository.go -destination=../mocks/scoreboard/mock_repository.go -package=mock_scoreboard

// Repository stores answer logs.
type Repository interface {
	Create(ctx context.Context, log *AnswerLog) error
	ScoreBySession(ctx context.Context, sessionID string) (Score, error)
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Create inserts a new answer log and sets its ID.
func (r *DBRepository) Create(ctx context.Context, log *AnswerLog) error {
	result, err := r.db.NamedExecContext(ctx,
		`INSERT INTO answer_logs (session_id, dictionary_id, headword, answer, correct, matched_form, answered_at)
		VALUES (:session_id, :dictionary_id, :headword, :answer, :correct, :matched_form, :answered_at)`,
		log)
	if err != nil {
		return fmt.Errorf("db.NamedExecContext(insert answer_log) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	log.ID = id
	return nil
}

func (r *DBRepository) ScoreBySession(ctx context.Context, sessionID string) (Score, error) {
	score := Score{SessionID: sessionID}
	if err := r.db.GetContext(ctx, &score,
		`SELECT ? AS session_id,
			COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0) AS correct,
			COALESCE(SUM(CASE WHEN correct THEN 0 ELSE 1 END), 0) AS wrong
		FROM answer_logs WHERE session_id = ?`,
		sessionID, sessionID); err != nil {
		return Score{}, fmt.Errorf("db.GetContext(score by session) > %w", err)
	}
	return score, nil
}

// MemoryRepository keeps answer logs in memory. It is used when no database
// is configured and loses its data on restart.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	logs   []AnswerLog
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, log *AnswerLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	log.ID = r.nextID
	r.logs = append(r.logs, *log)
	return nil
}

func (r *MemoryRepository) ScoreBySession(_ context.Context, sessionID string) (Score, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	score := Score{SessionID: sessionID}
	for _, log := range r.logs {
		if log.SessionID != sessionID {
			continue
		}
		if log.Correct {
			score.Correct++
		} else {
			score.Wrong++
		}
	}
	return score, nil
}
