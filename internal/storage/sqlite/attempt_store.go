package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/practica-app/practica/internal/domain"
	"github.com/practica-app/practica/internal/session"
)

// AttemptStore implements session.Store backed by SQLite. The assembled
// exercise is stored as a JSON snapshot with each attempt, so a resumed
// session does not depend on the backend delivering the same shape twice.
type AttemptStore struct {
	db *DB
}

// NewAttemptStore creates a SQLite-backed attempt store.
func NewAttemptStore(db *DB) *AttemptStore {
	return &AttemptStore{db: db}
}

// Save persists an attempt (insert or update).
func (s *AttemptStore) Save(a *session.Attempt) error {
	exercise, err := json.Marshal(a.Exercise)
	if err != nil {
		return fmt.Errorf("marshal exercise: %w", err)
	}
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	var correct, total sql.NullInt64
	if a.Result != nil {
		correct = sql.NullInt64{Int64: int64(a.Result.Correct), Valid: true}
		total = sql.NullInt64{Int64: int64(a.Result.Total), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO attempts (id, exercise_id, exercise, current_index, answers,
			status, correct, total, created_at, updated_at, finalized_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			current_index=excluded.current_index, answers=excluded.answers,
			status=excluded.status, correct=excluded.correct, total=excluded.total,
			updated_at=excluded.updated_at, finalized_at=excluded.finalized_at`,
		a.ID, a.Exercise.ID, string(exercise), a.CurrentIndex, string(answers),
		string(a.Status), correct, total,
		a.CreatedAt, a.UpdatedAt, nullTime(a.FinalizedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert attempt: %w", err)
	}
	return nil
}

const attemptColumns = `id, exercise, current_index, answers, status,
	correct, total, created_at, updated_at, finalized_at`

// Get retrieves an attempt by ID.
func (s *AttemptStore) Get(id string) (*session.Attempt, error) {
	row := s.db.QueryRow("SELECT "+attemptColumns+" FROM attempts WHERE id = ?", id)
	return scanAttempt(row)
}

// Delete removes an attempt.
func (s *AttemptStore) Delete(id string) error {
	result, err := s.db.Exec("DELETE FROM attempts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete attempt: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return session.ErrNotFound
	}
	return nil
}

// List returns all attempts, most recently updated first.
func (s *AttemptStore) List() ([]*session.Attempt, error) {
	rows, err := s.db.Query("SELECT " + attemptColumns + " FROM attempts ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*session.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// LatestForExercise returns the most recently updated attempt for the
// exercise.
func (s *AttemptStore) LatestForExercise(exerciseID int) (*session.Attempt, error) {
	row := s.db.QueryRow(
		"SELECT "+attemptColumns+" FROM attempts WHERE exercise_id = ? ORDER BY updated_at DESC LIMIT 1",
		exerciseID)
	return scanAttempt(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (*session.Attempt, error) {
	var (
		a           session.Attempt
		exercise    string
		answers     string
		status      string
		correct     sql.NullInt64
		total       sql.NullInt64
		finalizedAt sql.NullTime
	)

	err := row.Scan(&a.ID, &exercise, &a.CurrentIndex, &answers, &status,
		&correct, &total, &a.CreatedAt, &a.UpdatedAt, &finalizedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan attempt: %w", err)
	}

	a.Exercise = &domain.Exercise{}
	if err := json.Unmarshal([]byte(exercise), a.Exercise); err != nil {
		return nil, fmt.Errorf("unmarshal exercise: %w", err)
	}
	a.Answers = make(map[int]string)
	if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}

	a.Status = session.Status(status)
	if correct.Valid && total.Valid {
		a.Result = &session.Result{Correct: int(correct.Int64), Total: int(total.Int64)}
	}
	if finalizedAt.Valid {
		t := finalizedAt.Time
		a.FinalizedAt = &t
	}

	return &a, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
