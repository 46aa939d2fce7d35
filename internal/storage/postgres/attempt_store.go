package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/practica-app/practica/internal/domain"
	"github.com/practica-app/practica/internal/session"
)

// AttemptStore implements session.Store on a pgx connection pool. Like the
// sqlite store it keeps the assembled exercise as a JSON snapshot next to the
// attempt.
//
// session.Store methods carry no context because the CLI drives them
// synchronously; queries run under context.Background().
type AttemptStore struct {
	pool *pgxpool.Pool
}

// NewAttemptStore creates a Postgres-backed attempt store.
func NewAttemptStore(pool *pgxpool.Pool) *AttemptStore {
	return &AttemptStore{pool: pool}
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

	var correct, total *int
	if a.Result != nil {
		correct = &a.Result.Correct
		total = &a.Result.Total
	}

	_, err = s.pool.Exec(context.Background(), `
		INSERT INTO attempts (id, exercise_id, exercise, current_index, answers,
			status, correct, total, created_at, updated_at, finalized_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			current_index=excluded.current_index, answers=excluded.answers,
			status=excluded.status, correct=excluded.correct, total=excluded.total,
			updated_at=excluded.updated_at, finalized_at=excluded.finalized_at`,
		a.ID, a.Exercise.ID, exercise, a.CurrentIndex, answers,
		string(a.Status), correct, total,
		a.CreatedAt, a.UpdatedAt, a.FinalizedAt,
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
	row := s.pool.QueryRow(context.Background(),
		"SELECT "+attemptColumns+" FROM attempts WHERE id = $1", id)
	return scanAttempt(row)
}

// Delete removes an attempt.
func (s *AttemptStore) Delete(id string) error {
	tag, err := s.pool.Exec(context.Background(),
		"DELETE FROM attempts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete attempt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

// List returns all attempts, most recently updated first.
func (s *AttemptStore) List() ([]*session.Attempt, error) {
	rows, err := s.pool.Query(context.Background(),
		"SELECT "+attemptColumns+" FROM attempts ORDER BY updated_at DESC")
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
	row := s.pool.QueryRow(context.Background(),
		"SELECT "+attemptColumns+" FROM attempts WHERE exercise_id = $1 ORDER BY updated_at DESC LIMIT 1",
		exerciseID)
	return scanAttempt(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (*session.Attempt, error) {
	var (
		a        session.Attempt
		exercise []byte
		answers  []byte
		status   string
		correct  *int
		total    *int
	)

	err := row.Scan(&a.ID, &exercise, &a.CurrentIndex, &answers, &status,
		&correct, &total, &a.CreatedAt, &a.UpdatedAt, &a.FinalizedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan attempt: %w", err)
	}

	a.Exercise = &domain.Exercise{}
	if err := json.Unmarshal(exercise, a.Exercise); err != nil {
		return nil, fmt.Errorf("unmarshal exercise: %w", err)
	}
	a.Answers = make(map[int]string)
	if err := json.Unmarshal(answers, &a.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}

	a.Status = session.Status(status)
	if correct != nil && total != nil {
		a.Result = &session.Result{Correct: *correct, Total: *total}
	}

	return &a, nil
}
