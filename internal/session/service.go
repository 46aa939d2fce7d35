package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/practica-app/practica/internal/assemble"
)

var (
	ErrAttemptNotFound = errors.New("attempt not found")
	ErrEmptyExercise   = errors.New("exercise has no questions")
)

// Submitter delivers a finalized result to the backend. Persistence of the
// outcome is entirely the backend's responsibility; the local attempt state
// is authoritative for the current session either way.
type Submitter interface {
	SubmitResult(ctx context.Context, exerciseID int, answers map[int]string, result Result) (submissionID string, err error)
}

// Service manages exercise attempts: assembly, persistence, and the
// answer/navigate/finalize operations.
type Service struct {
	store     Store
	assembler *assemble.Assembler
	submitter Submitter // optional: finalize works without a backend
}

// NewService creates a new attempt service.
func NewService(store Store, assembler *assemble.Assembler) *Service {
	return &Service{store: store, assembler: assembler}
}

// SetSubmitter sets the backend submitter used on finalize.
func (s *Service) SetSubmitter(sub Submitter) {
	s.submitter = sub
}

// Start assembles the exercise and creates a persisted active attempt.
// An exercise whose question list came back empty is still startable; the
// caller decides whether that is worth showing.
func (s *Service) Start(ctx context.Context, exerciseID int) (*Attempt, error) {
	ex, err := s.assembler.AssembleByID(ctx, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("assemble exercise: %w", err)
	}

	attempt := NewAttempt(ex)
	if err := s.store.Save(attempt); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}
	return attempt, nil
}

// Get retrieves an attempt by ID.
func (s *Service) Get(ctx context.Context, id string) (*Attempt, error) {
	attempt, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	return attempt, nil
}

// List returns all stored attempts.
func (s *Service) List(ctx context.Context) ([]*Attempt, error) {
	return s.store.List()
}

// Delete discards an attempt.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(id)
}

// Answer records an answer and persists the attempt. Recordings the attempt
// rejects (finalized, unknown question id) are silent no-ops, so this only
// fails when the attempt is missing or the store does.
func (s *Service) Answer(ctx context.Context, id string, questionID int, value string) (*Attempt, error) {
	return s.update(ctx, id, func(a *Attempt) {
		a.RecordAnswer(questionID, value)
	})
}

// GoTo moves the cursor and persists the attempt.
func (s *Service) GoTo(ctx context.Context, id string, index int) (*Attempt, error) {
	return s.update(ctx, id, func(a *Attempt) {
		a.GoTo(index)
	})
}

// Next advances the cursor and persists the attempt.
func (s *Service) Next(ctx context.Context, id string) (*Attempt, error) {
	return s.update(ctx, id, func(a *Attempt) {
		a.Next()
	})
}

// Previous moves the cursor back and persists the attempt.
func (s *Service) Previous(ctx context.Context, id string) (*Attempt, error) {
	return s.update(ctx, id, func(a *Attempt) {
		a.Previous()
	})
}

func (s *Service) update(ctx context.Context, id string, fn func(*Attempt)) (*Attempt, error) {
	attempt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fn(attempt)

	if err := s.store.Save(attempt); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}
	return attempt, nil
}

// FinalizeOutcome reports what finalize produced. SubmitErr carries a failed
// backend submission for user-visible messaging; the attempt is terminal
// regardless.
type FinalizeOutcome struct {
	Attempt      *Attempt
	Result       Result
	SubmissionID string
	SubmitErr    error
}

// Finalize locks the attempt and computes its score. The backend submission
// happens at most once, on the call that performs the transition; repeated
// calls return the committed result without resubmitting.
func (s *Service) Finalize(ctx context.Context, id string) (*FinalizeOutcome, error) {
	attempt, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	already := attempt.Finalized()
	result := attempt.Finalize()

	if err := s.store.Save(attempt); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}

	out := &FinalizeOutcome{Attempt: attempt, Result: result}

	if already || s.submitter == nil {
		return out, nil
	}

	subID, err := s.submitter.SubmitResult(ctx, attempt.Exercise.ID, attempt.Answers, result)
	if err != nil {
		slog.Warn("result submission failed, attempt stays finalized locally",
			"attempt", attempt.ID, "exercise", attempt.Exercise.ID, "error", err)
		out.SubmitErr = err
		return out, nil
	}
	out.SubmissionID = subID

	return out, nil
}

// ExerciseStatus projects the display status for an exercise from the
// learner's latest attempt, for list views.
func (s *Service) ExerciseStatus(ctx context.Context, exerciseID int) (DisplayStatus, error) {
	attempt, err := s.store.LatestForExercise(exerciseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return StatusNotStarted, nil
		}
		return "", err
	}
	return ProjectStatus(attempt), nil
}
