// Package session drives a learner's attempt at one exercise: current
// question cursor, per-question answers, and the one-way finalize transition
// that locks edits and computes the score.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/practica-app/practica/internal/domain"
)

// Status is the attempt state. There are exactly two: an attempt is active
// until it is finalized, and finalized is terminal.
type Status string

const (
	StatusActive    Status = "active"
	StatusFinalized Status = "finalized"
)

// Attempt is one learner's attempt state for one exercise. The exercise is a
// snapshot taken at assembly time and is never mutated through the attempt.
//
// Methods are guarded by a mutex so a double-triggered Finalize observes the
// already-committed result instead of recomputing.
type Attempt struct {
	mu sync.Mutex

	ID           string           `json:"id"`
	Exercise     *domain.Exercise `json:"exercise"`
	CurrentIndex int              `json:"current_index"`
	Answers      map[int]string   `json:"answers"`
	Status       Status           `json:"status"`
	Result       *Result          `json:"result,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
}

// NewAttempt starts an active attempt at the given exercise.
func NewAttempt(ex *domain.Exercise) *Attempt {
	now := time.Now()
	return &Attempt{
		ID:        uuid.New().String(),
		Exercise:  ex,
		Answers:   make(map[int]string),
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Finalized reports whether the attempt has reached its terminal state.
func (a *Attempt) Finalized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Status == StatusFinalized
}

// RecordAnswer upserts the learner's answer for a question. It is a no-op
// once the attempt is finalized, and for question ids the exercise does not
// contain. The value is stored as given; input shape is the caller's concern.
func (a *Attempt) RecordAnswer(questionID int, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Status == StatusFinalized {
		return
	}
	if _, ok := a.Exercise.QuestionByID(questionID); !ok {
		return
	}
	a.Answers[questionID] = value
	a.UpdatedAt = time.Now()
}

// Answer returns the recorded answer for a question, if any.
func (a *Attempt) Answer(questionID int) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.Answers[questionID]
	return v, ok
}

// GoTo moves the cursor to the given question index. Out-of-range indexes
// are ignored. Navigation stays allowed after finalize (review mode).
func (a *Attempt) GoTo(index int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= len(a.Exercise.Questions) {
		return
	}
	a.CurrentIndex = index
	a.UpdatedAt = time.Now()
}

// Next advances the cursor by one, clamping at the last question.
func (a *Attempt) Next() {
	a.mu.Lock()
	index := a.CurrentIndex + 1
	a.mu.Unlock()
	a.GoTo(index)
}

// Previous moves the cursor back by one, clamping at the first question.
func (a *Attempt) Previous() {
	a.mu.Lock()
	index := a.CurrentIndex - 1
	a.mu.Unlock()
	a.GoTo(index)
}

// Current returns the question under the cursor, or nil for an empty
// exercise.
func (a *Attempt) Current() *domain.Question {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.Exercise.Questions) == 0 {
		return nil
	}
	return &a.Exercise.Questions[a.CurrentIndex]
}

// Finalize scores the answers and moves the attempt to its terminal state.
// It is idempotent: a second call returns the already-committed result
// unchanged, never recomputing.
func (a *Attempt) Finalize() Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Status == StatusFinalized {
		return *a.Result
	}

	result := Score(a.Exercise.Questions, a.Answers)
	now := time.Now()

	a.Result = &result
	a.Status = StatusFinalized
	a.FinalizedAt = &now
	a.UpdatedAt = now

	return result
}

// AnsweredCount is the number of exercise questions with a recorded answer.
func (a *Attempt) AnsweredCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.answeredIndexes())
}

// AnsweredIndexes returns the question indexes that have a recorded answer,
// in display order, for navigation UIs that mark answered questions.
func (a *Attempt) AnsweredIndexes() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.answeredIndexes()
}

func (a *Attempt) answeredIndexes() []int {
	var indexes []int
	for i, q := range a.Exercise.Questions {
		if _, ok := a.Answers[q.ID]; ok {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
