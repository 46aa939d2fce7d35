package session

import "errors"

// ErrNotFound is returned by stores when no attempt matches.
var ErrNotFound = errors.New("attempt not found")

// Store persists attempts so a session can be resumed across CLI
// invocations and so list views can project per-exercise status.
type Store interface {
	Save(a *Attempt) error
	Get(id string) (*Attempt, error)
	Delete(id string) error
	List() ([]*Attempt, error)
	// LatestForExercise returns the most recently updated attempt for the
	// exercise, or ErrNotFound when the learner never started one.
	LatestForExercise(exerciseID int) (*Attempt, error)
}
