package domain

import "errors"

// Exercise errors
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// Attempt errors
var (
	ErrAttemptNotFound = errors.New("attempt not found")
)

// Analysis errors
var (
	ErrAnalysisPending  = errors.New("analysis not ready")
	ErrAnalysisNotFound = errors.New("analysis not found")
)

// General errors
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)
