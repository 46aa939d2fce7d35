package session

import "github.com/practica-app/practica/internal/domain"

// PassThreshold is the percentage at or above which an attempt counts as
// passed. Used for messaging only, never stored.
const PassThreshold = 70.0

// Result is the scored outcome of a finalized attempt.
type Result struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Score computes the result for an answer map over an ordered question list.
// Every question counts toward the total, including kinds that cannot be
// auto-scored; only auto-scorable questions with a matching answer count as
// correct. Pure and deterministic.
func Score(questions []domain.Question, answers map[int]string) Result {
	result := Result{Total: len(questions)}
	for _, q := range questions {
		if q.IsCorrect(answers[q.ID]) {
			result.Correct++
		}
	}
	return result
}

// Percentage returns the score as a percentage; an empty exercise scores 0.
func (r Result) Percentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total) * 100
}

// Passed reports whether the result meets the pass threshold.
func (r Result) Passed() bool {
	return r.Percentage() >= PassThreshold
}
