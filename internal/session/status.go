package session

// DisplayStatus is the read-only status list views show per exercise.
type DisplayStatus string

const (
	StatusNotStarted DisplayStatus = "not_started"
	StatusInProgress DisplayStatus = "in_progress"
	StatusCompleted  DisplayStatus = "completed"
)

// ProjectStatus derives a display status from an attempt. A nil attempt
// means no attempt exists yet for the exercise. Pure; no write access to
// the attempt.
func ProjectStatus(a *Attempt) DisplayStatus {
	if a == nil {
		return StatusNotStarted
	}
	if a.Finalized() {
		return StatusCompleted
	}
	if a.AnsweredCount() == 0 {
		return StatusNotStarted
	}
	return StatusInProgress
}
