package domain

import "time"

// Analysis is the AI-generated feedback for a submitted programming answer.
// Generation is asynchronous on the backend; Ready is false while it runs.
type Analysis struct {
	SubmissionID string    `json:"submission_id"`
	Ready        bool      `json:"ready"`
	ContentHTML  string    `json:"content_html"` // rendered, not parsed
	CreatedAt    time.Time `json:"created_at"`
}
