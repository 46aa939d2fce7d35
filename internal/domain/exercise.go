package domain

// ExerciseKind drives which question kinds an exercise is expected to
// contain. It is advisory, not enforced.
type ExerciseKind string

const (
	ExercisePractical ExerciseKind = "practical"
	ExerciseQuiz      ExerciseKind = "quiz"
)

// Exercise is a titled, ordered bundle of questions a learner attempts.
// It is assembled once per session and treated as immutable afterwards.
type Exercise struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Kind         ExerciseKind `json:"kind"`
	LanguageID   int          `json:"language_id,omitempty"`
	LanguageName string       `json:"language_name,omitempty"`
	SampleCode   string       `json:"sample_code,omitempty"` // default seed for programming questions
	Questions    []Question   `json:"questions"`             // slice order is display/navigation order
}

// QuestionByID returns the question with the given id, if present.
func (e *Exercise) QuestionByID(id int) (*Question, bool) {
	for i := range e.Questions {
		if e.Questions[i].ID == id {
			return &e.Questions[i], true
		}
	}
	return nil, false
}

// StarterCode returns the code a programming question should be seeded
// with: the question's own sample answer when present, otherwise the
// exercise-level sample code.
func (e *Exercise) StarterCode(q *Question) string {
	if q.SampleAnswer != "" {
		return q.SampleAnswer
	}
	return e.SampleCode
}
