package domain

// Kind classifies how a question is answered and whether it can be
// auto-scored locally.
type Kind string

const (
	KindQuiz           Kind = "quiz"
	KindMultipleChoice Kind = "multiple_choice"
	KindProgramming    Kind = "programming"
	KindCode           Kind = "code"
	KindFreeText       Kind = "free_text"
)

// AutoScorable reports whether answers of this kind are checked against a
// known-correct option. Programming and code questions are scored by the
// backend, free text is never auto-scored.
func (k Kind) AutoScorable() bool {
	return k == KindQuiz || k == KindMultipleChoice
}

// Option is a single choice offered by a choice-type question. ID is an
// opaque token, stable within one normalization pass.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is one answerable unit within an exercise.
type Question struct {
	ID            int      `json:"id"`
	StatementHTML string   `json:"statement_html"` // opaque markup, rendered not parsed
	Kind          Kind     `json:"kind"`
	Options       []Option `json:"options,omitempty"`
	CorrectOption string   `json:"correct_option,omitempty"` // matches an Option.ID when set
	SampleAnswer  string   `json:"sample_answer,omitempty"`  // seed code for programming questions
	Order         int      `json:"order,omitempty"`          // position hint, display order is slice order
}

// OptionByID returns the option with the given id, if present.
func (q *Question) OptionByID(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// IsCorrect reports whether the given answer matches the question's answer
// key. Questions without a key, or of a kind that is not auto-scorable,
// are never correct locally.
func (q *Question) IsCorrect(answer string) bool {
	if !q.Kind.AutoScorable() || q.CorrectOption == "" {
		return false
	}
	return answer == q.CorrectOption
}
