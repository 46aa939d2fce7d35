// Package normalize converts the backend's loosely-shaped JSON records into
// the canonical domain model. The backend is inconsistent about field names
// and option shapes across endpoints, so every record crosses exactly one
// total decode function here and the loose shape never leaks past it.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/practica-app/practica/internal/domain"
)

// Raw is one undecoded record as received from the backend.
type Raw map[string]any

// Field aliases observed across backend endpoints. First match wins.
var (
	idKeys        = []string{"id", "questionId", "question_id"}
	statementKeys = []string{"statementHtml", "statement_html", "statement", "enunciation", "text", "description"}
	kindKeys      = []string{"kind", "type", "questionType", "question_type"}
	optionsKeys   = []string{"options", "alternatives", "choices"}
	correctKeys   = []string{"correctOptionId", "correct_option_id", "correctAnswer", "correct_answer", "answer"}
	sampleKeys    = []string{"sampleAnswer", "sample_answer", "sampleCode", "sample_code", "starterCode", "codeTemplate"}
	orderKeys     = []string{"order", "position", "sequence"}

	titleKeys    = []string{"title", "name"}
	langIDKeys   = []string{"languageId", "language_id", "language"}
	langNameKeys = []string{"languageName", "language_name"}

	contentFKKeys  = []string{"contentId", "content_id"}
	exerciseFKKeys = []string{"exerciseId", "exercise_id"}
)

// Question decodes one raw question record. A record without a resolvable id
// is rejected (ok=false); every other gap collapses to a safe default. The
// function never panics regardless of input shape.
func Question(raw Raw) (domain.Question, bool) {
	id, ok := intField(raw, idKeys)
	if !ok {
		return domain.Question{}, false
	}

	q := domain.Question{
		ID:            id,
		StatementHTML: stringField(raw, statementKeys),
		Kind:          questionKind(stringField(raw, kindKeys)),
		SampleAnswer:  stringField(raw, sampleKeys),
	}
	if order, ok := intField(raw, orderKeys); ok {
		q.Order = order
	}

	q.Options = options(raw)
	q.CorrectOption = correctOption(raw, q.Options)

	return q, true
}

// Questions decodes a sequence of raw records, dropping rejected ones and
// preserving source order.
func Questions(raws []Raw) []domain.Question {
	out := make([]domain.Question, 0, len(raws))
	for _, raw := range raws {
		if q, ok := Question(raw); ok {
			out = append(out, q)
		}
	}
	return out
}

// Exercise decodes the metadata of a raw exercise record. The questions
// possibly embedded in the record are the assembler's concern, via
// EmbeddedQuestions.
func Exercise(raw Raw) (domain.Exercise, bool) {
	id, ok := intField(raw, idKeys)
	if !ok {
		return domain.Exercise{}, false
	}

	e := domain.Exercise{
		ID:         id,
		Title:      stringField(raw, titleKeys),
		Kind:       exerciseKind(stringField(raw, kindKeys)),
		SampleCode: stringField(raw, sampleKeys),
	}
	if langID, ok := intField(raw, langIDKeys); ok {
		e.LanguageID = langID
	}
	e.LanguageName = stringField(raw, langNameKeys)

	return e, true
}

// EmbeddedQuestions extracts question records nested inside an exercise
// payload, when the backend denormalized them inline.
func EmbeddedQuestions(raw Raw) []Raw {
	for _, key := range []string{"questions", "items"} {
		if seq, ok := raw[key].([]any); ok {
			return rawSlice(seq)
		}
	}
	return nil
}

// BelongsTo reports whether a raw question record from the global endpoint is
// tagged for the given exercise, via either of its foreign keys.
func BelongsTo(raw Raw, exerciseID int) bool {
	if fk, ok := intField(raw, contentFKKeys); ok && fk == exerciseID {
		return true
	}
	if fk, ok := intField(raw, exerciseFKKeys); ok && fk == exerciseID {
		return true
	}
	return false
}

// options decodes the raw option sequence. Bare strings get positional
// synthesized ids (o1, o2, ...), stable for the lifetime of this pass so the
// answer key can still be resolved against them. Object-shaped options pass
// through with field coercion.
func options(raw Raw) []domain.Option {
	var seq []any
	for _, key := range optionsKeys {
		if s, ok := raw[key].([]any); ok {
			seq = s
			break
		}
	}
	if len(seq) == 0 {
		return nil
	}

	out := make([]domain.Option, 0, len(seq))
	for i, item := range seq {
		switch v := item.(type) {
		case string:
			out = append(out, domain.Option{ID: synthOptionID(i), Text: v})
		case map[string]any:
			opt := domain.Option{
				ID:   stringField(Raw(v), []string{"id", "optionId", "option_id", "value"}),
				Text: stringField(Raw(v), []string{"text", "label", "description"}),
			}
			if opt.ID == "" {
				opt.ID = synthOptionID(i)
			}
			if opt.Text == "" {
				opt.Text = opt.ID
			}
			out = append(out, opt)
		default:
			// unrepresentable option entries are dropped, not fatal
		}
	}
	return out
}

// correctOption resolves the raw answer key against the decoded options:
// by option id first, then by option text, then as a numeric index. No
// match leaves the key unset.
func correctOption(raw Raw, opts []domain.Option) string {
	key := stringField(raw, correctKeys)
	if key == "" || len(opts) == 0 {
		return ""
	}

	for _, o := range opts {
		if o.ID == key {
			return o.ID
		}
	}
	for _, o := range opts {
		if o.Text == key {
			return o.ID
		}
	}
	if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(opts) {
		return opts[idx].ID
	}
	return ""
}

func synthOptionID(i int) string {
	return fmt.Sprintf("o%d", i+1)
}

func questionKind(s string) domain.Kind {
	switch normalizeKind(s) {
	case "quiz":
		return domain.KindQuiz
	case "multiple_choice", "multiplechoice", "mcq":
		return domain.KindMultipleChoice
	case "programming":
		return domain.KindProgramming
	case "code":
		return domain.KindCode
	case "free_text", "freetext", "open", "text":
		return domain.KindFreeText
	default:
		return domain.KindFreeText
	}
}

func exerciseKind(s string) domain.ExerciseKind {
	if normalizeKind(s) == "quiz" {
		return domain.ExerciseQuiz
	}
	return domain.ExercisePractical
}

func normalizeKind(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}

// stringField returns the first present alias coerced to a string, or "".
func stringField(raw Raw, keys []string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			return s
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		case int:
			return strconv.Itoa(s)
		case bool:
			return strconv.FormatBool(s)
		}
	}
	return ""
}

// intField returns the first present alias coerced to an int. JSON numbers
// arrive as float64; numeric strings are accepted too.
func intField(raw Raw, keys []string) (int, bool) {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int(n), true
		case int:
			return n, true
		case int64:
			return int(n), true
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return i, true
			}
		}
	}
	return 0, false
}

func rawSlice(seq []any) []Raw {
	out := make([]Raw, 0, len(seq))
	for _, item := range seq {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Raw(m))
		}
	}
	return out
}
