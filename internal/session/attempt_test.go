package session

import (
	"testing"

	"github.com/practica-app/practica/internal/domain"
)

func quizExercise() *domain.Exercise {
	return &domain.Exercise{
		ID:    9,
		Title: "Basics quiz",
		Kind:  domain.ExerciseQuiz,
		Questions: []domain.Question{
			{ID: 1, Kind: domain.KindQuiz, CorrectOption: "a",
				Options: []domain.Option{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}}},
			{ID: 2, Kind: domain.KindQuiz, CorrectOption: "b",
				Options: []domain.Option{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}}},
			{ID: 3, Kind: domain.KindQuiz, CorrectOption: "c",
				Options: []domain.Option{{ID: "c", Text: "C"}, {ID: "d", Text: "D"}}},
			{ID: 4, Kind: domain.KindQuiz, CorrectOption: "d",
				Options: []domain.Option{{ID: "c", Text: "C"}, {ID: "d", Text: "D"}}},
		},
	}
}

func TestNewAttempt(t *testing.T) {
	a := NewAttempt(quizExercise())

	if a.ID == "" {
		t.Error("NewAttempt() should generate an ID")
	}
	if a.Status != StatusActive {
		t.Errorf("Status = %q, want %q", a.Status, StatusActive)
	}
	if a.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", a.CurrentIndex)
	}
	if a.AnsweredCount() != 0 {
		t.Errorf("AnsweredCount() = %d, want 0", a.AnsweredCount())
	}
}

func TestAttempt_RecordAnswer(t *testing.T) {
	a := NewAttempt(quizExercise())

	a.RecordAnswer(1, "a")
	a.RecordAnswer(1, "b") // last write wins
	a.RecordAnswer(2, "a")

	if got, _ := a.Answer(1); got != "b" {
		t.Errorf("Answer(1) = %q, want %q", got, "b")
	}
	if a.AnsweredCount() != 2 {
		t.Errorf("AnsweredCount() = %d, want 2", a.AnsweredCount())
	}
}

func TestAttempt_RecordAnswer_UnknownQuestionIgnored(t *testing.T) {
	a := NewAttempt(quizExercise())

	a.RecordAnswer(99, "x")

	if _, ok := a.Answer(99); ok {
		t.Error("answers for unknown question ids must not be stored")
	}
	if a.AnsweredCount() != 0 {
		t.Errorf("AnsweredCount() = %d, want 0", a.AnsweredCount())
	}
}

func TestAttempt_Navigation(t *testing.T) {
	ex := &domain.Exercise{ID: 1, Questions: []domain.Question{{ID: 1}, {ID: 2}, {ID: 3}}}
	a := NewAttempt(ex)

	// out-of-range moves are no-ops
	a.GoTo(-1)
	if a.CurrentIndex != 0 {
		t.Errorf("CurrentIndex after GoTo(-1) = %d, want 0", a.CurrentIndex)
	}
	a.GoTo(3)
	if a.CurrentIndex != 0 {
		t.Errorf("CurrentIndex after GoTo(len) = %d, want 0", a.CurrentIndex)
	}

	a.GoTo(2)
	if a.CurrentIndex != 2 {
		t.Errorf("CurrentIndex = %d, want 2", a.CurrentIndex)
	}

	// Next clamps at the last question
	a.Next()
	if a.CurrentIndex != 2 {
		t.Errorf("CurrentIndex after Next at end = %d, want 2", a.CurrentIndex)
	}

	a.Previous()
	a.Previous()
	if a.CurrentIndex != 0 {
		t.Errorf("CurrentIndex = %d, want 0", a.CurrentIndex)
	}

	// Previous clamps at the first question
	a.Previous()
	if a.CurrentIndex != 0 {
		t.Errorf("CurrentIndex after Previous at start = %d, want 0", a.CurrentIndex)
	}
}

func TestAttempt_NavigationAllowedAfterFinalize(t *testing.T) {
	ex := &domain.Exercise{ID: 1, Questions: []domain.Question{{ID: 1}, {ID: 2}}}
	a := NewAttempt(ex)
	a.Finalize()

	a.GoTo(1)
	if a.CurrentIndex != 1 {
		t.Error("review-mode navigation must stay allowed after finalize")
	}
}

func TestAttempt_Current(t *testing.T) {
	a := NewAttempt(quizExercise())

	q := a.Current()
	if q == nil || q.ID != 1 {
		t.Fatalf("Current() = %+v, want question 1", q)
	}

	a.GoTo(2)
	if q := a.Current(); q.ID != 3 {
		t.Errorf("Current().ID = %d, want 3", q.ID)
	}

	empty := NewAttempt(&domain.Exercise{ID: 2})
	if q := empty.Current(); q != nil {
		t.Errorf("Current() on empty exercise = %+v, want nil", q)
	}
}

func TestAttempt_Finalize(t *testing.T) {
	a := NewAttempt(quizExercise())
	a.RecordAnswer(1, "a")
	a.RecordAnswer(2, "x") // mismatched
	a.RecordAnswer(3, "c")
	a.RecordAnswer(4, "d")

	res := a.Finalize()

	if res.Correct != 3 || res.Total != 4 {
		t.Errorf("Finalize() = %+v, want {Correct: 3, Total: 4}", res)
	}
	if res.Percentage() != 75 {
		t.Errorf("Percentage() = %v, want 75", res.Percentage())
	}
	if !res.Passed() {
		t.Error("Passed() = false, want true at 75%")
	}
	if !a.Finalized() {
		t.Error("attempt should be finalized")
	}
	if a.FinalizedAt == nil {
		t.Error("FinalizedAt should be set")
	}
}

func TestAttempt_FinalizeIdempotent(t *testing.T) {
	a := NewAttempt(quizExercise())
	a.RecordAnswer(1, "a")

	first := a.Finalize()

	// answers recorded between the two calls must not affect the result
	a.RecordAnswer(2, "b")
	second := a.Finalize()

	if first != second {
		t.Errorf("second Finalize() = %+v, want %+v unchanged", second, first)
	}
	if second.Correct != 1 {
		t.Errorf("Correct = %d, want 1", second.Correct)
	}
}

func TestAttempt_AnswersLockedAfterFinalize(t *testing.T) {
	a := NewAttempt(quizExercise())
	a.RecordAnswer(1, "a")
	a.Finalize()

	a.RecordAnswer(1, "new")
	a.RecordAnswer(2, "b")

	if got, _ := a.Answer(1); got != "a" {
		t.Errorf("Answer(1) = %q, want %q (locked)", got, "a")
	}
	if _, ok := a.Answer(2); ok {
		t.Error("Answer(2) should not exist after finalize")
	}
}

func TestAttempt_NoAnswerFinalize(t *testing.T) {
	ex := &domain.Exercise{ID: 1, Questions: []domain.Question{
		{ID: 1, Kind: domain.KindQuiz, CorrectOption: "a"},
		{ID: 2, Kind: domain.KindQuiz, CorrectOption: "b"},
	}}
	a := NewAttempt(ex)

	res := a.Finalize()

	if res.Correct != 0 || res.Total != 2 {
		t.Errorf("Finalize() = %+v, want {Correct: 0, Total: 2}", res)
	}
	if res.Passed() {
		t.Error("Passed() = true, want false")
	}
}

func TestAttempt_AnsweredIndexes(t *testing.T) {
	a := NewAttempt(quizExercise())
	a.RecordAnswer(3, "c")
	a.RecordAnswer(1, "a")

	got := a.AnsweredIndexes()
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("AnsweredIndexes() = %v, want [0 2] (display order)", got)
	}
}
