package domain

import "testing"

func TestKind_AutoScorable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindQuiz, true},
		{KindMultipleChoice, true},
		{KindProgramming, false},
		{KindCode, false},
		{KindFreeText, false},
	}

	for _, tt := range tests {
		if got := tt.kind.AutoScorable(); got != tt.want {
			t.Errorf("Kind(%q).AutoScorable() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestQuestion_OptionByID(t *testing.T) {
	q := Question{
		ID:   1,
		Kind: KindQuiz,
		Options: []Option{
			{ID: "o1", Text: "first"},
			{ID: "o2", Text: "second"},
		},
	}

	opt, ok := q.OptionByID("o2")
	if !ok {
		t.Fatal("OptionByID(o2) not found")
	}
	if opt.Text != "second" {
		t.Errorf("opt.Text = %q, want %q", opt.Text, "second")
	}

	if _, ok := q.OptionByID("o9"); ok {
		t.Error("OptionByID(o9) should not be found")
	}
}

func TestQuestion_IsCorrect(t *testing.T) {
	tests := []struct {
		name   string
		q      Question
		answer string
		want   bool
	}{
		{
			name:   "matching answer",
			q:      Question{Kind: KindQuiz, CorrectOption: "o1"},
			answer: "o1",
			want:   true,
		},
		{
			name:   "wrong answer",
			q:      Question{Kind: KindQuiz, CorrectOption: "o1"},
			answer: "o2",
			want:   false,
		},
		{
			name:   "no answer key",
			q:      Question{Kind: KindMultipleChoice},
			answer: "o1",
			want:   false,
		},
		{
			name:   "programming question never correct locally",
			q:      Question{Kind: KindProgramming, CorrectOption: "o1"},
			answer: "o1",
			want:   false,
		},
		{
			name:   "empty answer against empty key",
			q:      Question{Kind: KindQuiz},
			answer: "",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.IsCorrect(tt.answer); got != tt.want {
				t.Errorf("IsCorrect(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestExercise_QuestionByID(t *testing.T) {
	e := Exercise{
		ID:    10,
		Title: "Loops",
		Questions: []Question{
			{ID: 1, Kind: KindQuiz},
			{ID: 2, Kind: KindProgramming},
		},
	}

	q, ok := e.QuestionByID(2)
	if !ok {
		t.Fatal("QuestionByID(2) not found")
	}
	if q.Kind != KindProgramming {
		t.Errorf("q.Kind = %q, want %q", q.Kind, KindProgramming)
	}

	if _, ok := e.QuestionByID(99); ok {
		t.Error("QuestionByID(99) should not be found")
	}
}

func TestExercise_StarterCode(t *testing.T) {
	e := Exercise{SampleCode: "print('exercise default')"}

	own := Question{Kind: KindProgramming, SampleAnswer: "print('own')"}
	if got := e.StarterCode(&own); got != "print('own')" {
		t.Errorf("StarterCode() = %q, want question's own sample", got)
	}

	bare := Question{Kind: KindProgramming}
	if got := e.StarterCode(&bare); got != "print('exercise default')" {
		t.Errorf("StarterCode() = %q, want exercise sample", got)
	}
}
