package assemble

import (
	"context"
	"errors"
	"testing"

	"github.com/practica-app/practica/internal/domain"
	"github.com/practica-app/practica/internal/normalize"
)

// fakeBackend counts calls so tests can assert the chain short-circuits.
type fakeBackend struct {
	exercise    normalize.Raw
	exerciseErr error

	scoped    []normalize.Raw
	scopedErr error

	global    []normalize.Raw
	globalErr error

	language    string
	languageErr error

	exerciseCalls int
	scopedCalls   int
	globalCalls   int
	languageCalls int
}

func (f *fakeBackend) Exercise(ctx context.Context, id int) (normalize.Raw, error) {
	f.exerciseCalls++
	return f.exercise, f.exerciseErr
}

func (f *fakeBackend) ExerciseQuestions(ctx context.Context, id int) ([]normalize.Raw, error) {
	f.scopedCalls++
	return f.scoped, f.scopedErr
}

func (f *fakeBackend) AllQuestions(ctx context.Context) ([]normalize.Raw, error) {
	f.globalCalls++
	return f.global, f.globalErr
}

func (f *fakeBackend) LanguageName(ctx context.Context, id int) (string, error) {
	f.languageCalls++
	return f.language, f.languageErr
}

func TestAssemble_EmbeddedShortCircuits(t *testing.T) {
	backend := &fakeBackend{}
	a := New(backend)

	raw := normalize.Raw{
		"id":    9.0,
		"title": "Loops",
		"questions": []any{
			map[string]any{"id": 1.0, "statement": "q1"},
			map[string]any{"id": 2.0, "statement": "q2"},
		},
	}

	ex, err := a.Assemble(context.Background(), raw)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(ex.Questions) != 2 {
		t.Fatalf("len(Questions) = %d, want 2", len(ex.Questions))
	}

	// embedded questions present: fallback sources must stay untouched
	if backend.scopedCalls != 0 {
		t.Errorf("ExerciseQuestions called %d times, want 0", backend.scopedCalls)
	}
	if backend.globalCalls != 0 {
		t.Errorf("AllQuestions called %d times, want 0", backend.globalCalls)
	}
}

func TestAssemble_ScopedFallback(t *testing.T) {
	backend := &fakeBackend{
		scoped: []normalize.Raw{{"id": 5.0, "statement": "from scoped"}},
	}
	a := New(backend)

	ex, err := a.Assemble(context.Background(), normalize.Raw{"id": 9.0})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(ex.Questions) != 1 || ex.Questions[0].ID != 5 {
		t.Fatalf("Questions = %+v, want the scoped record", ex.Questions)
	}
	if backend.scopedCalls != 1 {
		t.Errorf("ExerciseQuestions called %d times, want 1", backend.scopedCalls)
	}
	if backend.globalCalls != 0 {
		t.Errorf("AllQuestions called %d times, want 0", backend.globalCalls)
	}
}

func TestAssemble_GlobalFallbackFiltersAndKeepsOrder(t *testing.T) {
	backend := &fakeBackend{
		scoped: nil, // scoped endpoint has nothing
		global: []normalize.Raw{
			{"id": 1.0, "contentId": 9.0, "statement": "mine via contentId"},
			{"id": 2.0, "exerciseId": 4.0, "statement": "someone else's"},
			{"id": 3.0, "exerciseId": 9.0, "statement": "mine via exerciseId"},
			{"id": 4.0, "statement": "untagged"},
		},
	}
	a := New(backend)

	ex, err := a.Assemble(context.Background(), normalize.Raw{"id": 9.0})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if len(ex.Questions) != 2 {
		t.Fatalf("len(Questions) = %d, want 2", len(ex.Questions))
	}
	if ex.Questions[0].ID != 1 || ex.Questions[1].ID != 3 {
		t.Errorf("question ids = %d, %d; want 1, 3 (source order)", ex.Questions[0].ID, ex.Questions[1].ID)
	}
}

func TestAssemble_FailingSourcesTreatedAsEmpty(t *testing.T) {
	backend := &fakeBackend{
		scopedErr: errors.New("boom"),
		globalErr: errors.New("also boom"),
	}
	a := New(backend)

	ex, err := a.Assemble(context.Background(), normalize.Raw{"id": 9.0, "title": "Orphan"})
	if err != nil {
		t.Fatalf("Assemble() error = %v, want nil (failures absorbed)", err)
	}
	if len(ex.Questions) != 0 {
		t.Errorf("len(Questions) = %d, want 0", len(ex.Questions))
	}
	if ex.Title != "Orphan" {
		t.Errorf("Title = %q, metadata should survive source failures", ex.Title)
	}
}

func TestAssemble_InvalidExerciseRecord(t *testing.T) {
	a := New(&fakeBackend{})

	_, err := a.Assemble(context.Background(), normalize.Raw{"title": "no id"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Assemble() error = %v, want ErrInvalidInput", err)
	}
}

func TestAssembleByID(t *testing.T) {
	backend := &fakeBackend{
		exercise: normalize.Raw{
			"id":        3.0,
			"title":     "Variables",
			"questions": []any{map[string]any{"id": 1.0}},
		},
	}
	a := New(backend)

	ex, err := a.AssembleByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("AssembleByID() error = %v", err)
	}
	if ex.ID != 3 || len(ex.Questions) != 1 {
		t.Errorf("got %+v", ex)
	}
}

func TestAssembleByID_FetchError(t *testing.T) {
	backend := &fakeBackend{exerciseErr: errors.New("backend down")}
	a := New(backend)

	if _, err := a.AssembleByID(context.Background(), 3); err == nil {
		t.Error("AssembleByID() should surface exercise fetch errors")
	}
}

func TestAssemble_LanguageResolution(t *testing.T) {
	t.Run("resolved", func(t *testing.T) {
		backend := &fakeBackend{language: "Python"}
		a := New(backend)

		ex, err := a.Assemble(context.Background(), normalize.Raw{"id": 1.0, "languageId": 4.0})
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		if ex.LanguageName != "Python" {
			t.Errorf("LanguageName = %q, want %q", ex.LanguageName, "Python")
		}
		if backend.languageCalls != 1 {
			t.Errorf("LanguageName called %d times, want 1", backend.languageCalls)
		}
	})

	t.Run("lookup failure uses fallback name", func(t *testing.T) {
		backend := &fakeBackend{languageErr: errors.New("down")}
		a := New(backend)

		ex, err := a.Assemble(context.Background(), normalize.Raw{"id": 1.0, "languageId": 4.0})
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		if ex.LanguageName != FallbackLanguageName {
			t.Errorf("LanguageName = %q, want fallback %q", ex.LanguageName, FallbackLanguageName)
		}
	})

	t.Run("already named, no lookup", func(t *testing.T) {
		backend := &fakeBackend{}
		a := New(backend)

		ex, err := a.Assemble(context.Background(), normalize.Raw{
			"id": 1.0, "languageId": 4.0, "languageName": "Lua",
		})
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		if ex.LanguageName != "Lua" {
			t.Errorf("LanguageName = %q, want %q", ex.LanguageName, "Lua")
		}
		if backend.languageCalls != 0 {
			t.Errorf("LanguageName called %d times, want 0", backend.languageCalls)
		}
	})

	t.Run("no language id, nothing resolved", func(t *testing.T) {
		backend := &fakeBackend{}
		a := New(backend)

		ex, err := a.Assemble(context.Background(), normalize.Raw{"id": 1.0})
		if err != nil {
			t.Fatalf("Assemble() error = %v", err)
		}
		if ex.LanguageName != "" {
			t.Errorf("LanguageName = %q, want empty", ex.LanguageName)
		}
		if backend.languageCalls != 0 {
			t.Errorf("LanguageName called %d times, want 0", backend.languageCalls)
		}
	})
}
