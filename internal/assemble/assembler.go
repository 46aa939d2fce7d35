// Package assemble builds a fully-populated exercise from the backend's
// inconsistent question-delivery shapes. Some exercise records denormalize
// questions inline, others need the per-exercise endpoint, and a few are
// reachable only through the global question list. The assembler hides that
// behind one ordered fallback chain.
package assemble

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/practica-app/practica/internal/domain"
	"github.com/practica-app/practica/internal/normalize"
)

// FallbackLanguageName is shown when a language id cannot be resolved.
const FallbackLanguageName = "unknown"

// Backend is the slice of the API client the assembler needs.
type Backend interface {
	Exercise(ctx context.Context, id int) (normalize.Raw, error)
	ExerciseQuestions(ctx context.Context, id int) ([]normalize.Raw, error)
	AllQuestions(ctx context.Context) ([]normalize.Raw, error)
	LanguageName(ctx context.Context, id int) (string, error)
}

// Assembler produces Exercise aggregates with a best-effort question list.
type Assembler struct {
	backend Backend
}

// New creates an assembler over the given backend.
func New(backend Backend) *Assembler {
	return &Assembler{backend: backend}
}

// AssembleByID fetches the raw exercise record and assembles it. Unlike the
// question fallback chain, failure to fetch the exercise itself is a real
// error: without the record there is nothing to render.
func (a *Assembler) AssembleByID(ctx context.Context, id int) (*domain.Exercise, error) {
	raw, err := a.backend.Exercise(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch exercise %d: %w", id, err)
	}
	return a.Assemble(ctx, raw)
}

// Assemble normalizes the exercise metadata and populates its question list
// through the fallback chain. Each source is consulted only if the previous
// one yielded nothing; a failing source counts as empty, so the call never
// surfaces a fetch error. At worst the question list stays empty.
func (a *Assembler) Assemble(ctx context.Context, raw normalize.Raw) (*domain.Exercise, error) {
	ex, ok := normalize.Exercise(raw)
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	for _, source := range a.sources(raw, ex.ID) {
		questions := source.load(ctx)
		if len(questions) > 0 {
			ex.Questions = questions
			break
		}
	}

	a.resolveLanguage(ctx, &ex)

	return &ex, nil
}

// questionSource is one step of the fallback chain. load is total: a failure
// inside the source is logged and reported as an empty result.
type questionSource struct {
	name  string
	fetch func(ctx context.Context) ([]normalize.Raw, error)
}

func (s questionSource) load(ctx context.Context) []domain.Question {
	raws, err := s.fetch(ctx)
	if err != nil {
		slog.Debug("question source failed, falling through", "source", s.name, "error", err)
		return nil
	}
	return normalize.Questions(raws)
}

func (a *Assembler) sources(raw normalize.Raw, exerciseID int) []questionSource {
	return []questionSource{
		{
			name: "embedded",
			fetch: func(context.Context) ([]normalize.Raw, error) {
				return normalize.EmbeddedQuestions(raw), nil
			},
		},
		{
			name: "scoped",
			fetch: func(ctx context.Context) ([]normalize.Raw, error) {
				return a.backend.ExerciseQuestions(ctx, exerciseID)
			},
		},
		{
			name: "global",
			fetch: func(ctx context.Context) ([]normalize.Raw, error) {
				all, err := a.backend.AllQuestions(ctx)
				if err != nil {
					return nil, err
				}
				var mine []normalize.Raw
				for _, r := range all {
					if normalize.BelongsTo(r, exerciseID) {
						mine = append(mine, r)
					}
				}
				return mine, nil
			},
		},
	}
}

// resolveLanguage fills in the display name for a language id the record did
// not carry. Lookup failure substitutes a fixed fallback name rather than
// leaving the field unset.
func (a *Assembler) resolveLanguage(ctx context.Context, ex *domain.Exercise) {
	if ex.LanguageID == 0 || ex.LanguageName != "" {
		return
	}
	name, err := a.backend.LanguageName(ctx, ex.LanguageID)
	if err != nil || name == "" {
		slog.Debug("language lookup failed", "language_id", ex.LanguageID, "error", err)
		ex.LanguageName = FallbackLanguageName
		return
	}
	ex.LanguageName = name
}
