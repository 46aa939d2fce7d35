package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/practica-app/practica/internal/normalize"
)

// cmdExercise manages exercise listing and display
func cmdExercise(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Exercise commands:

  practica exercise list        List available exercises
  practica exercise show <id>   Show an assembled exercise`)
		return nil
	}

	switch args[0] {
	case "list":
		return cmdExerciseList()
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("exercise ID required")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("exercise ID must be a number: %s", args[1])
		}
		return cmdExerciseShow(id)
	default:
		return fmt.Errorf("unknown exercise command: %s", args[0])
	}
}

func cmdExerciseList() error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	raws, err := a.client.Exercises(ctx)
	if err != nil {
		return fmt.Errorf("list exercises: %w", err)
	}

	fmt.Println("Exercises:")
	for _, raw := range raws {
		ex, ok := normalize.Exercise(raw)
		if !ok {
			continue
		}
		status, err := a.service.ExerciseStatus(ctx, ex.ID)
		if err != nil {
			return fmt.Errorf("status for exercise %d: %w", ex.ID, err)
		}
		fmt.Printf("  %4d  %-40s %-10s %s\n", ex.ID, ex.Title, ex.Kind, status)
	}

	fmt.Println("\nUse 'practica attempt start <id>' to begin")
	return nil
}

func cmdExerciseShow(id int) error {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	ex, err := a.assembler.AssembleByID(ctx, id)
	if err != nil {
		return fmt.Errorf("assemble exercise %d: %w", id, err)
	}

	fmt.Printf("%s (#%d)\n", ex.Title, ex.ID)
	fmt.Printf("  Kind:     %s\n", ex.Kind)
	fmt.Printf("  Language: %s\n", ex.LanguageName)
	fmt.Printf("  Questions: %d\n\n", len(ex.Questions))

	for i, q := range ex.Questions {
		fmt.Printf("%d. [%s] %s\n", i+1, q.Kind, stripTags(q.StatementHTML))
		for _, opt := range q.Options {
			fmt.Printf("     %s) %s\n", opt.ID, opt.Text)
		}
	}
	return nil
}

// stripTags flattens statement HTML to a single terminal-friendly line.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
