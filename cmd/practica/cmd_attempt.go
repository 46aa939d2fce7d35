package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/practica-app/practica/internal/session"
)

// cmdAttempt manages exercise attempts
func cmdAttempt(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Attempt commands:

  practica attempt start <exerciseID>              Start a new attempt
  practica attempt answer <id> <questionID> <val>  Record an answer
  practica attempt goto <id> <index>               Jump to a question
  practica attempt next <id>                       Next question
  practica attempt prev <id>                       Previous question
  practica attempt finish <id>                     Finalize and submit
  practica attempt show <id>                       Show progress
  practica attempt list                            List stored attempts
  practica attempt delete <id>                     Discard an attempt`)
		return nil
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	switch args[0] {
	case "start":
		if len(args) < 2 {
			return fmt.Errorf("exercise ID required")
		}
		exerciseID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("exercise ID must be a number: %s", args[1])
		}
		return cmdAttemptStart(ctx, a, exerciseID)
	case "answer":
		if len(args) < 4 {
			return fmt.Errorf("usage: practica attempt answer <attemptID> <questionID> <value>")
		}
		questionID, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("question ID must be a number: %s", args[2])
		}
		return cmdAttemptAnswer(ctx, a, args[1], questionID, args[3])
	case "goto":
		if len(args) < 3 {
			return fmt.Errorf("usage: practica attempt goto <attemptID> <index>")
		}
		index, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("index must be a number: %s", args[2])
		}
		attempt, err := a.service.GoTo(ctx, args[1], index)
		if err != nil {
			return err
		}
		printCurrent(attempt)
		return nil
	case "next":
		if len(args) < 2 {
			return fmt.Errorf("attempt ID required")
		}
		attempt, err := a.service.Next(ctx, args[1])
		if err != nil {
			return err
		}
		printCurrent(attempt)
		return nil
	case "prev":
		if len(args) < 2 {
			return fmt.Errorf("attempt ID required")
		}
		attempt, err := a.service.Previous(ctx, args[1])
		if err != nil {
			return err
		}
		printCurrent(attempt)
		return nil
	case "finish":
		if len(args) < 2 {
			return fmt.Errorf("attempt ID required")
		}
		return cmdAttemptFinish(ctx, a, args[1])
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("attempt ID required")
		}
		return cmdAttemptShow(ctx, a, args[1])
	case "list":
		return cmdAttemptList(ctx, a)
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("attempt ID required")
		}
		if err := a.service.Delete(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Attempt deleted.")
		return nil
	default:
		return fmt.Errorf("unknown attempt command: %s", args[0])
	}
}

func cmdAttemptStart(ctx context.Context, a *app, exerciseID int) error {
	attempt, err := a.service.Start(ctx, exerciseID)
	if err != nil {
		return fmt.Errorf("start attempt: %w", err)
	}

	fmt.Printf("Started attempt %s\n", attempt.ID)
	fmt.Printf("Exercise: %s (%d questions)\n\n", attempt.Exercise.Title, len(attempt.Exercise.Questions))
	printCurrent(attempt)
	return nil
}

func cmdAttemptAnswer(ctx context.Context, a *app, id string, questionID int, value string) error {
	attempt, err := a.service.Answer(ctx, id, questionID, value)
	if err != nil {
		return err
	}

	if attempt.Finalized() {
		fmt.Println("Attempt is finalized; the answer was not recorded.")
		return nil
	}
	if _, ok := attempt.Exercise.QuestionByID(questionID); !ok {
		fmt.Printf("Exercise has no question %d; nothing recorded.\n", questionID)
		return nil
	}

	fmt.Printf("Recorded. %d/%d answered.\n", attempt.AnsweredCount(), len(attempt.Exercise.Questions))
	return nil
}

func cmdAttemptFinish(ctx context.Context, a *app, id string) error {
	out, err := a.service.Finalize(ctx, id)
	if err != nil {
		return err
	}

	verdict := "FAIL"
	if out.Result.Passed() {
		verdict = "PASS"
	}
	fmt.Printf("Score: %d/%d (%.0f%%) %s\n",
		out.Result.Correct, out.Result.Total, out.Result.Percentage(), verdict)

	switch {
	case out.SubmissionID != "":
		fmt.Printf("Submitted. Check the AI analysis with:\n  practica analysis %s\n", out.SubmissionID)
	case out.SubmitErr != nil:
		fmt.Printf("Result saved locally; submission failed: %v\n", out.SubmitErr)
	}
	return nil
}

func cmdAttemptShow(ctx context.Context, a *app, id string) error {
	attempt, err := a.service.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Attempt %s\n", attempt.ID)
	fmt.Printf("  Exercise: %s (#%d)\n", attempt.Exercise.Title, attempt.Exercise.ID)
	fmt.Printf("  Status:   %s\n", attempt.Status)
	fmt.Printf("  Answered: %d/%d\n", attempt.AnsweredCount(), len(attempt.Exercise.Questions))
	if attempt.Result != nil {
		fmt.Printf("  Score:    %d/%d (%.0f%%)\n",
			attempt.Result.Correct, attempt.Result.Total, attempt.Result.Percentage())
	}
	fmt.Println()
	printCurrent(attempt)
	return nil
}

func cmdAttemptList(ctx context.Context, a *app) error {
	attempts, err := a.service.List(ctx)
	if err != nil {
		return err
	}
	if len(attempts) == 0 {
		fmt.Println("No attempts yet. Start one with 'practica attempt start <exerciseID>'.")
		return nil
	}

	for _, attempt := range attempts {
		fmt.Printf("  %s  %-40s %-10s %s\n",
			attempt.ID, attempt.Exercise.Title, attempt.Status,
			attempt.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printCurrent(attempt *session.Attempt) {
	q := attempt.Current()
	if q == nil {
		fmt.Println("This exercise has no questions.")
		return
	}

	fmt.Printf("Question %d of %d [%s]\n",
		attempt.CurrentIndex+1, len(attempt.Exercise.Questions), q.Kind)
	fmt.Printf("  %s\n", stripTags(q.StatementHTML))
	for _, opt := range q.Options {
		marker := " "
		if v, ok := attempt.Answer(q.ID); ok && v == opt.ID {
			marker = "*"
		}
		fmt.Printf("  %s %s) %s\n", marker, opt.ID, opt.Text)
	}
	if code := attempt.Exercise.StarterCode(q); code != "" && len(q.Options) == 0 {
		fmt.Printf("\nStarter code:\n%s\n", code)
	}
}
