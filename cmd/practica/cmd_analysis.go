package main

import (
	"context"
	"fmt"
)

// cmdAnalysis waits for the AI analysis of a submission and prints it
func cmdAnalysis(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("submission ID required (printed by 'practica attempt finish')")
	}

	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Println("Waiting for analysis (Ctrl+C to stop)...")
	result, err := a.poller().Wait(ctx, args[0])
	if err != nil {
		return fmt.Errorf("wait for analysis: %w", err)
	}

	fmt.Printf("\nAnalysis for submission %s:\n\n%s\n",
		result.SubmissionID, stripTags(result.ContentHTML))
	return nil
}
