package main

import (
	"fmt"
	"os"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "login":
		err = cmdLogin(os.Args[2:])
	case "config":
		err = cmdConfig()
	case "exercise":
		err = cmdExercise(os.Args[2:])
	case "attempt":
		err = cmdAttempt(os.Args[2:])
	case "analysis":
		err = cmdAnalysis(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("practica %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Practica - Exercise sessions from your terminal

Usage:
  practica <command> [arguments]

Setup Commands:
  login           Store the backend API token
  config          Show current configuration

Exercise Commands:
  exercise list   List available exercises
  exercise show   Show an assembled exercise

Attempt Commands:
  attempt start   Start an attempt at an exercise
  attempt answer  Record an answer for a question
  attempt goto    Jump to a question by index
  attempt next    Move to the next question
  attempt prev    Move to the previous question
  attempt finish  Finalize an attempt and submit the result
  attempt show    Show an attempt's progress
  attempt list    List stored attempts

Analysis Commands:
  analysis        Wait for AI analysis of a submission

Other:
  help            Show this help message
  version         Show version information

Examples:
  practica login <token>          # Store API token
  practica exercise list          # List exercises
  practica attempt start 42       # Start working on exercise 42
  practica attempt answer <id> 1 o2
  practica attempt finish <id>    # Score and submit`)
}
