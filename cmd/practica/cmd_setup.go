package main

import (
	"fmt"

	"github.com/practica-app/practica/internal/config"
)

// cmdLogin stores the backend API token in the secrets file
func cmdLogin(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: practica login <token>")
	}

	if err := config.SaveToken(args[0]); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	dir, _ := config.Dir()
	fmt.Printf("Token saved to %s/secrets.yaml\n", dir)
	return nil
}

// cmdConfig shows the effective configuration
func cmdConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	token := "(not set)"
	if cfg.Backend.Token != "" {
		token = "(set)"
	}

	fmt.Println("Configuration:")
	fmt.Printf("  Backend URL:   %s\n", cfg.Backend.URL)
	fmt.Printf("  Token:         %s\n", token)
	fmt.Printf("  Storage:       %s\n", cfg.Storage.Driver)
	if cfg.Storage.Driver == "postgres" {
		fmt.Printf("  Database URL:  %s\n", cfg.Storage.DatabaseURL)
	}
	fmt.Printf("  Poll interval: %ds\n", cfg.Analysis.PollIntervalSeconds)
	return nil
}
