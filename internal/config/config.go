// Package config loads CLI configuration from ~/.practica/config.yaml with
// environment-variable overrides, and the bearer token from a separate
// secrets file kept out of the main config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the CLI.
type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Storage  StorageConfig  `yaml:"storage"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// BackendConfig holds REST backend settings.
type BackendConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"-"` // loaded from secrets.yaml or env, never from config.yaml
}

// StorageConfig holds attempt-store settings.
type StorageConfig struct {
	// Driver selects the attempt store: "sqlite" (local, default) or
	// "postgres" (shared deployments).
	Driver      string `yaml:"driver"`
	DatabaseURL string `yaml:"database_url,omitempty"` // postgres only
}

// AnalysisConfig holds AI-analysis polling settings.
type AnalysisConfig struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
}

// secretsFile holds values kept out of config.yaml.
type secretsFile struct {
	Backend struct {
		Token string `yaml:"token"`
	} `yaml:"backend"`
}

// Default returns sensible defaults for a fresh installation.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			URL: "http://localhost:3000/api",
		},
		Storage: StorageConfig{
			Driver: "sqlite",
		},
		Analysis: AnalysisConfig{
			PollIntervalSeconds: 2,
		},
	}
}

// Dir returns the path to ~/.practica.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".practica"), nil
}

// EnsureDir creates ~/.practica if it does not exist.
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create dir %s: %w", dir, err)
	}
	return dir, nil
}

// Load reads configuration from ~/.practica/config.yaml, applies the secrets
// file, then environment overrides. A missing config file yields defaults.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return loadFrom(dir)
}

func loadFrom(dir string) (*Config, error) {
	cfg := Default()

	configPath := filepath.Join(dir, "config.yaml")
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := loadSecrets(dir, cfg); err != nil {
		return nil, fmt.Errorf("load secrets: %w", err)
	}

	applyEnv(cfg)

	return cfg, nil
}

func loadSecrets(dir string, cfg *Config) error {
	secretsPath := filepath.Join(dir, "secrets.yaml")

	data, err := os.ReadFile(secretsPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read secrets: %w", err)
	}

	var secrets secretsFile
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return fmt.Errorf("parse secrets: %w", err)
	}

	cfg.Backend.Token = secrets.Backend.Token
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Backend.URL = getEnv("PRACTICA_BACKEND_URL", cfg.Backend.URL)
	cfg.Backend.Token = getEnv("PRACTICA_TOKEN", cfg.Backend.Token)
	cfg.Storage.Driver = getEnv("PRACTICA_STORE", cfg.Storage.Driver)
	cfg.Storage.DatabaseURL = getEnv("PRACTICA_DATABASE_URL", cfg.Storage.DatabaseURL)
	cfg.Analysis.PollIntervalSeconds = getEnvInt("PRACTICA_POLL_INTERVAL", cfg.Analysis.PollIntervalSeconds)
}

// SaveToken writes the bearer token to ~/.practica/secrets.yaml with
// owner-only permissions.
func SaveToken(token string) error {
	dir, err := EnsureDir()
	if err != nil {
		return err
	}

	var secrets secretsFile
	secrets.Backend.Token = token

	data, err := yaml.Marshal(secrets)
	if err != nil {
		return fmt.Errorf("marshal secrets: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "secrets.yaml"), data, 0600); err != nil {
		return fmt.Errorf("write secrets: %w", err)
	}
	return nil
}

// Save writes the configuration to ~/.practica/config.yaml.
func Save(cfg *Config) error {
	dir, err := EnsureDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DatabasePath returns the SQLite database location under the config dir.
func DatabasePath() (string, error) {
	dir, err := EnsureDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "attempts.db"), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
