package main

import (
	"context"
	"fmt"
	"time"

	"github.com/practica-app/practica/internal/analysis"
	"github.com/practica-app/practica/internal/api"
	"github.com/practica-app/practica/internal/assemble"
	"github.com/practica-app/practica/internal/config"
	"github.com/practica-app/practica/internal/session"
	"github.com/practica-app/practica/internal/storage/postgres"
	"github.com/practica-app/practica/internal/storage/sqlite"
)

// app wires the engine together for one CLI invocation: config, API client,
// attempt store, assembler, session service.
type app struct {
	cfg       *config.Config
	client    *api.Client
	assembler *assemble.Assembler
	service   *session.Service

	close func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.Backend.URL,
		Token:   cfg.Backend.Token,
	})

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	assembler := assemble.New(client)
	service := session.NewService(store, assembler)
	service.SetSubmitter(client)

	return &app{
		cfg:       cfg,
		client:    client,
		assembler: assembler,
		service:   service,
		close:     closeStore,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		if cfg.Storage.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("storage driver is postgres but no database URL is configured")
		}
		pool, err := postgres.Connect(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewAttemptStore(pool), pool.Close, nil
	default:
		path, err := config.DatabasePath()
		if err != nil {
			return nil, nil, err
		}
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate attempts database: %w", err)
		}
		return sqlite.NewAttemptStore(db), func() { db.Close() }, nil
	}
}

func (a *app) poller() *analysis.Poller {
	interval := time.Duration(a.cfg.Analysis.PollIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = analysis.DefaultInterval
	}
	return analysis.NewPoller(a.client, interval)
}
