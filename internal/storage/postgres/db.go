// Package postgres is the pgx-backed attempt store, for installs that point
// PRACTICA_DATABASE_URL at a shared database instead of the local sqlite file.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
	id            TEXT PRIMARY KEY,
	exercise_id   BIGINT NOT NULL,
	exercise      JSONB NOT NULL,
	current_index INTEGER NOT NULL DEFAULT 0,
	answers       JSONB NOT NULL DEFAULT '{}',
	status        TEXT NOT NULL,
	correct       INTEGER,
	total         INTEGER,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL,
	finalized_at  TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_attempts_exercise_updated
	ON attempts (exercise_id, updated_at DESC);
`

// Connect opens a connection pool and ensures the attempts schema exists.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying attempts schema: %w", err)
	}
	return pool, nil
}
