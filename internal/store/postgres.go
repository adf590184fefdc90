// Package store persists accounts, interpretation sessions and
// transcripts in Postgres.
package store

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

//go:embed db_init.sql
var sqlFS embed.FS

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is a pgx-backed record store. Safe for concurrent use; every
// operation is a single statement, so per-row atomicity comes from
// Postgres itself.
type Store struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// Open connects to Postgres and applies the embedded schema.
func Open(ctx context.Context, databaseURL string, log zerolog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	schema, err := sqlFS.ReadFile("db_init.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded db_init.sql: %w", err)
	}

	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to execute embedded db_init.sql: %w", err)
	}

	log.Info().Msg("Database ready")
	return &Store{pool: pool, log: log}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
