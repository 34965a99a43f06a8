// Package store persists extracted text units in PostgreSQL.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// DB is the part of *pgxpool.Pool the stores use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Connect opens a pool and checks the connection.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS translation_cache (
		hash       TEXT PRIMARY KEY,
		source     TEXT NOT NULL,
		translated TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS text_units (
		file         TEXT NOT NULL,
		unit_id      TEXT NOT NULL,
		name         TEXT NOT NULL DEFAULT '',
		source       TEXT NOT NULL,
		hash         TEXT NOT NULL,
		notes        TEXT[] NOT NULL DEFAULT '{}',
		metadata     JSONB NOT NULL DEFAULT '{}',
		sub_document TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (file, unit_id)
	)`,
	`CREATE INDEX IF NOT EXISTS text_units_name_idx ON text_units (name)`,
	`CREATE TABLE IF NOT EXISTS seed_translations (
		hash            TEXT PRIMARY KEY,
		source_text     TEXT NOT NULL,
		translated_text TEXT NOT NULL,
		file            TEXT NOT NULL,
		key_path        TEXT NOT NULL DEFAULT '',
		entity_type     TEXT NOT NULL DEFAULT ''
	)`,
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	log.Info().Int("statements", len(schema)).Msg("Database schema ensured")
	return nil
}
