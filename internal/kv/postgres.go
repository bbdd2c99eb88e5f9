package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"shopcore/internal/metrics"
)

const defaultPostgresDSN = "postgres://localhost/shopcore?sslmode=disable"

// PostgresStore persists payloads in a key/payload table on a PostgreSQL
// server, mirroring the sqlite layout for deployments that outgrow a local
// file.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection using dsn (falls back to a localhost
// DSN) and ensures the state table exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("ensure state table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Driver() Driver { return DriverPostgres }

// Read returns the payload stored under key.
func (s *PostgresStore) Read(ctx context.Context, key string) (string, bool, error) {
	metrics.StoreReads.WithLabelValues(string(DriverPostgres)).Inc()
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = $1`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}
	return payload, true, nil
}

// Write upserts payload under key.
func (s *PostgresStore) Write(ctx context.Context, key, payload string) error {
	metrics.StoreWrites.WithLabelValues(string(DriverPostgres)).Inc()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES($1,$2) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		key, payload); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *PostgresStore) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *PostgresStore) DB() *sql.DB { return s.db }
