// Package kv provides the durable key→text persistence layer backing the
// entity repositories. A Store holds one opaque text payload per key; the
// repositories above it serialize whole entity collections into single keys
// and rewrite them on every save. There are no transactional guarantees
// across keys.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"shopcore/internal/metrics"
)

// Driver identifies a concrete persistent storage implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"   // in-memory only (tests / ephemeral)
	DriverSQLite   Driver = "sqlite"   // embedded sqlite file
	DriverPostgres Driver = "postgres" // PostgreSQL server
)

// Store is a minimal durable key→text abstraction. Implementations are
// synchronous; the context parameter exists so a call site never changes when
// a backend with real I/O latency is substituted.
type Store interface {
	// Read returns the payload stored under key and whether the key exists.
	Read(ctx context.Context, key string) (string, bool, error)
	// Write stores payload under key, replacing any previous value.
	Write(ctx context.Context, key, payload string) error
	Driver() Driver
}

// Open selects a backend using environment variables. Defaults to sqlite
// when unset.
//
//	SHOPCORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	SHOPCORE_SQLITE_PATH: path to sqlite file (default ./shopcore.db)
//	SHOPCORE_POSTGRES_DSN: postgres DSN when driver=postgres
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("SHOPCORE_STORAGE_DRIVER")
	if driver == "" {
		driver = string(DriverSQLite)
	}
	switch Driver(driver) {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return NewSQLiteStore(os.Getenv("SHOPCORE_SQLITE_PATH"))
	case DriverPostgres:
		return NewPostgresStore(ctx, os.Getenv("SHOPCORE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}

// ReadOrSeed reads key and decodes it as JSON into T. An absent key or an
// unparseable payload is recovered locally by writing seed back to the store
// and returning it; corrupt data is discarded, never surfaced as fatal. Only
// backend I/O failures propagate.
func ReadOrSeed[T any](ctx context.Context, store Store, key string, seed T) (T, error) {
	var zero T
	payload, found, err := store.Read(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("read %s: %w", key, err)
	}
	if found {
		var value T
		if err := json.Unmarshal([]byte(payload), &value); err == nil {
			return value, nil
		}
		metrics.SeedRecoveries.WithLabelValues(key, metrics.CauseCorrupt).Inc()
	} else {
		metrics.SeedRecoveries.WithLabelValues(key, metrics.CauseAbsent).Inc()
	}
	encoded, err := json.Marshal(seed)
	if err != nil {
		return zero, fmt.Errorf("encode seed for %s: %w", key, err)
	}
	if err := store.Write(ctx, key, string(encoded)); err != nil {
		return zero, fmt.Errorf("seed %s: %w", key, err)
	}
	return seed, nil
}
