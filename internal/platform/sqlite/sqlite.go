// Package sqlite implements store.KVStore on a local SQLite database using
// the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/signdeck/internal/store"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

const (
	selectValue = `SELECT value FROM kv_entries WHERE key = ?`
	upsertValue = `
INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// Store is a SQLite-backed key-value store.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

var (
	_ store.KVStore = (*Store)(nil)
	_ store.Updater = (*Store)(nil)
)

// Open opens or creates the database at path and ensures its schema.
// The special path ":memory:" opens a private in-memory database.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps an
	// in-memory database alive and shared.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "sqlite_kv")),
	}, nil
}

// Get implements store.KVStore.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := store.ValidateKey(key); err != nil {
		return "", false, err
	}
	return get(ctx, s.db, key)
}

// Set implements store.KVStore.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	return set(ctx, s.db, key, value)
}

// Update implements store.Updater inside a transaction.
func (s *Store) Update(ctx context.Context, key string, fn store.UpdateFn) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		current, found, err := get(ctx, tx, key)
		if err != nil {
			return err
		}
		next, write, err := fn(current, found)
		if err != nil || !write {
			return err
		}
		return set(ctx, tx, key, next)
	})
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func get(ctx context.Context, q store.DBTX, key string) (string, bool, error) {
	var value string
	err := q.QueryRowContext(ctx, selectValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, store.NewStoreError("kv", "get", "query failed", mapError(err))
	}
	return value, true, nil
}

func set(ctx context.Context, q store.DBTX, key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := q.ExecContext(ctx, upsertValue, key, value, now); err != nil {
		return store.NewStoreError("kv", "set", "upsert failed", mapError(err))
	}
	return nil
}

// mapError marks errors from a closed database as store.ErrUnavailable.
func mapError(err error) error {
	if errors.Is(err, sql.ErrConnDone) || err.Error() == "sql: database is closed" {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return err
}
