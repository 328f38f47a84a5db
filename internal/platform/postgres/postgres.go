package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/signdeck/internal/store"
)

const (
	selectValue = `SELECT value FROM kv_entries WHERE key = $1`
	upsertValue = `
INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	// Serializes writers of the same key across processes for the
	// lifetime of the surrounding transaction.
	lockKey = `SELECT pg_advisory_xact_lock(hashtext($1))`
)

// Store is a PostgreSQL-backed key-value store.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

var (
	_ store.KVStore = (*Store)(nil)
	_ store.Updater = (*Store)(nil)
)

// Open connects to the database at url, configures the pool and verifies
// the connection.
func Open(ctx context.Context, url string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", MapError(err))
	}

	return New(db, logger), nil
}

// New wraps an existing connection pool. The Store takes ownership of db
// and closes it on Close.
func New(db *sql.DB, logger *slog.Logger) *Store {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "postgres_kv")),
	}
}

// DB exposes the underlying pool, e.g. for running migrations.
func (s *Store) DB() *sql.DB {
	return s.db
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

// Update implements store.Updater. The read-modify-write runs in a
// transaction holding a per-key advisory lock, so it is atomic even across
// processes sharing the database.
func (s *Store) Update(ctx context.Context, key string, fn store.UpdateFn) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, lockKey, key); err != nil {
			return store.NewStoreError("kv", "lock", "advisory lock failed", MapError(err))
		}
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

// Close closes the connection pool.
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
		return "", false, store.NewStoreError("kv", "get", "query failed", MapError(err))
	}
	return value, true, nil
}

func set(ctx context.Context, q store.DBTX, key, value string) error {
	if _, err := q.ExecContext(ctx, upsertValue, key, value); err != nil {
		return store.NewStoreError("kv", "set", "upsert failed", MapError(err))
	}
	return nil
}
