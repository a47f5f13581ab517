// Package pgslot stores cart slots in a PostgreSQL table.
package pgslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/peakhub/storefront/storage"
)

const (
	createTable = `CREATE TABLE IF NOT EXISTS kv_slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	selectValue = `SELECT value FROM kv_slots WHERE key = $1`
	upsertValue = `INSERT INTO kv_slots (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

// Open creates a new PostgreSQL connection pool.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Store keeps one row per key in kv_slots.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the kv_slots table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create kv_slots: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, selectValue, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select slot %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, upsertValue, key, string(value)); err != nil {
		return fmt.Errorf("upsert slot %q: %w", key, err)
	}
	return nil
}
