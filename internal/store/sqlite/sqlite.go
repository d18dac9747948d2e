// Package sqlite provides the local persistent store backend, one row per
// partition key with the full document body as JSON.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Caden-Dane/cadenbudget/internal/core"
	"github.com/Caden-Dane/cadenbudget/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

var _ store.Backend = (*Store)(nil)

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", core.ErrStoreUnavailable)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select document: %v: %w", err, core.ErrStoreUnavailable)
	}
	return body, true, nil
}

func (s *Store) Set(ctx context.Context, key string, data []byte) error {
	// Upsert replaces the row whole; SQLite's statement atomicity means a
	// reader never observes a half-written body.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (key, body, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(key) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at`,
		key, data)
	if err != nil {
		return fmt.Errorf("upsert document: %v: %w", err, core.ErrStoreUnavailable)
	}

	slog.DebugContext(ctx, "Document saved to SQLite", "key", key, "bytes", len(data))
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete document: %v: %w", err, core.ErrStoreUnavailable)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
