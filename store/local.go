package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const localSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// LocalBackend persists collections in a single-file SQLite database on the host.
type LocalBackend struct {
	db   *sql.DB
	path string
}

func NewLocalBackend(path string) (*LocalBackend, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal_mode: %w", err)
	}
	if _, err := db.Exec(localSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &LocalBackend{db: db, path: path}, nil
}

func (l *LocalBackend) Name() string { return "local" }

func (l *LocalBackend) Load(ctx context.Context, coll Collection, out any) (bool, error) {
	var raw string
	err := l.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, storageKey(coll)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", coll, err)
	}
	if err := decodeRecords([]byte(raw), out); err != nil {
		return true, fmt.Errorf("failed to parse %s: %w", coll, err)
	}
	return true, nil
}

func (l *LocalBackend) Save(ctx context.Context, coll Collection, records []any) error {
	raw, err := encodeRecords(records)
	if err != nil {
		return err
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		storageKey(coll), string(raw))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", coll, err)
	}
	return nil
}

func (l *LocalBackend) Clear(ctx context.Context, coll Collection) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, storageKey(coll))
	return err
}

func (l *LocalBackend) Close(context.Context) error {
	return l.db.Close()
}
