package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS venturelink_kv (
    key TEXT PRIMARY KEY,
    value JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// PostgresBackend keeps the same named JSON entries as LocalBackend in a shared database.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

func NewPostgresBackend(ctx context.Context, connectionString string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &PostgresBackend{pool: pool}, nil
}

func (p *PostgresBackend) Name() string { return "postgres" }

func (p *PostgresBackend) Load(ctx context.Context, coll Collection, out any) (bool, error) {
	var raw string
	err := p.pool.QueryRow(ctx, `SELECT value::text FROM venturelink_kv WHERE key = $1`, storageKey(coll)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
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

func (p *PostgresBackend) Save(ctx context.Context, coll Collection, records []any) error {
	raw, err := encodeRecords(records)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO venturelink_kv (key, value, updated_at) VALUES ($1, $2::jsonb, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		storageKey(coll), string(raw))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", coll, err)
	}
	return nil
}

func (p *PostgresBackend) Clear(ctx context.Context, coll Collection) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM venturelink_kv WHERE key = $1`, storageKey(coll))
	return err
}

func (p *PostgresBackend) Close(context.Context) error {
	p.pool.Close()
	return nil
}
