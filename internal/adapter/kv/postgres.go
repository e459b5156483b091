package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
)

var _ port.KVStore = (*Postgres)(nil)

const (
	selectSlotQuery = `SELECT slot_value FROM kv_entries WHERE slot_key = $1`
	upsertSlotQuery = `
INSERT INTO kv_entries (slot_key, slot_value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (slot_key) DO UPDATE
SET slot_value = EXCLUDED.slot_value, updated_at = EXCLUDED.updated_at`
)

type sqlDB interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
	Close() error
}

// Postgres expects the kv_entries table created by the migrator.
type Postgres struct {
	db sqlDB
}

func OpenPostgres(ctx context.Context, dsn string) (Postgres, error) {
	const op = "OpenPostgres"

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return Postgres{}, fmt.Errorf("%s: %w", op, err)
	}
	connStr := stdlib.RegisterConnConfig(connConfig)

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return Postgres{}, fmt.Errorf("%s: %w", op, err)
	}

	s := Postgres{db}
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return Postgres{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}
	slog.With("op", op).Info("database is available")
	return s, nil
}

func (s Postgres) Ping(ctx context.Context) error {
	return retry.Do(ctx, pingRetry, func() error {
		return s.db.PingContext(ctx)
	})
}

func (s Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "Postgres.Get"

	var v []byte
	err := s.db.QueryRowContext(ctx, selectSlotQuery, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: key %q: %w", op, key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (s Postgres) Set(ctx context.Context, key string, value []byte) error {
	const op = "Postgres.Set"

	if value == nil {
		value = []byte{}
	}
	if _, err := s.db.ExecContext(ctx, upsertSlotQuery, key, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Postgres) Close() error {
	return s.db.Close()
}
