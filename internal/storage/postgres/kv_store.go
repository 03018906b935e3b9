package postgres

import (
	"context"
	"errors"
	"fmt"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PgxPoolIface interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

type PostgresStorage struct {
	pool PgxPoolIface
}

func NewPostgresStorage(pool PgxPoolIface) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Get(ctx context.Context, key string) (string, error) {
	const op = "storage.postgres.Get"

	var value string
	err := s.pool.QueryRow(ctx, storage.GetValueQuery, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", custom_err.ErrNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return value, nil
}

func (s *PostgresStorage) Set(ctx context.Context, key, value string) error {
	const op = "storage.postgres.Set"

	if _, err := s.pool.Exec(ctx, storage.UpsertValueQuery, key, value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *PostgresStorage) Close() error {
	s.pool.Close()
	return nil
}

var _ storage.KeyValue = (*PostgresStorage)(nil)
