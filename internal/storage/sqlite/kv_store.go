package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/storage"

	_ "github.com/glebarez/go-sqlite"
)

// SQLiteStorage локальное файловое хранилище; переживает перезапуск процесса.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(ctx context.Context, path string) (*SQLiteStorage, error) {
	const op = "storage.sqlite.New"

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open sqlite: %w", op, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: failed to set pragma %s: %w", op, pragma, err)
		}
	}

	if _, err := db.ExecContext(ctx, storage.SQLiteCreateTableQuery); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to create kv_store table: %w", op, err)
	}

	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) Get(ctx context.Context, key string) (string, error) {
	const op = "storage.sqlite.Get"

	var value string
	err := s.db.QueryRowContext(ctx, storage.SQLiteGetValueQuery, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", custom_err.ErrNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return value, nil
}

func (s *SQLiteStorage) Set(ctx context.Context, key, value string) error {
	const op = "storage.sqlite.Set"

	_, err := s.db.ExecContext(ctx, storage.SQLiteUpsertValueQuery, key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

var _ storage.KeyValue = (*SQLiteStorage)(nil)
