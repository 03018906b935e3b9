package storage

import (
	"context"
)

// DefaultSnapshotKey ключ, под которым хранится последний snapshot курсов.
const DefaultSnapshotKey = "exchange_rates"

// KeyValue постоянное key-value хранилище. Значение под ключом всегда заменяется целиком.
// Отсутствующий ключ возвращает custom_err.ErrNotFound.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
