package memory

import (
	"context"
	"sync"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/storage"
)

// MemoryStorage не переживает перезапуск процесса. Используется в тестах и для локальных запусков.
type MemoryStorage struct {
	values map[string]string
	mutex  sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string]string),
	}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return "", custom_err.ErrNotFound
	}
	return value, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

var _ storage.KeyValue = (*MemoryStorage)(nil)
