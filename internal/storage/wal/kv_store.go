package wal

import (
	"context"
	"fmt"
	"sync"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/storage"

	"github.com/vadiminshakov/gowal"
)

const (
	defaultDir       = "./wal/rates"
	segmentThreshold = 100
	maxSegments      = 10
)

// WALStorage журнал snapshot'ов: каждая запись дописывается в WAL, Get отдаёт последнюю по ключу.
// Старые сегменты ротируются gowal, поэтому журнал не растёт бесконечно.
type WALStorage struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

func NewWALStorage(dir string) (*WALStorage, error) {
	if dir == "" {
		dir = defaultDir
	}

	w, err := gowal.NewWAL(gowal.Config{
		Dir:              dir,
		Prefix:           "rates_",
		SegmentThreshold: segmentThreshold,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	})
	if err != nil {
		return nil, fmt.Errorf("storage.wal.New: %w", err)
	}

	return &WALStorage{wal: w}, nil
}

func (s *WALStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.wal.CurrentIndex() == 0 {
		return "", custom_err.ErrNotFound
	}

	var (
		value string
		found bool
	)
	for msg := range s.wal.Iterator() {
		if msg.Key == key {
			value = string(msg.Value)
			found = true
		}
	}

	if !found {
		return "", custom_err.ErrNotFound
	}
	return value, nil
}

func (s *WALStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.wal.Write(s.wal.CurrentIndex()+1, key, []byte(value)); err != nil {
		return fmt.Errorf("storage.wal.Set: %w", err)
	}
	return nil
}

func (s *WALStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}

var _ storage.KeyValue = (*WALStorage)(nil)
