package handlers

import (
	"context"
	"time"

	"currency-converter/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) GetCurrentSnapshot(ctx context.Context) (*models.RateSnapshot, models.CacheStatus) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Get(1).(models.CacheStatus)
	}
	return args.Get(0).(*models.RateSnapshot), args.Get(1).(models.CacheStatus)
}

func (m *MockRateCache) EnsureFresh(ctx context.Context, maxAge time.Duration) models.CacheStatus {
	args := m.Called(ctx, maxAge)
	return args.Get(0).(models.CacheStatus)
}

func (m *MockRateCache) Refresh(ctx context.Context) (*models.RateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RateSnapshot), args.Error(1)
}

func (m *MockRateCache) Convert(ctx context.Context, amount float64, from, to string) (*models.Conversion, error) {
	args := m.Called(ctx, amount, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversion), args.Error(1)
}

func (m *MockRateCache) Currencies(ctx context.Context) ([]models.Currency, models.CacheStatus) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Currency), args.Get(1).(models.CacheStatus)
}

func (m *MockRateCache) Watch(ctx context.Context, interval time.Duration) {
	m.Called(ctx, interval)
}
