package service

import (
	"context"

	"currency-converter/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Fetch(ctx context.Context) (*models.RateData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RateData), args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(snapshot *models.RateSnapshot) {
	m.Called(snapshot)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) SendRatesRefreshedEvent(ctx context.Context, event models.RatesRefreshedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
