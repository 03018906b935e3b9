package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/metrics"
	"currency-converter/internal/models"
	"currency-converter/internal/storage"
	"currency-converter/internal/storage/memory"
	"currency-converter/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

type testEnv struct {
	store   *memory.MemoryStorage
	source  *MockSource
	clock   *testClock
	metrics *metrics.Metrics
	manager *RateCacheManager
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	env := &testEnv{
		store:   memory.NewMemoryStorage(),
		source:  new(MockSource),
		clock:   &testClock{now: t0},
		metrics: metrics.New(prometheus.NewRegistry()),
	}

	base := []Option{WithClock(env.clock.Now), WithMetrics(env.metrics), WithMaxAge(24 * time.Hour)}
	env.manager = NewRateCacheManager(env.store, env.source, logger.NewDiscard(), append(base, opts...)...)

	return env
}

func (e *testEnv) seed(t *testing.T, snapshot *models.RateSnapshot) {
	t.Helper()

	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)
	require.NoError(t, e.store.Set(context.Background(), storage.DefaultSnapshotKey, string(raw)))
}

func (e *testEnv) stored(t *testing.T) *models.RateSnapshot {
	t.Helper()

	raw, err := e.store.Get(context.Background(), storage.DefaultSnapshotKey)
	if errors.Is(err, custom_err.ErrNotFound) {
		return nil
	}
	require.NoError(t, err)

	var snapshot models.RateSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snapshot))
	return &snapshot
}

func snapshotAt(fetchedAt time.Time, rates map[string]float64) *models.RateSnapshot {
	return &models.RateSnapshot{
		Base:      "USD",
		Rates:     rates,
		FetchedAt: fetchedAt,
	}
}

func rateData(rates map[string]float64) *models.RateData {
	return &models.RateData{Base: "USD", Rates: rates}
}

func TestRateCacheManager_FreshThenRefreshedScenario(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, snapshotAt(t0, map[string]float64{"USD": 1, "EUR": 0.9}))
	ctx := context.Background()

	env.clock.now = t0.Add(time.Hour)
	assert.Equal(t, models.StatusFresh, env.manager.EnsureFresh(ctx, 24*time.Hour))
	env.source.AssertNotCalled(t, "Fetch", mock.Anything)

	env.clock.now = t0.Add(25 * time.Hour)
	env.source.On("Fetch", mock.Anything).
		Return(rateData(map[string]float64{"USD": 1, "EUR": 0.92}), nil).Once()

	assert.Equal(t, models.StatusRefreshed, env.manager.EnsureFresh(ctx, 24*time.Hour))

	conv, err := env.manager.Convert(ctx, 100, "USD", "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 92.0, conv.Result, 1e-9)
	assert.Equal(t, "92.00", conv.Rounded)
	assert.True(t, conv.FetchedAt.Equal(t0.Add(25*time.Hour)))

	env.source.AssertExpectations(t)
}

func TestRateCacheManager_GetCurrentSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("absent", func(t *testing.T) {
		env := newTestEnv(t)

		snapshot, status := env.manager.GetCurrentSnapshot(ctx)

		assert.Nil(t, snapshot)
		assert.Equal(t, models.StatusMissing, status)
	})

	t.Run("within max age", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, snapshotAt(t0, map[string]float64{"USD": 1, "EUR": 0.9}))
		env.clock.now = t0.Add(24 * time.Hour)

		snapshot, status := env.manager.GetCurrentSnapshot(ctx)

		require.NotNil(t, snapshot)
		assert.Equal(t, models.StatusFresh, status)
		assert.Equal(t, 0.9, snapshot.Rates["EUR"])
	})

	t.Run("expired", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, snapshotAt(t0, map[string]float64{"USD": 1}))
		env.clock.now = t0.Add(48 * time.Hour)

		snapshot, status := env.manager.GetCurrentSnapshot(ctx)

		require.NotNil(t, snapshot)
		assert.Equal(t, models.StatusStale, status)
	})

	t.Run("corrupt value", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.store.Set(ctx, storage.DefaultSnapshotKey, "{not json"))

		snapshot, status := env.manager.GetCurrentSnapshot(ctx)

		assert.Nil(t, snapshot)
		assert.Equal(t, models.StatusMissing, status)
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.StoreErrorsTotal.WithLabelValues("decode")))
	})

	t.Run("stored value breaks invariants", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, snapshotAt(t0, map[string]float64{"USD": 1, "EUR": -1}))

		snapshot, status := env.manager.GetCurrentSnapshot(ctx)

		assert.Nil(t, snapshot)
		assert.Equal(t, models.StatusMissing, status)
	})

	t.Run("store read error", func(t *testing.T) {
		store := new(MockStore)
		store.On("Get", mock.Anything, storage.DefaultSnapshotKey).Return("", errors.New("disk on fire"))
		m := NewRateCacheManager(store, new(MockSource), logger.NewDiscard())

		snapshot, status := m.GetCurrentSnapshot(ctx)

		assert.Nil(t, snapshot)
		assert.Equal(t, models.StatusMissing, status)
		store.AssertExpectations(t)
	})
}

func TestRateCacheManager_EnsureFresh(t *testing.T) {
	ctx := context.Background()

	t.Run("no snapshot, source ok", func(t *testing.T) {
		env := newTestEnv(t)
		env.source.On("Fetch", mock.Anything).
			Return(rateData(map[string]float64{"USD": 1, "EUR": 0.9}), nil).Once()

		status := env.manager.EnsureFresh(ctx, 24*time.Hour)

		assert.Equal(t, models.StatusRefreshed, status)
		require.NotNil(t, env.stored(t))
		env.source.AssertExpectations(t)
	})

	t.Run("no snapshot, source fails", func(t *testing.T) {
		env := newTestEnv(t)
		env.source.On("Fetch", mock.Anything).Return(nil, custom_err.ErrNetwork).Once()

		status := env.manager.EnsureFresh(ctx, 24*time.Hour)

		assert.Equal(t, models.StatusFetchFailed, status)
		assert.Nil(t, env.stored(t))
		snapshot, current := env.manager.GetCurrentSnapshot(ctx)
		assert.Nil(t, snapshot)
		assert.Equal(t, models.StatusMissing, current)
	})

	t.Run("expired snapshot, source fails", func(t *testing.T) {
		env := newTestEnv(t)
		seeded := snapshotAt(t0, map[string]float64{"USD": 1, "EUR": 0.9})
		env.seed(t, seeded)
		before, err := env.store.Get(ctx, storage.DefaultSnapshotKey)
		require.NoError(t, err)

		env.clock.now = t0.Add(30 * time.Hour)
		env.source.On("Fetch", mock.Anything).Return(nil, custom_err.ErrBadResponse).Once()

		status := env.manager.EnsureFresh(ctx, 24*time.Hour)

		assert.Equal(t, models.StatusStale, status)
		after, err := env.store.Get(ctx, storage.DefaultSnapshotKey)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("fetched_at slightly ahead counts as zero age", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, snapshotAt(t0.Add(2*time.Minute), map[string]float64{"USD": 1}))

		status := env.manager.EnsureFresh(ctx, time.Minute)

		assert.Equal(t, models.StatusFresh, status)
		env.source.AssertNotCalled(t, "Fetch", mock.Anything)
	})

	t.Run("fetched_at far in the future is refreshed", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, snapshotAt(t0.Add(365*24*time.Hour), map[string]float64{"USD": 1, "EUR": 0.5}))
		env.source.On("Fetch", mock.Anything).
			Return(rateData(map[string]float64{"USD": 1, "EUR": 0.92}), nil).Once()

		_, current := env.manager.GetCurrentSnapshot(ctx)
		assert.Equal(t, models.StatusStale, current)

		status := env.manager.EnsureFresh(ctx, 24*time.Hour)

		assert.Equal(t, models.StatusRefreshed, status)
		stored := env.stored(t)
		assert.True(t, stored.FetchedAt.Equal(t0))
		assert.Equal(t, 0.92, stored.Rates["EUR"])
		env.source.AssertExpectations(t)
	})

	t.Run("never fetches below max age", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, snapshotAt(t0, map[string]float64{"USD": 1}))

		for _, age := range []time.Duration{0, time.Second, time.Hour, 23 * time.Hour} {
			env.clock.now = t0.Add(age)
			assert.Equal(t, models.StatusFresh, env.manager.EnsureFresh(ctx, 24*time.Hour))
		}

		env.source.AssertNotCalled(t, "Fetch", mock.Anything)
		assert.Equal(t, 4.0, testutil.ToFloat64(env.metrics.FreshnessTotal.WithLabelValues("fresh")))
	})
}

func TestRateCacheManager_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("stores snapshot stamped with refresh time", func(t *testing.T) {
		env := newTestEnv(t)
		env.clock.now = t0.Add(3 * time.Hour)
		env.source.On("Fetch", mock.Anything).Return(&models.RateData{
			Base:  "USD",
			Rates: map[string]float64{"USD": 1, "EUR": 0.92},
			Names: map[string]string{"EUR": "Euro"},
			AsOf:  t0,
		}, nil).Once()

		snapshot, err := env.manager.Refresh(ctx)

		require.NoError(t, err)
		assert.True(t, snapshot.FetchedAt.Equal(env.clock.now))

		stored := env.stored(t)
		require.NotNil(t, stored)
		assert.True(t, stored.FetchedAt.Equal(env.clock.now))
		assert.NotEmpty(t, stored.Rates)
		assert.Equal(t, "Euro", stored.Names["EUR"])
		assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RefreshTotal.WithLabelValues("ok")))
	})

	t.Run("fetched_at never moves backwards", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, snapshotAt(t0, map[string]float64{"USD": 1}))
		env.clock.now = t0.Add(-2 * time.Minute)
		env.source.On("Fetch", mock.Anything).Return(rateData(map[string]float64{"USD": 1, "EUR": 0.9}), nil).Once()

		snapshot, err := env.manager.Refresh(ctx)

		require.NoError(t, err)
		assert.True(t, snapshot.FetchedAt.Equal(t0))
		assert.Equal(t, 0.9, env.stored(t).Rates["EUR"])
	})

	t.Run("far future fetched_at is not carried over", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, snapshotAt(t0.Add(365*24*time.Hour), map[string]float64{"USD": 1}))
		env.source.On("Fetch", mock.Anything).Return(rateData(map[string]float64{"USD": 1, "EUR": 0.9}), nil).Once()

		snapshot, err := env.manager.Refresh(ctx)

		require.NoError(t, err)
		assert.True(t, snapshot.FetchedAt.Equal(t0))
		assert.True(t, env.stored(t).FetchedAt.Equal(t0))
	})

	t.Run("source errors leave storage untouched", func(t *testing.T) {
		tests := []struct {
			name      string
			sourceErr error
			want      error
		}{
			{"network", custom_err.ErrNetwork, custom_err.ErrNetwork},
			{"bad response", custom_err.ErrBadResponse, custom_err.ErrBadResponse},
			{"unclassified", errors.New("socket closed"), custom_err.ErrNetwork},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newTestEnv(t)
				env.seed(t, snapshotAt(t0, map[string]float64{"USD": 1, "EUR": 0.9}))
				env.source.On("Fetch", mock.Anything).Return(nil, tt.sourceErr).Once()

				snapshot, err := env.manager.Refresh(ctx)

				assert.Nil(t, snapshot)
				assert.ErrorIs(t, err, tt.want)
				assert.Equal(t, 0.9, env.stored(t).Rates["EUR"])
			})
		}
	})

	t.Run("invalid data is a bad response", func(t *testing.T) {
		tests := []struct {
			name string
			data *models.RateData
		}{
			{"nil", nil},
			{"empty rates", rateData(map[string]float64{})},
			{"NaN rate", rateData(map[string]float64{"USD": 1, "EUR": math.NaN()})},
			{"zero rate", rateData(map[string]float64{"USD": 0})},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				env := newTestEnv(t)
				env.source.On("Fetch", mock.Anything).Return(tt.data, nil).Once()

				_, err := env.manager.Refresh(ctx)

				assert.ErrorIs(t, err, custom_err.ErrBadResponse)
				assert.Nil(t, env.stored(t))
			})
		}
	})

	t.Run("store write failure is swallowed", func(t *testing.T) {
		store := new(MockStore)
		store.On("Get", mock.Anything, storage.DefaultSnapshotKey).Return("", custom_err.ErrNotFound)
		store.On("Set", mock.Anything, storage.DefaultSnapshotKey, mock.AnythingOfType("string")).
			Return(errors.New("read-only filesystem")).Once()
		source := new(MockSource)
		source.On("Fetch", mock.Anything).Return(rateData(map[string]float64{"USD": 1}), nil).Once()
		mt := metrics.New(prometheus.NewRegistry())

		m := NewRateCacheManager(store, source, logger.NewDiscard(), WithMetrics(mt))
		snapshot, err := m.Refresh(ctx)

		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.Equal(t, 1.0, testutil.ToFloat64(mt.StoreErrorsTotal.WithLabelValues("set")))
		store.AssertExpectations(t)
	})

	t.Run("notifies on success only", func(t *testing.T) {
		notifier := new(MockNotifier)
		notifier.On("Notify", mock.AnythingOfType("*models.RateSnapshot")).Once()
		env := newTestEnv(t, WithNotifier(notifier))
		env.source.On("Fetch", mock.Anything).Return(rateData(map[string]float64{"USD": 1}), nil).Once()
		env.source.On("Fetch", mock.Anything).Return(nil, custom_err.ErrNetwork).Once()

		_, err := env.manager.Refresh(ctx)
		require.NoError(t, err)
		_, err = env.manager.Refresh(ctx)
		require.Error(t, err)

		notifier.AssertExpectations(t)
		notifier.AssertNumberOfCalls(t, "Notify", 1)
	})

	t.Run("custom storage key", func(t *testing.T) {
		env := newTestEnv(t, WithKey("rates:v2"))
		env.source.On("Fetch", mock.Anything).Return(rateData(map[string]float64{"USD": 1}), nil).Once()

		_, err := env.manager.Refresh(ctx)
		require.NoError(t, err)

		_, err = env.store.Get(ctx, "rates:v2")
		assert.NoError(t, err)
		assert.Nil(t, env.stored(t))
	})
}

func TestRateCacheManager_Convert(t *testing.T) {
	ctx := context.Background()
	rates := map[string]float64{"USD": 1, "EUR": 0.9, "JPY": 149.5, "GBP": 0.79}

	env := newTestEnv(t)
	env.seed(t, snapshotAt(t0, rates))

	t.Run("result follows cross rate", func(t *testing.T) {
		tests := []struct {
			amount   float64
			from, to string
		}{
			{100, "USD", "EUR"},
			{250.5, "EUR", "JPY"},
			{1, "JPY", "GBP"},
			{0.01, "GBP", "USD"},
		}

		for _, tt := range tests {
			conv, err := env.manager.Convert(ctx, tt.amount, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.amount/rates[tt.from]*rates[tt.to], conv.Result, "%v %s->%s", tt.amount, tt.from, tt.to)
			assert.InDelta(t, rates[tt.to]/rates[tt.from], conv.Rate, 1e-12)
		}
	})

	t.Run("same currency is identity", func(t *testing.T) {
		for _, code := range []string{"USD", "EUR", "JPY", "GBP"} {
			conv, err := env.manager.Convert(ctx, 123.45, code, code)
			require.NoError(t, err)
			assert.Equal(t, 123.45, conv.Result)
		}
	})

	t.Run("rounded to two decimals", func(t *testing.T) {
		conv, err := env.manager.Convert(ctx, 10, "USD", "JPY")
		require.NoError(t, err)
		assert.Equal(t, "1495.00", conv.Rounded)

		conv, err = env.manager.Convert(ctx, 1, "JPY", "USD")
		require.NoError(t, err)
		assert.Equal(t, "0.01", conv.Rounded)
	})

	t.Run("missing currency", func(t *testing.T) {
		_, err := env.manager.Convert(ctx, 50, "USD", "XXX")
		assert.ErrorIs(t, err, custom_err.ErrMissingCurrency)
		assert.Contains(t, err.Error(), "XXX")

		_, err = env.manager.Convert(ctx, 50, "XXX", "USD")
		assert.ErrorIs(t, err, custom_err.ErrMissingCurrency)
	})

	t.Run("invalid amount", func(t *testing.T) {
		for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := env.manager.Convert(ctx, amount, "USD", "EUR")
			assert.ErrorIs(t, err, custom_err.ErrInvalidAmount, "amount %v", amount)
		}
	})

	t.Run("stale data still converts", func(t *testing.T) {
		env.clock.now = t0.Add(72 * time.Hour)
		t.Cleanup(func() { env.clock.now = t0 })

		conv, err := env.manager.Convert(ctx, 100, "USD", "EUR")
		require.NoError(t, err)
		assert.Equal(t, "90.00", conv.Rounded)
		assert.Equal(t, models.StatusStale, conv.Status)
	})

	env.source.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestRateCacheManager_Convert_NoData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.manager.Convert(ctx, 10, "USD", "EUR")
	assert.ErrorIs(t, err, custom_err.ErrNoData)

	_, err = env.manager.Convert(ctx, -10, "USD", "EUR")
	assert.ErrorIs(t, err, custom_err.ErrInvalidAmount, "amount is validated before data lookup")

	env.source.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestRateCacheManager_Currencies(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		env := newTestEnv(t)

		currencies, status := env.manager.Currencies(ctx)

		assert.Empty(t, currencies)
		assert.NotNil(t, currencies)
		assert.Equal(t, models.StatusMissing, status)
	})

	t.Run("sorted with names", func(t *testing.T) {
		env := newTestEnv(t)
		snapshot := snapshotAt(t0, map[string]float64{"USD": 1, "EUR": 0.9})
		snapshot.Names = map[string]string{"USD": "United States Dollar"}
		env.seed(t, snapshot)

		currencies, status := env.manager.Currencies(ctx)

		assert.Equal(t, models.StatusFresh, status)
		assert.Equal(t, []models.Currency{
			{Code: "EUR", Name: "EUR"},
			{Code: "USD", Name: "United States Dollar"},
		}, currencies)
	})
}

func TestRateCacheManager_Watch(t *testing.T) {
	env := newTestEnv(t)
	env.source.On("Fetch", mock.Anything).Return(rateData(map[string]float64{"USD": 1}), nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		env.manager.Watch(ctx, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(env.metrics.FreshnessTotal.WithLabelValues("refreshed")) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not stop after cancel")
	}

	env.source.AssertExpectations(t)
}

func TestRateCacheManager_Adopt(t *testing.T) {
	ctx := context.Background()

	t.Run("newer snapshot replaces stored", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, snapshotAt(t0, map[string]float64{"USD": 1, "EUR": 0.9}))
		env.clock.now = t0.Add(2 * time.Hour)

		adopted, err := env.manager.Adopt(ctx, snapshotAt(t0.Add(time.Hour), map[string]float64{"USD": 1, "EUR": 0.93}))

		require.NoError(t, err)
		assert.True(t, adopted)
		assert.Equal(t, 0.93, env.stored(t).Rates["EUR"])
	})

	t.Run("older or equal snapshot is ignored", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, snapshotAt(t0, map[string]float64{"USD": 1, "EUR": 0.9}))

		for _, at := range []time.Time{t0, t0.Add(-time.Hour)} {
			adopted, err := env.manager.Adopt(ctx, snapshotAt(at, map[string]float64{"USD": 1, "EUR": 0.5}))
			require.NoError(t, err)
			assert.False(t, adopted)
		}
		assert.Equal(t, 0.9, env.stored(t).Rates["EUR"])
	})

	t.Run("snapshot ahead of local clock is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, snapshotAt(t0, map[string]float64{"USD": 1, "EUR": 0.9}))

		adopted, err := env.manager.Adopt(ctx, snapshotAt(t0.Add(365*24*time.Hour), map[string]float64{"USD": 1, "EUR": 0.5}))

		assert.ErrorIs(t, err, custom_err.ErrBadResponse)
		assert.False(t, adopted)
		assert.Equal(t, 0.9, env.stored(t).Rates["EUR"])

		env.clock.now = t0.Add(30 * 24 * time.Hour)
		env.source.On("Fetch", mock.Anything).Return(rateData(map[string]float64{"USD": 1, "EUR": 0.92}), nil).Once()
		assert.Equal(t, models.StatusRefreshed, env.manager.EnsureFresh(ctx, 24*time.Hour))
		env.source.AssertExpectations(t)
	})

	t.Run("stored future snapshot is replaced by honest one", func(t *testing.T) {
		env := newTestEnv(t)
		env.seed(t, snapshotAt(t0.Add(365*24*time.Hour), map[string]float64{"USD": 1, "EUR": 0.5}))

		adopted, err := env.manager.Adopt(ctx, snapshotAt(t0.Add(-time.Minute), map[string]float64{"USD": 1, "EUR": 0.93}))

		require.NoError(t, err)
		assert.True(t, adopted)
		assert.True(t, env.stored(t).FetchedAt.Equal(t0.Add(-time.Minute)))
	})

	t.Run("invalid snapshot is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.manager.Adopt(ctx, snapshotAt(t0, map[string]float64{}))

		assert.ErrorIs(t, err, custom_err.ErrBadResponse)
		assert.Nil(t, env.stored(t))
	})

	t.Run("does not notify", func(t *testing.T) {
		notifier := new(MockNotifier)
		env := newTestEnv(t, WithNotifier(notifier))

		_, err := env.manager.Adopt(ctx, snapshotAt(t0, map[string]float64{"USD": 1}))

		require.NoError(t, err)
		notifier.AssertNotCalled(t, "Notify", mock.Anything)
	})
}
