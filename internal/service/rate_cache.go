package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/metrics"
	"currency-converter/internal/models"
	"currency-converter/internal/ratesource"
	"currency-converter/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const DefaultMaxAge = 24 * time.Hour

// MaxClockSkew допустимое опережение fetched_at относительно локальных часов.
// Snapshot, помеченный временем дальше в будущем, считается просроченным.
const MaxClockSkew = 5 * time.Minute

type RateCache interface {
	GetCurrentSnapshot(ctx context.Context) (*models.RateSnapshot, models.CacheStatus)
	EnsureFresh(ctx context.Context, maxAge time.Duration) models.CacheStatus
	Refresh(ctx context.Context) (*models.RateSnapshot, error)
	Convert(ctx context.Context, amount float64, from, to string) (*models.Conversion, error)
	Currencies(ctx context.Context) ([]models.Currency, models.CacheStatus)
	Watch(ctx context.Context, interval time.Duration)
}

// RateCacheManager решает, можно ли использовать сохранённые курсы, обновляет их
// и деградирует до устаревших данных, если источник недоступен.
// Ошибки хранилища наружу не выходят: чтение с ошибкой считается отсутствием данных,
// ошибка записи только логируется.
type RateCacheManager struct {
	store    storage.KeyValue
	source   ratesource.Source
	key      string
	maxAge   time.Duration
	notifier Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
	log      *slog.Logger
}

type Option func(*RateCacheManager)

func WithKey(key string) Option {
	return func(m *RateCacheManager) {
		if key != "" {
			m.key = key
		}
	}
}

func WithMaxAge(maxAge time.Duration) Option {
	return func(m *RateCacheManager) {
		if maxAge > 0 {
			m.maxAge = maxAge
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(m *RateCacheManager) {
		m.notifier = n
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *RateCacheManager) {
		m.metrics = mt
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *RateCacheManager) {
		m.now = now
	}
}

func NewRateCacheManager(store storage.KeyValue, source ratesource.Source, log *slog.Logger, opts ...Option) *RateCacheManager {
	m := &RateCacheManager{
		store:  store,
		source: source,
		key:    storage.DefaultSnapshotKey,
		maxAge: DefaultMaxAge,
		now:    time.Now,
		log:    log,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.metrics == nil {
		m.metrics = metrics.New(prometheus.NewRegistry())
	}

	return m
}

// GetCurrentSnapshot читает хранилище без обращения к сети.
func (m *RateCacheManager) GetCurrentSnapshot(ctx context.Context) (*models.RateSnapshot, models.CacheStatus) {
	snapshot := m.load(ctx)
	if snapshot == nil {
		return nil, models.StatusMissing
	}

	now := m.now()
	m.metrics.SnapshotAge.Set(snapshot.Age(now).Seconds())

	if expired(snapshot, now, m.maxAge) {
		return snapshot, models.StatusStale
	}
	return snapshot, models.StatusFresh
}

func fromFuture(snapshot *models.RateSnapshot, now time.Time) bool {
	return snapshot.FetchedAt.After(now.Add(MaxClockSkew))
}

func expired(snapshot *models.RateSnapshot, now time.Time, maxAge time.Duration) bool {
	return fromFuture(snapshot, now) || snapshot.Age(now) > maxAge
}

// EnsureFresh обновляет курсы, если snapshot отсутствует или старше maxAge.
func (m *RateCacheManager) EnsureFresh(ctx context.Context, maxAge time.Duration) models.CacheStatus {
	status := m.ensureFresh(ctx, maxAge)
	m.metrics.FreshnessTotal.WithLabelValues(status.String()).Inc()
	return status
}

func (m *RateCacheManager) ensureFresh(ctx context.Context, maxAge time.Duration) models.CacheStatus {
	snapshot := m.load(ctx)
	if snapshot != nil {
		now := m.now()
		age := snapshot.Age(now)
		m.metrics.SnapshotAge.Set(age.Seconds())

		switch {
		case fromFuture(snapshot, now):
			m.log.Warn("fetched_at snapshot в будущем, обновление",
				slog.Time("fetched_at", snapshot.FetchedAt),
				slog.Time("now", now))
		case age <= maxAge:
			m.log.Debug("курсы в кэше актуальны",
				slog.Duration("age", age),
				slog.Duration("max_age", maxAge))
			return models.StatusFresh
		default:
			m.log.Info("курсы в кэше устарели, обновление",
				slog.Duration("age", age),
				slog.Duration("max_age", maxAge))
		}
	}

	if _, err := m.Refresh(ctx); err != nil {
		if snapshot != nil {
			m.log.Warn("using offline rates due to connection issue",
				slog.Time("fetched_at", snapshot.FetchedAt),
				slog.String("error", err.Error()))
			return models.StatusStale
		}
		m.log.Error("no exchange rates data available", slog.String("error", err.Error()))
		return models.StatusFetchFailed
	}

	return models.StatusRefreshed
}

// Refresh запрашивает источник и заменяет snapshot целиком. При ошибке источника
// хранилище не трогается.
func (m *RateCacheManager) Refresh(ctx context.Context) (*models.RateSnapshot, error) {
	const op = "service.Refresh"

	start := time.Now()
	data, err := m.source.Fetch(ctx)
	m.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.metrics.RefreshTotal.WithLabelValues("error").Inc()
		if !errors.Is(err, custom_err.ErrNetwork) && !errors.Is(err, custom_err.ErrBadResponse) {
			return nil, fmt.Errorf("%s: %w: %v", op, custom_err.ErrNetwork, err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	snapshot, err := m.newSnapshot(ctx, data)
	if err != nil {
		m.metrics.RefreshTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.save(ctx, snapshot)
	m.metrics.RefreshTotal.WithLabelValues("ok").Inc()
	m.metrics.SnapshotAge.Set(0)

	m.log.Info("курсы обновлены",
		slog.String("base", snapshot.Base),
		slog.Int("currency_count", len(snapshot.Rates)),
		slog.Time("fetched_at", snapshot.FetchedAt))

	if m.notifier != nil {
		m.notifier.Notify(snapshot)
	}

	return snapshot, nil
}

func (m *RateCacheManager) newSnapshot(ctx context.Context, data *models.RateData) (*models.RateSnapshot, error) {
	if data == nil || len(data.Rates) == 0 {
		return nil, fmt.Errorf("%w: empty rates", custom_err.ErrBadResponse)
	}

	rates := make(map[string]float64, len(data.Rates))
	for code, rate := range data.Rates {
		if !models.ValidRate(rate) {
			return nil, fmt.Errorf("%w: invalid rate %v for %s", custom_err.ErrBadResponse, rate, code)
		}
		rates[code] = rate
	}

	var names map[string]string
	if len(data.Names) > 0 {
		names = make(map[string]string, len(data.Names))
		for code, name := range data.Names {
			names[code] = name
		}
	}

	fetchedAt := m.now()
	if prev := m.load(ctx); prev != nil && prev.FetchedAt.After(fetchedAt) && !fromFuture(prev, fetchedAt) {
		m.log.Warn("часы отстают от сохранённого snapshot, fetched_at не уменьшается",
			slog.Time("now", fetchedAt),
			slog.Time("stored_fetched_at", prev.FetchedAt))
		fetchedAt = prev.FetchedAt
	}

	return &models.RateSnapshot{
		Base:      data.Base,
		Rates:     rates,
		Names:     names,
		AsOf:      data.AsOf,
		FetchedAt: fetchedAt,
	}, nil
}

// Convert считает по сохранённому snapshot и никогда не ходит в сеть.
func (m *RateCacheManager) Convert(ctx context.Context, amount float64, from, to string) (*models.Conversion, error) {
	const op = "service.Convert"

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		m.metrics.ConversionsTotal.WithLabelValues("invalid_amount").Inc()
		return nil, fmt.Errorf("%s: %w: %v", op, custom_err.ErrInvalidAmount, amount)
	}

	snapshot, status := m.GetCurrentSnapshot(ctx)
	if snapshot == nil {
		m.metrics.ConversionsTotal.WithLabelValues("no_data").Inc()
		return nil, fmt.Errorf("%s: %w", op, custom_err.ErrNoData)
	}

	fromRate, ok := snapshot.Rates[from]
	if !ok {
		m.metrics.ConversionsTotal.WithLabelValues("missing_currency").Inc()
		return nil, fmt.Errorf("%s: %w: %s", op, custom_err.ErrMissingCurrency, from)
	}
	toRate, ok := snapshot.Rates[to]
	if !ok {
		m.metrics.ConversionsTotal.WithLabelValues("missing_currency").Inc()
		return nil, fmt.Errorf("%s: %w: %s", op, custom_err.ErrMissingCurrency, to)
	}

	result := amount / fromRate * toRate
	if from == to {
		result = amount
	}

	m.metrics.ConversionsTotal.WithLabelValues("ok").Inc()

	return &models.Conversion{
		From:      from,
		To:        to,
		Amount:    amount,
		Rate:      toRate / fromRate,
		Result:    result,
		Rounded:   decimal.NewFromFloat(result).StringFixed(2),
		FetchedAt: snapshot.FetchedAt,
		Status:    status,
	}, nil
}

// Adopt сохраняет snapshot, полученный от другого экземпляра, только если он новее сохранённого.
// Snapshot, помеченный временем дальше MaxClockSkew в будущем, отклоняется.
// Уведомление не отправляется.
func (m *RateCacheManager) Adopt(ctx context.Context, snapshot *models.RateSnapshot) (bool, error) {
	const op = "service.Adopt"

	if !snapshot.Valid() {
		return false, fmt.Errorf("%s: %w: invalid snapshot", op, custom_err.ErrBadResponse)
	}

	now := m.now()
	if fromFuture(snapshot, now) {
		return false, fmt.Errorf("%s: %w: fetched_at %s is ahead of local clock %s",
			op, custom_err.ErrBadResponse, snapshot.FetchedAt.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	if prev := m.load(ctx); prev != nil && !fromFuture(prev, now) && !snapshot.FetchedAt.After(prev.FetchedAt) {
		m.log.Debug("snapshot от другого экземпляра не новее сохранённого",
			slog.Time("incoming_fetched_at", snapshot.FetchedAt),
			slog.Time("stored_fetched_at", prev.FetchedAt))
		return false, nil
	}

	m.save(ctx, snapshot)
	m.log.Info("принят snapshot от другого экземпляра",
		slog.Int("currency_count", len(snapshot.Rates)),
		slog.Time("fetched_at", snapshot.FetchedAt))

	return true, nil
}

func (m *RateCacheManager) Currencies(ctx context.Context) ([]models.Currency, models.CacheStatus) {
	snapshot, status := m.GetCurrentSnapshot(ctx)
	if snapshot == nil {
		return []models.Currency{}, status
	}
	return snapshot.Currencies(), status
}

// Watch сразу проверяет свежесть и повторяет проверку каждые interval до отмены ctx.
func (m *RateCacheManager) Watch(ctx context.Context, interval time.Duration) {
	m.log.Info("rates refresher started", slog.Duration("interval", interval))

	status := m.EnsureFresh(ctx, m.maxAge)
	m.log.Info("начальная проверка курсов", slog.String("status", status.String()))

	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			status := m.EnsureFresh(ctx, m.maxAge)
			m.log.Debug("периодическая проверка курсов", slog.String("status", status.String()))
		case <-ctx.Done():
			m.log.Info("rates refresher stopping")
			return
		}
	}
}

func (m *RateCacheManager) load(ctx context.Context) *models.RateSnapshot {
	raw, err := m.store.Get(ctx, m.key)
	if err != nil {
		if !errors.Is(err, custom_err.ErrNotFound) {
			m.metrics.StoreErrorsTotal.WithLabelValues("get").Inc()
			m.log.Warn("не удалось прочитать snapshot, считаем отсутствующим",
				slog.String("key", m.key),
				slog.String("error", err.Error()))
		}
		return nil
	}

	var snapshot models.RateSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		m.metrics.StoreErrorsTotal.WithLabelValues("decode").Inc()
		m.log.Warn("повреждённый snapshot в хранилище",
			slog.String("key", m.key),
			slog.String("error", err.Error()))
		return nil
	}
	if !snapshot.Valid() {
		m.metrics.StoreErrorsTotal.WithLabelValues("decode").Inc()
		m.log.Warn("snapshot в хранилище не проходит проверку", slog.String("key", m.key))
		return nil
	}

	return &snapshot
}

func (m *RateCacheManager) save(ctx context.Context, snapshot *models.RateSnapshot) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		m.metrics.StoreErrorsTotal.WithLabelValues("encode").Inc()
		m.log.Error("failed to encode snapshot", slog.String("error", err.Error()))
		return
	}

	if err := m.store.Set(ctx, m.key, string(raw)); err != nil {
		m.metrics.StoreErrorsTotal.WithLabelValues("set").Inc()
		m.log.Error("failed to store snapshot",
			slog.String("key", m.key),
			slog.String("error", err.Error()))
	}
}

var _ RateCache = (*RateCacheManager)(nil)
