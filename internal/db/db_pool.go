package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"currency-converter/pkg/retrier"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PoolConfig struct {
	MaxConns          int
	MinConns          int
	HealthCheckPeriod time.Duration
	PoolTimeout       time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
	ApplicationName   string
}

// withDefaults хранилищу курсов нужно одно-два соединения, поэтому пул маленький.
func (c PoolConfig) withDefaults() PoolConfig {
	if c.MaxConns <= 0 {
		c.MaxConns = 4
	}
	if c.MinConns < 0 {
		c.MinConns = 0
	}
	if c.HealthCheckPeriod <= 0 {
		c.HealthCheckPeriod = 30 * time.Second
	}
	if c.PoolTimeout <= 0 {
		c.PoolTimeout = 5 * time.Second
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 5
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 1 * time.Second
	}
	return c
}

func NewPool(ctx context.Context, dsn string, cfg PoolConfig, log *slog.Logger) (*pgxpool.Pool, error) {
	cfg = cfg.withDefaults()

	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось распарсить DSN: %w", err)
	}

	conf.MaxConns = int32(cfg.MaxConns)
	conf.MinConns = int32(cfg.MinConns)
	conf.HealthCheckPeriod = cfg.HealthCheckPeriod
	conf.MaxConnLifetime = 30 * time.Minute
	conf.MaxConnIdleTime = 5 * time.Minute
	if cfg.ApplicationName != "" {
		conf.ConnConfig.RuntimeParams["application_name"] = cfg.ApplicationName
	}
	conf.ConnConfig.ConnectTimeout = cfg.PoolTimeout

	r := retrier.New(
		retrier.WithMaxRetries(cfg.RetryAttempts-1),
		retrier.WithInitialInterval(cfg.RetryDelay),
	)

	attempt := 0
	pool, err := retrier.DoWithData(r, ctx, func(ctx context.Context) (*pgxpool.Pool, error) {
		attempt++

		pool, err := pgxpool.NewWithConfig(ctx, conf)
		if err != nil {
			log.Warn("не удалось создать пул соединений",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", cfg.RetryAttempts),
				slog.String("error", err.Error()))
			return nil, err
		}

		if err := pool.Ping(ctx); err != nil {
			log.Warn("ping БД не удался",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			pool.Close()
			return nil, err
		}

		return pool, nil
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений после %d попыток: %w", attempt, err)
	}

	log.Info("подключение к базе данных успешно")
	return pool, nil
}
