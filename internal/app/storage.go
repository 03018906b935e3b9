package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"currency-converter/internal/config"
	"currency-converter/internal/db"
	"currency-converter/internal/storage"
	"currency-converter/internal/storage/memory"
	"currency-converter/internal/storage/mongodb"
	"currency-converter/internal/storage/postgres"
	"currency-converter/internal/storage/redis"
	"currency-converter/internal/storage/sqlite"
	"currency-converter/internal/storage/wal"

	goredis "github.com/redis/go-redis/v9"
)

// OpenStore открывает key-value хранилище, выбранное через STORAGE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.KeyValue, error) {
	const op = "app.OpenStore"

	log.Info("открытие хранилища курсов", slog.String("driver", cfg.Storage.Driver))

	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		store, err := sqlite.NewSQLiteStorage(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return store, nil

	case config.DriverPostgres:
		log.Info("выполнение миграций базы данных")
		if err := db.RunMigrations(cfg.DB.MigrationURL(), "migrations"); err != nil {
			return nil, fmt.Errorf("%s: ошибка выполнения миграций: %w", op, err)
		}
		log.Info("миграции успешно применены")

		poolCfg := db.PoolConfig{
			MaxConns:          10,
			MinConns:          1,
			HealthCheckPeriod: 30 * time.Second,
			PoolTimeout:       5 * time.Second,
			RetryAttempts:     5,
			RetryDelay:        1 * time.Second,
			ApplicationName:   "currency-converter",
		}
		pool, err := db.NewPool(ctx, cfg.DB.DSN(), poolCfg, log)
		if err != nil {
			return nil, fmt.Errorf("%s: не удалось подключиться к базе данных: %w", op, err)
		}
		return postgres.NewPostgresStorage(pool), nil

	case config.DriverMongoDB:
		store, err := mongodb.NewMongoStorage(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection, cfg.Mongo.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return store, nil

	case config.DriverRedis:
		store, err := redis.NewRedisStorage(ctx, &goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.Prefix)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return store, nil

	case config.DriverWAL:
		store, err := wal.NewWALStorage(cfg.Storage.WALDir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return store, nil

	case config.DriverMemory:
		log.Warn("in-memory хранилище: курсы не переживут перезапуск")
		return memory.NewMemoryStorage(), nil

	default:
		return nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Storage.Driver)
	}
}
