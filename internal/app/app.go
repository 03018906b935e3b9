package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currency-converter/internal/api/handlers"
	"currency-converter/internal/api/middlew"
	"currency-converter/internal/config"
	"currency-converter/internal/kafka"
	"currency-converter/internal/metrics"
	"currency-converter/internal/ratesource"
	"currency-converter/internal/server"
	"currency-converter/internal/service"
	"currency-converter/internal/storage"
	"currency-converter/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	log      *slog.Logger
	logFile  *os.File
	cfg      *config.Config
	server   *server.Server
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	store         storage.KeyValue
	rateCache     *service.RateCacheManager
	notifier      *service.RefreshNotifier
	kafkaProducer kafka.Producer
	kafkaConsumer *kafka.Consumer
}

func NewApp() (*App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации конфига: %w", err)
	}

	loggerWithFile := logger.NewLoggerWithFile(cfg.Log.File, cfg.Log.Level)
	log := loggerWithFile.Logger
	log.Info("инициализация приложения")
	log.Info("конфигурация загружена",
		slog.String("port", cfg.HTTPPort),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.Duration("max_age", cfg.Rates.MaxAge))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	store, err := OpenStore(context.Background(), cfg, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия хранилища: %w", err)
	}
	log.Info("хранилище курсов открыто")

	var kafkaProducer kafka.Producer
	if cfg.Kafka.Enabled {
		log.Info("инициализация kafka producer", slog.Any("brokers", cfg.Kafka.Brokers))
		kafkaProducer, err = kafka.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ошибка инициализации kafka: %w", err)
		}
	} else {
		log.Info("kafka отключен в конфигурации")
		kafkaProducer = kafka.NewNoOpProducer(log)
	}

	srv := server.NewServer(cfg.HTTPPort)
	log.Info("сервер инициализирован", slog.String("port", cfg.HTTPPort))

	app := &App{
		log:           log,
		logFile:       loggerWithFile.LogFile,
		cfg:           cfg,
		server:        srv,
		registry:      registry,
		metrics:       metrics.New(registry),
		store:         store,
		kafkaProducer: kafkaProducer,
	}

	srv.Router.Use(middleware.RequestID)
	srv.Router.Use(middlew.WithLogger(log))
	srv.Router.Use(middleware.RealIP)
	srv.Router.Use(middleware.Recoverer)
	srv.Router.Use(middlew.Metrics(app.metrics))
	srv.RegisterSwagger()
	srv.RegisterMetrics(registry)
	srv.Router.Get("/health", handlers.Health)

	return app, nil
}

func (a *App) BuildRatesLayer() {
	source := ratesource.NewHTTPSource(ratesource.Config{
		RatesURL:      a.cfg.Rates.URL,
		NamesURL:      a.cfg.Rates.NamesURL,
		Timeout:       a.cfg.Rates.Timeout,
		RetryAttempts: a.cfg.Rates.RetryAttempts,
		RetryDelay:    a.cfg.Rates.RetryDelay,
	}, a.log)

	a.notifier = service.NewRefreshNotifier(a.kafkaProducer, a.cfg.Kafka.QueueSize, a.log)

	a.rateCache = service.NewRateCacheManager(a.store, source, a.log,
		service.WithKey(a.cfg.Storage.Key),
		service.WithMaxAge(a.cfg.Rates.MaxAge),
		service.WithMetrics(a.metrics),
		service.WithNotifier(a.notifier),
	)

	if a.cfg.Kafka.Enabled && a.cfg.Kafka.Consume {
		consumer, err := kafka.NewConsumer(a.cfg.Kafka.Brokers, a.cfg.Kafka.GroupID, a.cfg.Kafka.Topic, a.rateCache, a.log)
		if err != nil {
			a.log.Error("kafka consumer недоступен, репликация отключена", slog.String("error", err.Error()))
		} else {
			a.kafkaConsumer = consumer
		}
	}

	ratesHandler := handlers.NewRatesHandler(a.rateCache, a.cfg.Rates.DefaultFrom, a.cfg.Rates.DefaultTo)

	a.server.Router.Route("/api/v1", func(r chi.Router) {
		r.Get("/rates", ratesHandler.GetRates)
		r.Get("/currencies", ratesHandler.GetCurrencies)
		r.Post("/convert", ratesHandler.Convert)

		r.Group(func(r chi.Router) {
			r.Use(middlew.RequireAdmin(a.cfg.Admin.JWTSecret))
			r.Post("/rates/refresh", ratesHandler.Refresh)
		})
	})

	a.log.Info("слой 'rates' собран и маршруты зарегистрированы")
}

func (a *App) Run() error {
	if a.rateCache == nil {
		err := errors.New("rateCache not initialized, call BuildRatesLayer first")
		a.log.Error(err.Error())
		return err
	}

	a.log.Info("сервер запускается")

	watchCtx, stopWatch := context.WithCancel(context.Background())
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		a.rateCache.Watch(watchCtx, a.cfg.Rates.RefreshInterval)
	}()

	consumeCtx, stopConsume := context.WithCancel(context.Background())
	defer stopConsume()
	if a.kafkaConsumer != nil {
		a.kafkaConsumer.Start(consumeCtx)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("ошибка запуска сервера: %w", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case runErr = <-serverErr:
	case sig := <-shutdownChan:
		a.log.Info("получен сигнал завершения", slog.String("signal", sig.String()))
	}

	a.log.Info("приложение останавливается")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stopWatch()
	select {
	case <-watchDone:
	case <-ctx.Done():
		a.log.Warn("refresher не остановился вовремя")
	}

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("ошибка при остановке http сервера", slog.String("error", err.Error()))
	}

	if a.kafkaConsumer != nil {
		stopConsume()
		if err := a.kafkaConsumer.Close(ctx); err != nil {
			a.log.Error("ошибка при закрытии kafka consumer", slog.String("error", err.Error()))
		}
	}

	if a.notifier != nil {
		a.log.Info("остановка refresh notifier")
		if err := a.notifier.Shutdown(ctx); err != nil {
			a.log.Error("ошибка при остановке notifier", slog.String("error", err.Error()))
		}
	}

	if a.kafkaProducer != nil {
		if err := a.kafkaProducer.Close(); err != nil {
			a.log.Error("ошибка при закрытии kafka producer", slog.String("error", err.Error()))
		}
	}

	a.log.Info("закрытие хранилища курсов")
	if err := a.store.Close(); err != nil {
		a.log.Error("ошибка при закрытии хранилища", slog.String("error", err.Error()))
	}

	a.log.Info("приложение остановлено")
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			a.log.Error("ошибка при закрытии файла логов", slog.String("error", err.Error()))
		}
	}

	return runErr
}
