package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"currency-converter/internal/app"
	"currency-converter/internal/config"
	"currency-converter/internal/ratesource"
	"currency-converter/internal/service"
	"currency-converter/internal/tui"
	"currency-converter/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

// run возвращает код выхода. os.Exit вызывается только в main.
func run(ctx context.Context) int {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки конфигурации: %v\n", err)
		return 1
	}

	// stdout занят формами, поэтому логи только в файл.
	loggerWithFile := logger.NewFileLogger(cfg.Log.File, cfg.Log.Level)
	defer loggerWithFile.LogFile.Close()
	logg := loggerWithFile.Logger

	store, err := app.OpenStore(ctx, cfg, logg)
	if err != nil {
		logg.Error("ошибка открытия хранилища", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Ошибка открытия хранилища: %v\n", err)
		return 1
	}
	defer store.Close()

	source := ratesource.NewHTTPSource(ratesource.Config{
		RatesURL:      cfg.Rates.URL,
		NamesURL:      cfg.Rates.NamesURL,
		Timeout:       cfg.Rates.Timeout,
		RetryAttempts: cfg.Rates.RetryAttempts,
		RetryDelay:    cfg.Rates.RetryDelay,
	}, logg)

	cache := service.NewRateCacheManager(store, source, logg,
		service.WithKey(cfg.Storage.Key),
		service.WithMaxAge(cfg.Rates.MaxAge),
	)

	converter := tui.NewConverter(cache, cfg.Rates.MaxAge, cfg.Rates.DefaultFrom, cfg.Rates.DefaultTo, os.Stdout)
	if err := converter.Run(ctx); err != nil {
		logg.Error("ошибка конвертера", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		return 1
	}

	return 0
}
