package middlew

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"currency-converter/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const (
	loggerKey contextKey = "logger"
	claimsKey contextKey = "admin_claims"
)

func WithLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := middleware.GetReqID(r.Context())
			loggerWithTrace := log.With(slog.String("trace_id", traceID))

			ctx := context.WithValue(r.Context(), loggerKey, loggerWithTrace)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// Metrics считает запросы по шаблону маршрута chi, а не по сырому пути.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			if path == "/metrics" {
				return
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			m.HTTPRequestDuration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
			m.HTTPRequestsTotal.WithLabelValues(path, r.Method, fmt.Sprintf("%dxx", status/100)).Inc()

			GetLogger(r.Context()).Debug("HTTP request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
