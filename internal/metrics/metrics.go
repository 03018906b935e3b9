package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RefreshTotal     *prometheus.CounterVec
	RefreshDuration  prometheus.Histogram
	FreshnessTotal   *prometheus.CounterVec
	ConversionsTotal *prometheus.CounterVec
	StoreErrorsTotal *prometheus.CounterVec
	SnapshotAge      prometheus.Gauge
}

// New регистрирует метрики в reg. В тестах передавайте prometheus.NewRegistry(),
// чтобы повторная регистрация не паниковала.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		RefreshTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rates_refresh_total",
				Help: "Rate source refresh attempts by result",
			},
			[]string{"result"},
		),

		RefreshDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rates_refresh_duration_seconds",
				Help:    "Duration of rate source refreshes in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		FreshnessTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rates_freshness_checks_total",
				Help: "Freshness decisions by resulting cache status",
			},
			[]string{"status"},
		),

		ConversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversions_total",
				Help: "Currency conversions by result",
			},
			[]string{"result"},
		),

		StoreErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rates_store_errors_total",
				Help: "Swallowed key-value store errors by operation",
			},
			[]string{"op"},
		),

		SnapshotAge: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rates_snapshot_age_seconds",
				Help: "Age of the stored rate snapshot at the last freshness check",
			},
		),
	}
}
