package ratesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"
	"currency-converter/pkg/retrier"
)

const maxBodySize = 4 << 20

// Source внешний поставщик курсов.
type Source interface {
	Fetch(ctx context.Context) (*models.RateData, error)
}

type Config struct {
	RatesURL      string
	NamesURL      string
	Timeout       time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// latestRatesResponse формат exchangerate-api.com v4 /latest/{base}
type latestRatesResponse struct {
	Base            string             `json:"base"`
	Date            string             `json:"date"`
	TimeLastUpdated int64              `json:"time_last_updated"`
	Rates           map[string]float64 `json:"rates"`
}

type HTTPSource struct {
	ratesURL   string
	namesURL   string
	httpClient *http.Client
	retrier    *retrier.Retrier
	log        *slog.Logger
}

func NewHTTPSource(cfg Config, log *slog.Logger) *HTTPSource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = time.Second
	}

	return &HTTPSource{
		ratesURL: cfg.RatesURL,
		namesURL: cfg.NamesURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		retrier: retrier.New(
			retrier.WithMaxRetries(cfg.RetryAttempts-1),
			retrier.WithInitialInterval(retryDelay),
			retrier.WithRetryIf(func(err error) bool {
				return errors.Is(err, custom_err.ErrNetwork)
			}),
		),
		log: log,
	}
}

// Fetch запрашивает курсы, затем названия валют. Ошибка второго запроса не фатальна:
// возвращаются курсы без названий.
func (s *HTTPSource) Fetch(ctx context.Context) (*models.RateData, error) {
	const op = "ratesource.Fetch"

	start := time.Now()
	latest, err := retrier.DoWithData(s.retrier, ctx, s.fetchRates)
	if err != nil {
		s.log.Error("failed to fetch rates", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if duration := time.Since(start); duration > 2*time.Second {
		s.log.Warn("slow rate source request",
			slog.String("op", op),
			slog.Duration("duration", duration))
	}

	data := &models.RateData{
		Base:  strings.ToUpper(latest.Base),
		Rates: make(map[string]float64, len(latest.Rates)),
		AsOf:  asOf(latest),
	}
	for code, rate := range latest.Rates {
		data.Rates[strings.ToUpper(code)] = rate
	}

	if s.namesURL != "" {
		names, err := s.fetchNames(ctx)
		if err != nil {
			s.log.Warn("currency names unavailable, using codes",
				slog.String("op", op),
				slog.String("error", err.Error()))
		} else {
			data.Names = names
		}
	}

	return data, nil
}

func (s *HTTPSource) fetchRates(ctx context.Context) (*latestRatesResponse, error) {
	var resp latestRatesResponse
	if err := s.getJSON(ctx, s.ratesURL, &resp); err != nil {
		return nil, err
	}

	if len(resp.Rates) == 0 {
		return nil, fmt.Errorf("%w: empty rates", custom_err.ErrBadResponse)
	}
	for code, rate := range resp.Rates {
		if !models.ValidRate(rate) {
			return nil, fmt.Errorf("%w: invalid rate %v for %s", custom_err.ErrBadResponse, rate, code)
		}
	}

	return &resp, nil
}

func (s *HTTPSource) fetchNames(ctx context.Context) (map[string]string, error) {
	raw := make(map[string]string)
	if err := s.getJSON(ctx, s.namesURL, &raw); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(raw))
	for code, name := range raw {
		names[strings.ToUpper(code)] = name
	}
	return names, nil
}

func (s *HTTPSource) getJSON(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", custom_err.ErrBadResponse, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", custom_err.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", custom_err.ErrBadResponse, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", custom_err.ErrBadResponse, err)
	}

	return nil
}

func asOf(resp *latestRatesResponse) time.Time {
	if resp.TimeLastUpdated > 0 {
		return time.Unix(resp.TimeLastUpdated, 0).UTC()
	}
	if date, err := time.Parse("2006-01-02", resp.Date); err == nil {
		return date
	}
	return time.Time{}
}

var _ Source = (*HTTPSource)(nil)
