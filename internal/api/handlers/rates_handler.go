package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"currency-converter/internal/api/middlew"
	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"
	"currency-converter/internal/service"
	"currency-converter/pkg/response"
)

type RatesHandler struct {
	service     service.RateCache
	defaultFrom string
	defaultTo   string
}

func NewRatesHandler(service service.RateCache, defaultFrom, defaultTo string) *RatesHandler {
	return &RatesHandler{
		service:     service,
		defaultFrom: defaultFrom,
		defaultTo:   defaultTo,
	}
}

// GetRates godoc
// @Summary      Текущие курсы
// @Description  Возвращает сохранённый snapshot курсов и его свежесть. Сеть не используется.
// @Tags         rates
// @Produce      json
// @Success      200 {object} models.SnapshotResponse
// @Router       /rates [get]
func (h *RatesHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	log := middlew.GetLogger(r.Context())

	snapshot, status := h.service.GetCurrentSnapshot(r.Context())

	response.WriteJSONSuccess(w, log, http.StatusOK, models.SnapshotResponse{
		Status:   status,
		Snapshot: snapshot,
	})
}

// GetCurrencies godoc
// @Summary      Список валют
// @Description  Валюты для выбора, отсортированные по коду, и пара по умолчанию
// @Tags         rates
// @Produce      json
// @Success      200 {object} models.CurrenciesResponse
// @Router       /currencies [get]
func (h *RatesHandler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	log := middlew.GetLogger(r.Context())

	currencies, status := h.service.Currencies(r.Context())

	response.WriteJSONSuccess(w, log, http.StatusOK, models.CurrenciesResponse{
		Status:      status,
		DefaultFrom: h.defaultFrom,
		DefaultTo:   h.defaultTo,
		Currencies:  currencies,
	})
}

// Convert godoc
// @Summary      Конвертировать сумму
// @Description  Считает amount / rates[from] * rates[to] по сохранённому snapshot
// @Tags         rates
// @Accept       json
// @Produce      json
// @Param        request body models.ConvertRequest true "Данные конвертации"
// @Success      200 {object} models.Conversion
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      503 {object} response.ErrorResponse
// @Router       /convert [post]
func (h *RatesHandler) Convert(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Convert"
	log := middlew.GetLogger(r.Context())

	defer r.Body.Close()

	var req models.ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	from := strings.ToUpper(strings.TrimSpace(req.From))
	to := strings.ToUpper(strings.TrimSpace(req.To))
	if from == "" {
		from = h.defaultFrom
	}
	if to == "" {
		to = h.defaultTo
	}

	result, err := h.service.Convert(r.Context(), req.Amount, from, to)
	if err != nil {
		switch {
		case errors.Is(err, custom_err.ErrInvalidAmount):
			log.Info("invalid amount", slog.String("op", op), slog.Float64("amount", req.Amount))
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_amount", "Please enter a valid amount")
		case errors.Is(err, custom_err.ErrNoData):
			log.Warn("no rates data", slog.String("op", op))
			response.WriteJSONCacheError(w, log, http.StatusServiceUnavailable, "no_data",
				"No exchange rates data available", models.StatusMissing.String())
		case errors.Is(err, custom_err.ErrMissingCurrency):
			log.Info("currency not found", slog.String("op", op), slog.String("from", from), slog.String("to", to))
			response.WriteJSONError(w, log, http.StatusNotFound, "missing_currency", err.Error())
		default:
			log.Error("failed to convert", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "An internal error occurred")
		}
		return
	}

	log.Info("конвертация",
		slog.String("op", op),
		slog.String("from", from),
		slog.String("to", to),
		slog.Float64("amount", req.Amount),
		slog.String("result", result.Rounded),
		slog.String("status", result.Status.String()))

	response.WriteJSONSuccess(w, log, http.StatusOK, result)
}

// Refresh godoc
// @Summary      Принудительно обновить курсы
// @Description  Запрашивает источник независимо от возраста snapshot
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} models.RefreshResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      502 {object} response.ErrorResponse
// @Failure      503 {object} response.ErrorResponse
// @Router       /rates/refresh [post]
func (h *RatesHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Refresh"
	log := middlew.GetLogger(r.Context())

	snapshot, err := h.service.Refresh(r.Context())
	if err != nil {
		if current, _ := h.service.GetCurrentSnapshot(r.Context()); current != nil {
			log.Warn("refresh failed, serving stale rates", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONCacheError(w, log, http.StatusBadGateway, "refresh_failed",
				"Using offline rates due to connection issue", models.StatusStale.String())
			return
		}
		log.Error("refresh failed, no rates stored", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONCacheError(w, log, http.StatusServiceUnavailable, "no_data",
			"No exchange rates data available", models.StatusFetchFailed.String())
		return
	}

	fetchedAt := snapshot.FetchedAt
	resp := models.RefreshResponse{Status: models.StatusRefreshed, FetchedAt: &fetchedAt}

	log.Info("курсы обновлены вручную", slog.String("op", op), slog.Time("fetched_at", fetchedAt))
	response.WriteJSONSuccess(w, log, http.StatusOK, resp)
}

// Health liveness для оркестратора, в swagger не входит.
func Health(w http.ResponseWriter, r *http.Request) {
	response.WriteJSONSuccess(w, middlew.GetLogger(r.Context()), http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
