package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error" example:"missing_currency"`
	Message string `json:"message,omitempty"`
	// Status повторяет CacheStatus, когда ошибка связана с состоянием кэша курсов.
	Status string `json:"status,omitempty" example:"missing"`
}

func WriteJSONError(w http.ResponseWriter, log *slog.Logger, status int, errCode, message string) {
	writeJSON(w, log, status, ErrorResponse{Error: errCode, Message: message})
}

// WriteJSONCacheError то же, что WriteJSONError, но дополнительно сообщает статус кэша.
func WriteJSONCacheError(w http.ResponseWriter, log *slog.Logger, status int, errCode, message, cacheStatus string) {
	writeJSON(w, log, status, ErrorResponse{Error: errCode, Message: message, Status: cacheStatus})
}

func WriteJSONSuccess(w http.ResponseWriter, log *slog.Logger, status int, data any) {
	if data == nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		return
	}
	writeJSON(w, log, status, data)
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}
