package models

import (
	"time"

	"github.com/google/uuid"
)

// событие об успешном обновлении курсов
type RatesRefreshedEvent struct {
	EventID       uuid.UUID `json:"event_id"`       // Уникальный ID события
	Base          string    `json:"base"`           // Базовая валюта
	CurrencyCount int       `json:"currency_count"` // Количество валют в snapshot
	AsOf          time.Time `json:"as_of"`          // Время актуальности курсов у источника
	FetchedAt     time.Time `json:"fetched_at"`     // Время получения snapshot
	// Snapshot целиком, чтобы другие экземпляры могли принять его без запроса к источнику
	Snapshot *RateSnapshot `json:"snapshot,omitempty"`
}

func NewRatesRefreshedEvent(snapshot *RateSnapshot) RatesRefreshedEvent {
	return RatesRefreshedEvent{
		EventID:       uuid.New(),
		Base:          snapshot.Base,
		CurrencyCount: len(snapshot.Rates),
		AsOf:          snapshot.AsOf,
		FetchedAt:     snapshot.FetchedAt,
		Snapshot:      snapshot,
	}
}
