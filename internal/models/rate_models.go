package models

import (
	"math"
	"sort"
	"time"
)

// CacheStatus результат проверки свежести кэша. Не хранится, вычисляется на каждый запрос.
type CacheStatus string

const (
	StatusFresh       CacheStatus = "fresh"
	StatusRefreshed   CacheStatus = "refreshed"
	StatusStale       CacheStatus = "stale"
	StatusMissing     CacheStatus = "missing"
	StatusFetchFailed CacheStatus = "fetch_failed"
)

// Usable сообщает, есть ли у вызывающего данные для конвертации.
func (s CacheStatus) Usable() bool {
	return s == StatusFresh || s == StatusRefreshed || s == StatusStale
}

func (s CacheStatus) String() string {
	return string(s)
}

// RateData то, что отдаёт источник курсов за один запрос.
type RateData struct {
	Base  string
	Rates map[string]float64
	Names map[string]string
	AsOf  time.Time
}

// RateSnapshot один полученный набор курсов вместе со временем получения.
// После создания не изменяется; новый fetch создаёт новый snapshot целиком.
type RateSnapshot struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Names     map[string]string  `json:"names,omitempty"`
	AsOf      time.Time          `json:"as_of"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Valid проверяет инвариант хранимого snapshot: непустые курсы, каждый конечный и положительный.
func (s *RateSnapshot) Valid() bool {
	if s == nil || len(s.Rates) == 0 || s.FetchedAt.IsZero() {
		return false
	}
	for _, rate := range s.Rates {
		if !ValidRate(rate) {
			return false
		}
	}
	return true
}

func (s *RateSnapshot) Age(now time.Time) time.Duration {
	age := now.Sub(s.FetchedAt)
	if age < 0 {
		return 0
	}
	return age
}

// Name возвращает отображаемое имя валюты, по умолчанию сам код.
func (s *RateSnapshot) Name(code string) string {
	if name, ok := s.Names[code]; ok && name != "" {
		return name
	}
	return code
}

// Currencies список валют для селекторов, отсортированный по коду.
func (s *RateSnapshot) Currencies() []Currency {
	codes := make([]string, 0, len(s.Rates))
	for code := range s.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	currencies := make([]Currency, 0, len(codes))
	for _, code := range codes {
		currencies = append(currencies, Currency{Code: code, Name: s.Name(code)})
	}
	return currencies
}

func ValidRate(rate float64) bool {
	return !math.IsNaN(rate) && !math.IsInf(rate, 0) && rate > 0
}

// Currency элемент выпадающего списка валют
type Currency struct {
	Code string `json:"code" example:"EUR"`
	Name string `json:"name" example:"Euro"`
}

// ConvertRequest запрос на конвертацию
type ConvertRequest struct {
	From   string  `json:"from" example:"USD"`
	To     string  `json:"to" example:"EUR"`
	Amount float64 `json:"amount" example:"100"`
}

// Conversion результат конвертации
type Conversion struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    float64   `json:"amount"`
	Rate      float64   `json:"rate"`
	Result    float64   `json:"result"`
	Rounded   string    `json:"rounded" example:"92.00"`
	FetchedAt time.Time `json:"fetched_at"`
	// Status свежесть snapshot, по которому посчитан результат (fresh или stale).
	Status CacheStatus `json:"status" example:"fresh"`
}

// SnapshotResponse ответ с текущими курсами и статусом кэша
type SnapshotResponse struct {
	Status   CacheStatus   `json:"status" example:"fresh"`
	Snapshot *RateSnapshot `json:"snapshot,omitempty"`
}

// CurrenciesResponse ответ со списком валют
type CurrenciesResponse struct {
	Status      CacheStatus `json:"status" example:"fresh"`
	DefaultFrom string      `json:"default_from" example:"USD"`
	DefaultTo   string      `json:"default_to" example:"EUR"`
	Currencies  []Currency  `json:"currencies"`
}

// RefreshResponse ответ на ручное обновление курсов
type RefreshResponse struct {
	Status    CacheStatus `json:"status" example:"refreshed"`
	FetchedAt *time.Time  `json:"fetched_at,omitempty"`
}
