package custom_err

import "errors"

var (
	// Storage errors
	ErrNotFound = errors.New("resource not found")

	// Rate source errors
	ErrNetwork     = errors.New("network error")
	ErrBadResponse = errors.New("bad response from rate source")

	// Conversion errors
	ErrNoData          = errors.New("no exchange rates data available")
	ErrMissingCurrency = errors.New("currency not found in rates")
	ErrInvalidAmount   = errors.New("invalid amount")

	// Admin token errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenNotActive = errors.New("token not active yet")
	ErrForbidden      = errors.New("forbidden")
)
