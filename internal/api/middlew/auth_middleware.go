package middlew

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"currency-converter/internal/custom_err"
	"currency-converter/internal/models"
	"currency-converter/pkg/response"

	"github.com/golang-jwt/jwt/v5"
)

// ValidateAdminToken проверяет HS256 токен и роль admin.
func ValidateAdminToken(tokenString string, secret []byte) (*models.AdminClaims, error) {
	claims := &models.AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, custom_err.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, custom_err.ErrTokenNotActive
		}
		return nil, custom_err.ErrInvalidToken
	}

	if !token.Valid {
		return nil, custom_err.ErrInvalidToken
	}

	if claims.Role != models.RoleAdmin {
		return nil, custom_err.ErrForbidden
	}

	return claims, nil
}

// RequireAdmin пускает только запросы с валидным admin токеном.
// Пустой secret закрывает эндпоинт полностью.
func RequireAdmin(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := GetLogger(r.Context())

			if len(key) == 0 {
				log.Warn("admin endpoint disabled: ADMIN_JWT_SECRET is not set")
				response.WriteJSONError(w, log, http.StatusForbidden, "forbidden", "Admin access is disabled")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "Authorization header is required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				log.Warn("invalid authorization header format")
				response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthorized", "Invalid authorization header format")
				return
			}

			claims, err := ValidateAdminToken(parts[1], key)
			if err != nil {
				switch {
				case errors.Is(err, custom_err.ErrTokenExpired):
					response.WriteJSONError(w, log, http.StatusUnauthorized, "token_expired", "Token has expired")
				case errors.Is(err, custom_err.ErrTokenNotActive):
					response.WriteJSONError(w, log, http.StatusUnauthorized, "token_not_active", "Token not yet active")
				case errors.Is(err, custom_err.ErrForbidden):
					log.Warn("token without admin role")
					response.WriteJSONError(w, log, http.StatusForbidden, "forbidden", "Admin role required")
				default:
					response.WriteJSONError(w, log, http.StatusUnauthorized, "invalid_token", "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			loggerWithSubject := log.With(slog.String("subject", claims.Subject))
			ctx = context.WithValue(ctx, loggerKey, loggerWithSubject)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAdminClaims(ctx context.Context) (*models.AdminClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*models.AdminClaims)
	return claims, ok
}
