package models

import "github.com/golang-jwt/jwt/v5"

const RoleAdmin = "admin"

// AdminClaims claims токена для служебных эндпоинтов. Токен выпускается вне сервиса.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
