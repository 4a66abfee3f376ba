package domain

import "github.com/golang-jwt/jwt/v5"

// Claims emitidas pelo serviço de autenticação
type Claims struct {
	UserID     int    `json:"user_id"`
	UserRoleID int    `json:"role_id"`
	BusinessID string `json:"business_id"`
	jwt.RegisteredClaims
}
