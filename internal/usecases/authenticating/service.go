// Package authenticating valida os tokens emitidos pelo serviço de autenticação.
// Este serviço não emite tokens nem guarda senhas.
package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/restaurant-inventory-api/internal/config"
	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
	"github.com/vfg2006/restaurant-inventory-api/pkg/apiErrors"
)

type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
	Enabled() bool
}

type Service struct {
	secret   []byte
	disabled bool
}

func NewService(cfg config.Auth) (*Service, error) {
	if !cfg.Disabled && cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	return &Service{secret: []byte(cfg.Secret), disabled: cfg.Disabled}, nil
}

func (s *Service) Enabled() bool {
	return !s.disabled
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if tokenString == "" {
		return nil, NewAuthError(ErrMissingToken, apiErrors.ErrInvalidToken, "Token de acesso é obrigatório")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	return claims, nil
}

// SignToken gera um token HS256; usado pelos testes e por ferramentas internas de suporte
func SignToken(secret string, claims domain.Claims, ttl time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
