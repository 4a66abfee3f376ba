package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vfg2006/restaurant-inventory-api/internal/domain"
	"github.com/vfg2006/restaurant-inventory-api/internal/usecases/authenticating"
	"github.com/vfg2006/restaurant-inventory-api/pkg/apiErrors"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// Rotas abertas mesmo com autenticação habilitada
var publicPaths = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

// AuthMiddleware aceita o token no cabeçalho Authorization ou, para o EventSource do navegador,
// no parâmetro access_token
func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authService.Enabled() || publicPaths[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := bearerToken(r)
			if tokenString == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token de acesso é obrigatório", nil)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				var authErr *authenticating.AuthError
				if errors.As(err, &authErr) {
					apiErrors.WriteError(w, authErr.Code, authErr.Details, nil)
					return
				}
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token inválido", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return ""
		}
		return tokenString
	}
	return r.URL.Query().Get("access_token")
}

// ClaimsFromContext devolve as claims do token, ou nil quando a autenticação está desabilitada
func ClaimsFromContext(ctx context.Context) *domain.Claims {
	claims, _ := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims
}
