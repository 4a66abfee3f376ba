package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/restaurant-inventory-api/pkg/apiErrors"
)

// Constantes para identificar os roles
const (
	RoleOwner   = 1
	RoleManager = 2
	RoleStaff   = 3
)

// RoleMiddleware cria um middleware que restringe o acesso com base nos roles.
// Com a autenticação desabilitada não há claims e o acesso é liberado.
func RoleMiddleware(allowedRoles []int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims := ClaimsFromContext(r.Context())
			if userClaims == nil {
				next.ServeHTTP(w, r)
				return
			}

			isAllowed := false
			for _, role := range allowedRoles {
				if userClaims.UserRoleID == role {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				logrus.Warningf("Acesso negado para usuário ID=%d, Role=%d", userClaims.UserID, userClaims.UserRoleID)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// OwnerOrManager protege as rotas que alteram categorias
func OwnerOrManager() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{RoleOwner, RoleManager})
}

func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{RoleOwner, RoleManager, RoleStaff})
}
