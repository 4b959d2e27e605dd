package middleware

import (
	"net/http"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
)

// RoleMiddleware restringe o acesso aos perfis informados
func RoleMiddleware(allowedRoles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := ClaimsFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).Warn("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			for _, role := range allowedRoles {
				if userClaims.UserRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.ForContext(r.Context()).WithFields(log.Fields{
				"user_id":   userClaims.UserID,
				"user_role": userClaims.UserRole,
			}).Warn("Acesso negado")
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
		})
	}
}

// AdminOnly permite acesso apenas para administradores
func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.UserRoleAdmin)
}

// AllRoles permite acesso a qualquer usuário autenticado
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware(domain.UserRoleAdmin, domain.UserRoleMember)
}
