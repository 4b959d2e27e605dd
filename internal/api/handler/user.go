package handler

import (
	"net/http"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/authenticating"
)

// CreateUser cadastra um usuário do dashboard. Rota só de administradores.
func CreateUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateUserRequest
		if !decodeBody(w, r, &req) {
			return
		}

		user, err := service.CreateUser(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar usuário")
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, user)
	}
}

// GetUser retorna o perfil de um usuário por ID
func GetUser(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := service.GetUserProfile(r.Context(), pathID(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar usuário")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, user)
	}
}
