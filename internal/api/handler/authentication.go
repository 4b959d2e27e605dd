package handler

import (
	"net/http"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"github.com/vfg2006/opsboard-api/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type GeneratePasswordResponse struct {
	Password string `json:"password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			handleLoginError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, LoginResponse{Token: token})
	}
}

// handleLoginError não devolve detalhes do usuário para não vazar quais emails existem
func handleLoginError(w http.ResponseWriter, r *http.Request, err error) {
	log.ForContext(r.Context()).WithError(err).Warn("Falha no login")

	switch {
	case authenticating.IsCredentialsError(err):
		code, _ := errorCode(err)
		apiErrors.WriteError(w, code, "Credenciais inválidas", nil)
	default:
		writeServiceError(w, r, err, "Erro interno ao realizar login")
	}
}

// Logout revoga o token usado na própria requisição
func Logout(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.Logout(middleware.TokenFromContext(r.Context())); err != nil {
			writeServiceError(w, r, err, "Erro ao encerrar sessão")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), userClaims.UserID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao obter dados do usuário")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, user)
	}
}

func UpdateMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.UpdateProfileRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = userClaims.UserID

		user, err := service.UpdateProfile(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar perfil")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, user)
	}
}

// ChangePassword altera a senha do próprio usuário logado
func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Não autorizado", nil)
			return
		}

		var req ChangePasswordRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := service.ChangePassword(r.Context(), userClaims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
			writeServiceError(w, r, err, "Erro ao alterar senha")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GeneratePassword gera uma senha nova para outro usuário. Rota só de administradores.
func GeneratePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Não autorizado", nil)
			return
		}

		newPassword, err := service.GenerateStrongPassword(r.Context(), userClaims.UserID, pathID(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar senha")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, GeneratePasswordResponse{Password: newPassword})
	}
}
