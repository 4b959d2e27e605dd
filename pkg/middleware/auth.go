package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
)

type contextKey string

const (
	ContextKeyUser  contextKey = "user"
	ContextKeyToken contextKey = "token"
)

const (
	WebhookTaskPath      = "/webhook/task"
	WebhookTaskAliasPath = "/functions/v1/task-webhook"
)

// rotas que não exigem sessão; o webhook se autentica pelo segredo compartilhado
var publicPaths = map[string]bool{
	"/healthcheck":       true,
	"/v1/login":          true,
	WebhookTaskPath:      true,
	WebhookTaskAliasPath: true,
}

// IsWebhookPath indica se o caminho pertence ao webhook de tarefas
func IsWebhookPath(path string) bool {
	return path == WebhookTaskPath || path == WebhookTaskAliasPath
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Cabeçalho Authorization é obrigatório", nil)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader || tokenString == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Token Bearer é obrigatório", nil)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				logger := log.ForContext(r.Context()).WithError(err)
				if authenticating.IsAuthorizationError(err) {
					logger.Debug("Token rejeitado")
				} else {
					logger.Warn("Falha inesperada ao validar token")
				}

				code := apiErrors.ErrInvalidToken
				if errors.Is(err, authenticating.ErrExpiredToken) {
					code = apiErrors.ErrExpiredToken
				}
				apiErrors.WriteError(w, code, "Token inválido ou expirado", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			ctx = context.WithValue(ctx, ContextKeyToken, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext devolve o usuário autenticado da requisição
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*domain.Claims)
	return claims, ok && claims != nil
}

// TokenFromContext devolve o token usado na requisição, usado pelo logout
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(ContextKeyToken).(string)
	return token
}
