package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/ingesting"
	"github.com/vfg2006/opsboard-api/pkg/log"
)

const (
	webhookAllowHeaders  = "authorization, x-client-info, apikey, content-type"
	webhookAllowMethods  = "POST, OPTIONS"
	webhookSuccessMsg    = "Task created successfully"
	webhookInternalError = "Internal server error"
)

func setWebhookCors(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", webhookAllowHeaders)
	w.Header().Set("Access-Control-Allow-Methods", webhookAllowMethods)
}

// WebhookPreflight responde o preflight CORS do webhook
func WebhookPreflight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setWebhookCors(w)
		w.WriteHeader(http.StatusOK)
	}
}

// WebhookTask recebe tarefas de integrações externas. As respostas seguem o
// contrato público do webhook, não o envelope de erro da API.
func WebhookTask(service ingesting.Ingester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setWebhookCors(w)
		logger := log.ForContext(r.Context())

		var payload domain.WebhookTaskPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			logger.WithError(err).Warn("Corpo do webhook inválido")
			writeJSON(r.Context(), w, http.StatusInternalServerError, domain.WebhookErrorResponse{Error: webhookInternalError})
			return
		}

		task, err := service.IngestTask(r.Context(), &payload)
		if err != nil {
			status, body := webhookError(err)
			if status >= http.StatusInternalServerError {
				logger.WithError(err).Error("Erro ao ingerir tarefa do webhook")
			} else {
				logger.WithError(err).Warn("Webhook rejeitado")
			}
			writeJSON(r.Context(), w, status, body)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, domain.WebhookTaskResponse{
			Success: true,
			Message: webhookSuccessMsg,
			Task:    *task,
		})
	}
}

func webhookError(err error) (int, domain.WebhookErrorResponse) {
	var ingestErr *ingesting.IngestError

	switch {
	case errors.Is(err, ingesting.ErrInvalidSecret):
		return http.StatusUnauthorized, domain.WebhookErrorResponse{Error: ingesting.ErrInvalidSecret.Error()}
	case errors.Is(err, ingesting.ErrTitleRequired):
		return http.StatusBadRequest, domain.WebhookErrorResponse{Error: ingesting.ErrTitleRequired.Error()}
	case errors.As(err, &ingestErr) && errors.Is(err, ingesting.ErrCreateTask):
		return http.StatusInternalServerError, domain.WebhookErrorResponse{
			Error:   ingesting.ErrCreateTask.Error(),
			Details: ingestErr.Details,
		}
	default:
		return http.StatusInternalServerError, domain.WebhookErrorResponse{Error: webhookInternalError}
	}
}
