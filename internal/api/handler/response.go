package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/opsboard-api/internal/usecases/clienting"
	"github.com/vfg2006/opsboard-api/internal/usecases/noting"
	"github.com/vfg2006/opsboard-api/internal/usecases/pipeline"
	"github.com/vfg2006/opsboard-api/internal/usecases/projecting"
	"github.com/vfg2006/opsboard-api/internal/usecases/reporting"
	"github.com/vfg2006/opsboard-api/internal/usecases/staffing"
	"github.com/vfg2006/opsboard-api/internal/usecases/tasking"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao enviar resposta")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.ForContext(r.Context()).WithError(err).Debug("Corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}
	return true
}

func pathID(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}

// errorCode extrai o código de API dos erros ricos de cada caso de uso
func errorCode(err error) (string, bool) {
	var (
		taskErr    *tasking.TaskError
		dealErr    *pipeline.DealError
		clientErr  *clienting.ClientError
		teamErr    *staffing.TeamError
		noteErr    *noting.NoteError
		projectErr *projecting.ProjectError
		reportErr  *reporting.ReportError
		authErr    *authenticating.AuthError
	)

	switch {
	case errors.As(err, &taskErr):
		return taskErr.Code, true
	case errors.As(err, &dealErr):
		return dealErr.Code, true
	case errors.As(err, &clientErr):
		return clientErr.Code, true
	case errors.As(err, &teamErr):
		return teamErr.Code, true
	case errors.As(err, &noteErr):
		return noteErr.Code, true
	case errors.As(err, &projectErr):
		return projectErr.Code, true
	case errors.As(err, &reportErr):
		return reportErr.Code, true
	case errors.As(err, &authErr):
		return authErr.Code, true
	}
	return "", false
}

// writeServiceError traduz o erro do caso de uso para o envelope padrão.
// Erros sem código viram SRV_001 com a mensagem genérica.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	code, ok := errorCode(err)
	if !ok {
		log.ForContext(r.Context()).WithError(err).Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
		return
	}

	if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
		log.ForContext(r.Context()).WithError(err).Error(fallback)
	}
	apiErr := apiErrors.FromError(err, code)
	apiErrors.WriteError(w, apiErr.Code, apiErr.Message, nil)
}

func splitQuery(r *http.Request, key string) []string {
	raw := r.URL.Query().Get(key)
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var values []string
	for _, value := range strings.Split(raw, ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	return values
}

func queryDate(r *http.Request, key string) (*domain.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}

	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// queryPeriod lê from/to; sem nenhum dos dois o serviço usa o mês corrente
func queryPeriod(w http.ResponseWriter, r *http.Request) (*domain.DateRange, bool) {
	from, err := queryDate(r, "from")
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro from deve estar no formato YYYY-MM-DD", nil)
		return nil, false
	}
	to, err := queryDate(r, "to")
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro to deve estar no formato YYYY-MM-DD", nil)
		return nil, false
	}

	switch {
	case from == nil && to == nil:
		return nil, true
	case from == nil || to == nil:
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe from e to juntos", nil)
		return nil, false
	}

	return &domain.DateRange{From: *from, To: *to}, true
}
