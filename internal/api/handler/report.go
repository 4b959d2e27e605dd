package handler

import (
	"net/http"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/reporting"
)

func ListKPILogs(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, ok := queryPeriod(w, r)
		if !ok {
			return
		}

		logs, err := service.ListKPILogs(r.Context(), period)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar registros de KPI")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, logs)
	}
}

func CreateKPILog(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.KPILogRequest
		if !decodeBody(w, r, &req) {
			return
		}

		entry, err := service.CreateKPILog(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar registro de KPI")
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, entry)
	}
}

func UpdateKPILog(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.KPILogRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathID(r)

		entry, err := service.UpdateKPILog(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar registro de KPI")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, entry)
	}
}

func DeleteKPILog(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteKPILog(r.Context(), pathID(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao remover registro de KPI")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ListRepEntries(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, ok := queryPeriod(w, r)
		if !ok {
			return
		}

		entries, err := service.ListRepEntries(r.Context(), period)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar desempenho por vendedor")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, entries)
	}
}

func CreateRepEntry(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.RepPerformanceRequest
		if !decodeBody(w, r, &req) {
			return
		}

		entry, err := service.CreateRepEntry(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar desempenho do vendedor")
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, entry)
	}
}

func UpdateRepEntry(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.RepPerformanceRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathID(r)

		entry, err := service.UpdateRepEntry(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar desempenho do vendedor")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, entry)
	}
}

func DeleteRepEntry(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteRepEntry(r.Context(), pathID(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao remover desempenho do vendedor")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// KPIReport agrega os registros do período (padrão: mês corrente)
func KPIReport(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, ok := queryPeriod(w, r)
		if !ok {
			return
		}

		report, err := service.KPIReport(r.Context(), period)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar relatório de KPI")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, report)
	}
}

func Dashboard(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.Dashboard(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar o dashboard")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, summary)
	}
}

func Calendar(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period, ok := queryPeriod(w, r)
		if !ok {
			return
		}

		calendar, err := service.Calendar(r.Context(), period)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar o calendário")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, calendar)
	}
}
