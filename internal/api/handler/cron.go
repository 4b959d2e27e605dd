package handler

import (
	"net/http"

	"github.com/vfg2006/opsboard-api/pkg/log"
)

const CronJobTypeDemoReset = "demo-reset"

// CronJob é uma tarefa agendada que também pode ser disparada manualmente
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices liga o nome usado na URL ao job correspondente
type CronJobServices map[string]CronJob

// RunCronJob executa manualmente a cron job indicada
func RunCronJob(cronType string, job CronJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.ForContext(r.Context()).WithField("cron_type", cronType).Info("Execução manual de cron job solicitada")

		if !job.TriggerManualSync() {
			writeJSON(r.Context(), w, http.StatusConflict, map[string]any{
				"message": "Cron job já está em execução",
				"type":    cronType,
			})
			return
		}

		writeJSON(r.Context(), w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, job := range services {
			if job != nil {
				status[name] = job.GetStatus()
			}
		}

		writeJSON(r.Context(), w, http.StatusOK, status)
	}
}
