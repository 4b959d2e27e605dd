package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/opsboard-api/pkg/log"
)

type HealthcheckResponse struct {
	Status string    `json:"status"`
	Mode   string    `json:"mode"`
	Time   time.Time `json:"time"`
}

// HealthcheckHandler informa também se a API está no modo demo ou com banco real
func HealthcheckHandler(mode string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(HealthcheckResponse{
			Status: "ok",
			Mode:   mode,
			Time:   time.Now().UTC(),
		})
		if err != nil {
			log.L.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
