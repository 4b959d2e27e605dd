package handler

import (
	"net/http"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/clienting"
)

func ListClients(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var statuses []domain.ClientStatus
		for _, status := range splitQuery(r, "status") {
			statuses = append(statuses, domain.ClientStatus(status))
		}

		clients, err := service.ListClients(r.Context(), statuses)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar clientes")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, clients)
	}
}

func GetClient(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := service.GetClient(r.Context(), pathID(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar cliente")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, client)
	}
}

func CreateClient(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateClientRequest
		if !decodeBody(w, r, &req) {
			return
		}

		client, err := service.CreateClient(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar cliente")
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, client)
	}
}

func UpdateClient(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateClientRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathID(r)

		client, err := service.UpdateClient(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar cliente")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, client)
	}
}

func DeleteClient(service clienting.ClientService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteClient(r.Context(), pathID(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao remover cliente")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
