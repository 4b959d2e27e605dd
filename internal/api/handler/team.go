package handler

import (
	"net/http"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/staffing"
)

func ListTeamMembers(service staffing.TeamService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		members, err := service.ListMembers(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar equipe")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, members)
	}
}

func GetTeamMember(service staffing.TeamService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		member, err := service.GetMember(r.Context(), pathID(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar membro da equipe")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, member)
	}
}

func CreateTeamMember(service staffing.TeamService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateTeamMemberRequest
		if !decodeBody(w, r, &req) {
			return
		}

		member, err := service.CreateMember(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar membro da equipe")
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, member)
	}
}

func UpdateTeamMember(service staffing.TeamService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateTeamMemberRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathID(r)

		member, err := service.UpdateMember(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar membro da equipe")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, member)
	}
}

func DeleteTeamMember(service staffing.TeamService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteMember(r.Context(), pathID(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao remover membro da equipe")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
