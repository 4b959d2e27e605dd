package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/noting"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
)

func ListNotes(service noting.NoteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filters := domain.NoteFilters{
			Category:     query.Get("category"),
			ProjectID:    query.Get("project_id"),
			DepartmentID: query.Get("department_id"),
		}

		if raw := query.Get("shared"); raw != "" {
			shared, err := strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro shared deve ser true ou false", nil)
				return
			}
			filters.Shared = &shared
		}

		notes, err := service.ListNotes(r.Context(), filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar notas")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, notes)
	}
}

func GetNote(service noting.NoteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		note, err := service.GetNote(r.Context(), pathID(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar nota")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, note)
	}
}

func CreateNote(service noting.NoteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateNoteRequest
		if !decodeBody(w, r, &req) {
			return
		}

		note, err := service.CreateNote(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar nota")
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, note)
	}
}

func UpdateNote(service noting.NoteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateNoteRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathID(r)

		note, err := service.UpdateNote(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar nota")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, note)
	}
}

func DeleteNote(service noting.NoteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteNote(r.Context(), pathID(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao remover nota")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
