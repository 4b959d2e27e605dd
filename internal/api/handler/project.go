package handler

import (
	"net/http"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/projecting"
)

func ListProjects(service projecting.ProjectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := service.ListProjects(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar projetos")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, projects)
	}
}

// GetProject devolve o projeto com as seções ordenadas por posição
func GetProject(service projecting.ProjectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tree, err := service.GetProject(r.Context(), pathID(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar projeto")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, tree)
	}
}

func CreateProject(service projecting.ProjectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateProjectRequest
		if !decodeBody(w, r, &req) {
			return
		}

		project, err := service.CreateProject(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar projeto")
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, project)
	}
}

func UpdateProject(service projecting.ProjectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateProjectRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathID(r)

		project, err := service.UpdateProject(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar projeto")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, project)
	}
}

func DeleteProject(service projecting.ProjectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteProject(r.Context(), pathID(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao remover projeto")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func CreateSection(service projecting.ProjectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateSectionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ProjectID = pathID(r)

		section, err := service.CreateSection(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar seção")
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, section)
	}
}

func UpdateSection(service projecting.ProjectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateSectionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathID(r)

		section, err := service.UpdateSection(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar seção")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, section)
	}
}

func DeleteSection(service projecting.ProjectService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteSection(r.Context(), pathID(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao remover seção")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
