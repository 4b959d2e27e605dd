package handler

import (
	"net/http"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/tasking"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
)

// ListTasks aceita filtros separados por vírgula: ?status=todo,review&priority=high
func ListTasks(service tasking.TaskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filters := domain.TaskFilters{
			Assignee:  query.Get("assignee"),
			ProjectID: query.Get("project_id"),
			SectionID: query.Get("section_id"),
			Source:    query.Get("source"),
		}

		for _, status := range splitQuery(r, "status") {
			filters.Status = append(filters.Status, domain.TaskStatus(status))
		}
		for _, priority := range splitQuery(r, "priority") {
			filters.Priority = append(filters.Priority, domain.TaskPriority(priority))
		}

		var err error
		if filters.DueFrom, err = queryDate(r, "due_from"); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro due_from deve estar no formato YYYY-MM-DD", nil)
			return
		}
		if filters.DueTo, err = queryDate(r, "due_to"); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro due_to deve estar no formato YYYY-MM-DD", nil)
			return
		}

		tasks, err := service.ListTasks(r.Context(), filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar tarefas")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, tasks)
	}
}

func GetTask(service tasking.TaskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		task, err := service.GetTask(r.Context(), pathID(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar tarefa")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, task)
	}
}

func CreateTask(service tasking.TaskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateTaskRequest
		if !decodeBody(w, r, &req) {
			return
		}

		task, err := service.CreateTask(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar tarefa")
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, task)
	}
}

func UpdateTask(service tasking.TaskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateTaskRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathID(r)

		task, err := service.UpdateTask(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar tarefa")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, task)
	}
}

func DeleteTask(service tasking.TaskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteTask(r.Context(), pathID(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao remover tarefa")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
