package handler

import (
	"net/http"

	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/internal/usecases/pipeline"
)

func ListDeals(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := domain.DealFilters{AssignedTo: r.URL.Query().Get("assigned_to")}
		for _, stage := range splitQuery(r, "stage") {
			filters.Stage = append(filters.Stage, domain.DealStage(stage))
		}

		deals, err := service.ListDeals(r.Context(), filters)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar negócios")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, deals)
	}
}

func GetDeal(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deal, err := service.GetDeal(r.Context(), pathID(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar negócio")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, deal)
	}
}

func CreateDeal(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateDealRequest
		if !decodeBody(w, r, &req) {
			return
		}

		deal, err := service.CreateDeal(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar negócio")
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, deal)
	}
}

func UpdateDeal(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.UpdateDealRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.ID = pathID(r)

		deal, err := service.UpdateDeal(r.Context(), &req)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar negócio")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, deal)
	}
}

func DeleteDeal(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteDeal(r.Context(), pathID(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao remover negócio")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// PipelineBoard devolve o quadro com uma coluna por estágio
func PipelineBoard(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		board, err := service.Board(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar o pipeline")
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, board)
	}
}
