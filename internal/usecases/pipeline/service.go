package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/vfg2006/opsboard-api/infrastructure/repository"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"github.com/vfg2006/opsboard-api/pkg/utils"
)

type PipelineService interface {
	CreateDeal(ctx context.Context, req *domain.CreateDealRequest) (*domain.Deal, error)
	UpdateDeal(ctx context.Context, req *domain.UpdateDealRequest) (*domain.Deal, error)
	GetDeal(ctx context.Context, id string) (*domain.Deal, error)
	ListDeals(ctx context.Context, filters domain.DealFilters) ([]*domain.Deal, error)
	DeleteDeal(ctx context.Context, id string) error
	Board(ctx context.Context) (*domain.PipelineBoard, error)
}

type Service struct {
	dealRepo repository.DealRepository
	now      func() time.Time
}

func NewService(dealRepo repository.DealRepository) PipelineService {
	return &Service{
		dealRepo: dealRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) CreateDeal(ctx context.Context, req *domain.CreateDealRequest) (*domain.Deal, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, NewDealError(ErrTitleRequired, apiErrors.ErrMissingRequiredData, "Título é obrigatório")
	}

	stage := req.Stage
	if stage == "" {
		stage = domain.DealStageLead
	}
	if !stage.IsValid() {
		return nil, NewDealError(ErrInvalidStage, apiErrors.ErrInvalidValue, string(stage))
	}
	if req.Value < 0 {
		return nil, NewDealError(ErrInvalidValue, apiErrors.ErrInvalidValue, "")
	}

	now := s.now()
	deal := &domain.Deal{
		ID:          utils.GenerateID(),
		Title:       title,
		Value:       utils.RoundWithTwoDecimalPlace(req.Value),
		Stage:       stage,
		ClientName:  utils.NullIfBlank(req.ClientName),
		ClientEmail: utils.NullIfBlank(req.ClientEmail),
		Source:      utils.NullIfBlank(req.Source),
		AssignedTo:  utils.NullIfBlank(req.AssignedTo),
		Notes:       utils.NullIfBlank(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.dealRepo.Create(ctx, deal); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao criar negócio")
		return nil, NewDealError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar negócio")
	}

	return deal, nil
}

// UpdateDeal não restringe transições de estágio; mover o card é só trocar o stage
func (s *Service) UpdateDeal(ctx context.Context, req *domain.UpdateDealRequest) (*domain.Deal, error) {
	deal, err := s.GetDeal(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, NewDealErrorWithID(ErrTitleRequired, apiErrors.ErrMissingRequiredData, deal.ID, "Título não pode ser vazio")
		}
		deal.Title = title
	}
	if req.Stage != nil {
		if !req.Stage.IsValid() {
			return nil, NewDealErrorWithID(ErrInvalidStage, apiErrors.ErrInvalidValue, deal.ID, string(*req.Stage))
		}
		deal.Stage = *req.Stage
	}
	if req.Value != nil {
		if *req.Value < 0 {
			return nil, NewDealErrorWithID(ErrInvalidValue, apiErrors.ErrInvalidValue, deal.ID, "")
		}
		deal.Value = utils.RoundWithTwoDecimalPlace(*req.Value)
	}
	if req.ClientName != nil {
		deal.ClientName = utils.NullIfBlank(req.ClientName)
	}
	if req.ClientEmail != nil {
		deal.ClientEmail = utils.NullIfBlank(req.ClientEmail)
	}
	if req.Source != nil {
		deal.Source = utils.NullIfBlank(req.Source)
	}
	if req.AssignedTo != nil {
		deal.AssignedTo = utils.NullIfBlank(req.AssignedTo)
	}
	if req.Notes != nil {
		deal.Notes = utils.NullIfBlank(req.Notes)
	}
	deal.UpdatedAt = s.now()

	if err := s.dealRepo.Update(ctx, deal); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao atualizar negócio")
		return nil, NewDealErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, deal.ID, "Erro ao atualizar negócio")
	}

	return deal, nil
}

func (s *Service) GetDeal(ctx context.Context, id string) (*domain.Deal, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewDealError(ErrDealIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar negócio")
		return nil, NewDealErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Erro ao buscar negócio")
	}
	if deal == nil {
		return nil, NewDealErrorWithID(ErrDealNotFound, apiErrors.ErrResourceNotFound, id, "Negócio não encontrado")
	}

	return deal, nil
}

func (s *Service) ListDeals(ctx context.Context, filters domain.DealFilters) ([]*domain.Deal, error) {
	for _, stage := range filters.Stage {
		if !stage.IsValid() {
			return nil, NewDealError(ErrInvalidStage, apiErrors.ErrInvalidValue, string(stage))
		}
	}

	deals, err := s.dealRepo.List(ctx, filters)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar negócios")
		return nil, NewDealError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar negócios")
	}

	return deals, nil
}

func (s *Service) DeleteDeal(ctx context.Context, id string) error {
	if _, err := s.GetDeal(ctx, id); err != nil {
		return err
	}

	if err := s.dealRepo.Delete(ctx, id); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao remover negócio")
		return NewDealErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Erro ao remover negócio")
	}

	return nil
}

// Board agrupa os negócios em uma coluna por estágio, na ordem do funil.
// Colunas vazias também são devolvidas.
func (s *Service) Board(ctx context.Context) (*domain.PipelineBoard, error) {
	deals, err := s.ListDeals(ctx, domain.DealFilters{})
	if err != nil {
		return nil, err
	}

	return BuildBoard(deals), nil
}

func BuildBoard(deals []*domain.Deal) *domain.PipelineBoard {
	columns := make(map[domain.DealStage]*domain.PipelineColumn, len(domain.DealStages))
	for _, stage := range domain.DealStages {
		columns[stage] = &domain.PipelineColumn{Stage: stage, Deals: make([]*domain.Deal, 0)}
	}

	board := &domain.PipelineBoard{}
	for _, deal := range deals {
		column, ok := columns[deal.Stage]
		if !ok {
			log.L.WithField("deal_id", deal.ID).Warnf("Negócio com estágio desconhecido ignorado no board: %s", deal.Stage)
			continue
		}

		column.Deals = append(column.Deals, deal)
		column.Count++
		column.Total += deal.Value

		switch {
		case deal.Stage == domain.DealStageClosedWon:
			board.WonValue += deal.Value
		case deal.Stage.IsOpen():
			board.OpenValue += deal.Value
		}
	}

	board.Columns = make([]domain.PipelineColumn, 0, len(domain.DealStages))
	for _, stage := range domain.DealStages {
		column := columns[stage]
		column.Total = utils.RoundWithTwoDecimalPlace(column.Total)
		board.Columns = append(board.Columns, *column)
	}
	board.OpenValue = utils.RoundWithTwoDecimalPlace(board.OpenValue)
	board.WonValue = utils.RoundWithTwoDecimalPlace(board.WonValue)

	return board
}
