package clienting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/opsboard-api/infrastructure/repository"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"github.com/vfg2006/opsboard-api/pkg/utils"
)

const defaultHealthScore = domain.MaxHealthScore

type ClientService interface {
	CreateClient(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error)
	UpdateClient(ctx context.Context, req *domain.UpdateClientRequest) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	ListClients(ctx context.Context, statuses []domain.ClientStatus) ([]*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type Service struct {
	clientRepo repository.ClientRepository
	now        func() time.Time
}

func NewService(clientRepo repository.ClientRepository) ClientService {
	return &Service{
		clientRepo: clientRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) CreateClient(ctx context.Context, req *domain.CreateClientRequest) (*domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewClientError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome é obrigatório")
	}

	status := req.Status
	if status == "" {
		status = domain.ClientStatusActive
	}
	if !status.IsValid() {
		return nil, NewClientError(ErrInvalidStatus, apiErrors.ErrInvalidValue, string(status))
	}

	health := defaultHealthScore
	if req.HealthScore != nil {
		health = *req.HealthScore
	}
	if err := validateHealth(health); err != nil {
		return nil, err
	}
	if req.LTV < 0 {
		return nil, NewClientError(ErrInvalidLTV, apiErrors.ErrInvalidValue, "")
	}

	now := s.now()
	client := &domain.Client{
		ID:          utils.GenerateID(),
		Name:        name,
		Email:       utils.NullIfBlank(req.Email),
		Status:      status,
		HealthScore: health,
		LTV:         utils.RoundWithTwoDecimalPlace(req.LTV),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao criar cliente")
		return nil, NewClientError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar cliente")
	}

	return client, nil
}

func (s *Service) UpdateClient(ctx context.Context, req *domain.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.GetClient(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewClientErrorWithID(ErrNameRequired, apiErrors.ErrMissingRequiredData, client.ID, "Nome não pode ser vazio")
		}
		client.Name = name
	}
	if req.Email != nil {
		client.Email = utils.NullIfBlank(req.Email)
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, NewClientErrorWithID(ErrInvalidStatus, apiErrors.ErrInvalidValue, client.ID, string(*req.Status))
		}
		client.Status = *req.Status
	}
	if req.HealthScore != nil {
		if err := validateHealth(*req.HealthScore); err != nil {
			return nil, err
		}
		client.HealthScore = *req.HealthScore
	}
	if req.LTV != nil {
		if *req.LTV < 0 {
			return nil, NewClientErrorWithID(ErrInvalidLTV, apiErrors.ErrInvalidValue, client.ID, "")
		}
		client.LTV = utils.RoundWithTwoDecimalPlace(*req.LTV)
	}
	client.UpdatedAt = s.now()

	if err := s.clientRepo.Update(ctx, client); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao atualizar cliente")
		return nil, NewClientErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, client.ID, "Erro ao atualizar cliente")
	}

	return client, nil
}

func (s *Service) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewClientError(ErrClientIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar cliente")
		return nil, NewClientErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Erro ao buscar cliente")
	}
	if client == nil {
		return nil, NewClientErrorWithID(ErrClientNotFound, apiErrors.ErrResourceNotFound, id, "Cliente não encontrado")
	}

	return client, nil
}

func (s *Service) ListClients(ctx context.Context, statuses []domain.ClientStatus) ([]*domain.Client, error) {
	for _, status := range statuses {
		if !status.IsValid() {
			return nil, NewClientError(ErrInvalidStatus, apiErrors.ErrInvalidValue, string(status))
		}
	}

	clients, err := s.clientRepo.List(ctx, statuses)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar clientes")
		return nil, NewClientError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar clientes")
	}

	return clients, nil
}

func (s *Service) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.GetClient(ctx, id); err != nil {
		return err
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao remover cliente")
		return NewClientErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Erro ao remover cliente")
	}

	return nil
}

func validateHealth(score int) error {
	if score < domain.MinHealthScore || score > domain.MaxHealthScore {
		return NewClientError(ErrInvalidHealthScore, apiErrors.ErrInvalidValue, fmt.Sprintf("valor recebido: %d", score))
	}
	return nil
}
