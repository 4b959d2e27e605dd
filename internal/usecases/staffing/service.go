package staffing

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

type TeamService interface {
	CreateMember(ctx context.Context, req *domain.CreateTeamMemberRequest) (*domain.TeamMember, error)
	UpdateMember(ctx context.Context, req *domain.UpdateTeamMemberRequest) (*domain.TeamMember, error)
	GetMember(ctx context.Context, id string) (*domain.TeamMember, error)
	ListMembers(ctx context.Context) ([]*domain.TeamMember, error)
	DeleteMember(ctx context.Context, id string) error
}

type Service struct {
	teamRepo repository.TeamMemberRepository
	now      func() time.Time
}

func NewService(teamRepo repository.TeamMemberRepository) TeamService {
	return &Service{
		teamRepo: teamRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateMember cadastra o membro; o papel é apenas descritivo e não concede permissões
func (s *Service) CreateMember(ctx context.Context, req *domain.CreateTeamMemberRequest) (*domain.TeamMember, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewTeamError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome é obrigatório")
	}

	role := req.Role
	if role == "" {
		role = domain.TeamRoleMember
	}
	if !role.IsValid() {
		return nil, NewTeamError(ErrInvalidRole, apiErrors.ErrInvalidValue, string(role))
	}

	member := &domain.TeamMember{
		ID:        utils.GenerateID(),
		Name:      name,
		Nickname:  utils.NullIfBlank(req.Nickname),
		Email:     utils.NullIfBlank(req.Email),
		Role:      role,
		AvatarURL: utils.NullIfBlank(req.AvatarURL),
		CreatedAt: s.now(),
	}

	if err := s.teamRepo.Create(ctx, member); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao cadastrar membro da equipe")
		return nil, NewTeamError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao cadastrar membro")
	}

	return member, nil
}

func (s *Service) UpdateMember(ctx context.Context, req *domain.UpdateTeamMemberRequest) (*domain.TeamMember, error) {
	member, err := s.GetMember(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewTeamError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome não pode ser vazio")
		}
		member.Name = name
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, NewTeamError(ErrInvalidRole, apiErrors.ErrInvalidValue, string(*req.Role))
		}
		member.Role = *req.Role
	}
	if req.Nickname != nil {
		member.Nickname = utils.NullIfBlank(req.Nickname)
	}
	if req.Email != nil {
		member.Email = utils.NullIfBlank(req.Email)
	}
	if req.AvatarURL != nil {
		member.AvatarURL = utils.NullIfBlank(req.AvatarURL)
	}

	if err := s.teamRepo.Update(ctx, member); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao atualizar membro da equipe")
		return nil, NewTeamError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao atualizar membro")
	}

	return member, nil
}

func (s *Service) GetMember(ctx context.Context, id string) (*domain.TeamMember, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewTeamError(ErrMemberIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	member, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar membro da equipe")
		return nil, NewTeamError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar membro")
	}
	if member == nil {
		return nil, NewTeamError(ErrMemberNotFound, apiErrors.ErrResourceNotFound, "Membro não encontrado")
	}

	return member, nil
}

func (s *Service) ListMembers(ctx context.Context) ([]*domain.TeamMember, error) {
	members, err := s.teamRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar equipe")
		return nil, NewTeamError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar equipe")
	}

	return members, nil
}

func (s *Service) DeleteMember(ctx context.Context, id string) error {
	if _, err := s.GetMember(ctx, id); err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao remover membro da equipe")
		return NewTeamError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao remover membro")
	}

	return nil
}
