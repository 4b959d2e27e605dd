package projecting

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

type ProjectService interface {
	CreateProject(ctx context.Context, req *domain.CreateProjectRequest) (*domain.Project, error)
	UpdateProject(ctx context.Context, req *domain.UpdateProjectRequest) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.ProjectTree, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error

	CreateSection(ctx context.Context, req *domain.CreateSectionRequest) (*domain.ProjectSection, error)
	UpdateSection(ctx context.Context, req *domain.UpdateSectionRequest) (*domain.ProjectSection, error)
	DeleteSection(ctx context.Context, id string) error
}

type Service struct {
	projectRepo repository.ProjectRepository
	sectionRepo repository.SectionRepository
	now         func() time.Time
}

func NewService(projectRepo repository.ProjectRepository, sectionRepo repository.SectionRepository) ProjectService {
	return &Service{
		projectRepo: projectRepo,
		sectionRepo: sectionRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) CreateProject(ctx context.Context, req *domain.CreateProjectRequest) (*domain.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewProjectError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome do projeto é obrigatório")
	}

	project := &domain.Project{
		ID:          utils.GenerateID(),
		Name:        name,
		Color:       utils.NullIfBlank(req.Color),
		Icon:        utils.NullIfBlank(req.Icon),
		Description: utils.NullIfBlank(req.Description),
		CreatedAt:   s.now(),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao criar projeto")
		return nil, NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar projeto")
	}

	return project, nil
}

func (s *Service) UpdateProject(ctx context.Context, req *domain.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.getProject(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewProjectError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome do projeto não pode ser vazio")
		}
		project.Name = name
	}
	if req.Color != nil {
		project.Color = utils.NullIfBlank(req.Color)
	}
	if req.Icon != nil {
		project.Icon = utils.NullIfBlank(req.Icon)
	}
	if req.Description != nil {
		project.Description = utils.NullIfBlank(req.Description)
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao atualizar projeto")
		return nil, NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao atualizar projeto")
	}

	return project, nil
}

// GetProject devolve o projeto com as seções ordenadas por posição
func (s *Service) GetProject(ctx context.Context, id string) (*domain.ProjectTree, error) {
	project, err := s.getProject(ctx, id)
	if err != nil {
		return nil, err
	}

	sections, err := s.sectionRepo.ListByProject(ctx, project.ID)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("project_id", project.ID).Error("Erro ao listar seções do projeto")
		return nil, NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar seções")
	}

	return &domain.ProjectTree{Project: *project, Sections: sections}, nil
}

func (s *Service) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar projetos")
		return nil, NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar projetos")
	}

	return projects, nil
}

// DeleteProject remove o projeto e suas seções. Tarefas e notas ficam sem projeto.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if _, err := s.getProject(ctx, id); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		log.ForContext(ctx).WithError(err).WithField("project_id", id).Error("Erro ao remover projeto")
		return NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao remover projeto")
	}

	return nil
}

// CreateSection adiciona a seção ao final do projeto quando a posição não é informada
func (s *Service) CreateSection(ctx context.Context, req *domain.CreateSectionRequest) (*domain.ProjectSection, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewProjectError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome da seção é obrigatório")
	}

	if _, err := s.getProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	position := 0
	if req.Position != nil {
		if *req.Position < 0 {
			return nil, NewProjectError(ErrInvalidPosition, apiErrors.ErrInvalidValue, "")
		}
		position = *req.Position
	} else {
		existing, err := s.sectionRepo.ListByProject(ctx, req.ProjectID)
		if err != nil {
			log.ForContext(ctx).WithError(err).Error("Erro ao listar seções do projeto")
			return nil, NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar seções")
		}
		for _, section := range existing {
			if section.Position >= position {
				position = section.Position + 1
			}
		}
	}

	section := &domain.ProjectSection{
		ID:        utils.GenerateID(),
		ProjectID: req.ProjectID,
		Name:      name,
		Color:     utils.NullIfBlank(req.Color),
		Position:  position,
		CreatedAt: s.now(),
	}

	if err := s.sectionRepo.Create(ctx, section); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao criar seção")
		return nil, NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar seção")
	}

	return section, nil
}

func (s *Service) UpdateSection(ctx context.Context, req *domain.UpdateSectionRequest) (*domain.ProjectSection, error) {
	section, err := s.getSection(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, NewProjectError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "Nome da seção não pode ser vazio")
		}
		section.Name = name
	}
	if req.Color != nil {
		section.Color = utils.NullIfBlank(req.Color)
	}
	if req.Position != nil {
		if *req.Position < 0 {
			return nil, NewProjectError(ErrInvalidPosition, apiErrors.ErrInvalidValue, "")
		}
		section.Position = *req.Position
	}

	if err := s.sectionRepo.Update(ctx, section); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao atualizar seção")
		return nil, NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao atualizar seção")
	}

	return section, nil
}

func (s *Service) DeleteSection(ctx context.Context, id string) error {
	if _, err := s.getSection(ctx, id); err != nil {
		return err
	}

	if err := s.sectionRepo.Delete(ctx, id); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao remover seção")
		return NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao remover seção")
	}

	return nil
}

func (s *Service) getProject(ctx context.Context, id string) (*domain.Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewProjectError(ErrProjectIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("project_id", id).Error("Erro ao buscar projeto")
		return nil, NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar projeto")
	}
	if project == nil {
		return nil, NewProjectError(ErrProjectNotFound, apiErrors.ErrResourceNotFound, "Projeto não encontrado")
	}

	return project, nil
}

func (s *Service) getSection(ctx context.Context, id string) (*domain.ProjectSection, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewProjectError(ErrSectionIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	section, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar seção")
		return nil, NewProjectError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar seção")
	}
	if section == nil {
		return nil, NewProjectError(ErrSectionNotFound, apiErrors.ErrResourceNotFound, "Seção não encontrada")
	}

	return section, nil
}
