package ingesting

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/vfg2006/opsboard-api/infrastructure/repository"
	"github.com/vfg2006/opsboard-api/internal/domain"
	"github.com/vfg2006/opsboard-api/pkg/apiErrors"
	"github.com/vfg2006/opsboard-api/pkg/log"
	"github.com/vfg2006/opsboard-api/pkg/utils"
)

type Ingester interface {
	IngestTask(ctx context.Context, payload *domain.WebhookTaskPayload) (*domain.WebhookTaskSummary, error)
}

type Service struct {
	secret      string
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	sectionRepo repository.SectionRepository
	teamRepo    repository.TeamMemberRepository
	now         func() time.Time
}

func NewService(
	secret string,
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	sectionRepo repository.SectionRepository,
	teamRepo repository.TeamMemberRepository,
) Ingester {
	return &Service{
		secret:      secret,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		sectionRepo: sectionRepo,
		teamRepo:    teamRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// IngestTask valida o segredo e o título antes de qualquer acesso ao banco, resolve
// projeto, seção e responsável e grava a tarefa com status todo.
// A criação automática do projeto não é desfeita se a tarefa falhar.
func (s *Service) IngestTask(ctx context.Context, payload *domain.WebhookTaskPayload) (*domain.WebhookTaskSummary, error) {
	logger := log.ForContext(ctx)

	if !s.validSecret(string(payload.Secret)) {
		return nil, NewIngestError(ErrInvalidSecret, apiErrors.ErrInvalidToken, "")
	}

	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return nil, NewIngestError(ErrTitleRequired, apiErrors.ErrMissingRequiredData, "")
	}

	source := strings.TrimSpace(payload.Source)

	projectID, err := s.resolveProject(ctx, strings.TrimSpace(payload.ProjectID), source)
	if err != nil {
		return nil, NewIngestError(ErrCreateTask, apiErrors.ErrDatabaseOperation, err.Error())
	}

	var sectionID *string
	if projectID != nil && strings.TrimSpace(payload.Department) != "" {
		sectionID, err = s.resolveSection(ctx, *projectID, strings.TrimSpace(payload.Department))
		if err != nil {
			return nil, NewIngestError(ErrCreateTask, apiErrors.ErrDatabaseOperation, err.Error())
		}
	}

	var assignee *string
	if strings.TrimSpace(payload.Assignee) != "" {
		assignee, err = s.resolveAssignee(ctx, strings.TrimSpace(payload.Assignee))
		if err != nil {
			return nil, NewIngestError(ErrCreateTask, apiErrors.ErrDatabaseOperation, err.Error())
		}
	}

	now := s.now()
	task := &domain.Task{
		ID:           utils.GenerateID(),
		Title:        title,
		Description:  optional(payload.Description),
		Status:       domain.TaskStatusTodo,
		Priority:     domain.NormalizePriority(string(payload.Priority)),
		AssigneeName: assignee,
		ProjectID:    projectID,
		SectionID:    sectionID,
		Source:       optional(source),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if dueDate := strings.TrimSpace(payload.DueDate); dueDate != "" {
		parsed, err := domain.ParseDate(dueDate)
		if err != nil {
			logger.WithField("due_date", dueDate).Warn("dueDate inválido ignorado, esperado YYYY-MM-DD")
		} else {
			task.DueDate = &parsed
		}
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		logger.WithError(err).Error("Erro ao gravar tarefa recebida pelo webhook")
		return nil, NewIngestError(ErrCreateTask, apiErrors.ErrDatabaseOperation, err.Error())
	}

	logger.WithFields(log.Fields{
		"task_id":    task.ID,
		"project_id": utils.StringValue(task.ProjectID),
		"source":     source,
	}).Info("Tarefa criada via webhook")

	return &domain.WebhookTaskSummary{
		ID:        task.ID,
		Title:     task.Title,
		Status:    task.Status,
		Priority:  task.Priority,
		ProjectID: task.ProjectID,
		Assignee:  task.AssigneeName,
		Source:    task.Source,
	}, nil
}

// segredo vazio na configuração rejeita qualquer chamada
func (s *Service) validSecret(secret string) bool {
	if s.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(s.secret)) == 1
}

func (s *Service) resolveProject(ctx context.Context, projectID, source string) (*string, error) {
	if projectID != "" {
		return &projectID, nil
	}

	if source == "" {
		return nil, nil
	}

	name, known := projectNameForSource(source)
	if !known {
		return nil, nil
	}

	project, err := s.projectRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if project != nil {
		return &project.ID, nil
	}

	icon := iconForSource(source)
	color := autoProjectColor
	description := "Auto-created from " + source + " webhook"
	project = &domain.Project{
		ID:          utils.GenerateID(),
		Name:        name,
		Color:       &color,
		Icon:        &icon,
		Description: &description,
		CreatedAt:   s.now(),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"project_id": project.ID,
		"source":     source,
	}).Info("Projeto criado automaticamente para a origem do webhook")

	return &project.ID, nil
}

// seções nunca são criadas pelo webhook
func (s *Service) resolveSection(ctx context.Context, projectID, department string) (*string, error) {
	section, err := s.sectionRepo.FindByName(ctx, projectID, department)
	if err != nil {
		return nil, err
	}
	if section == nil {
		log.ForContext(ctx).WithField("department", department).Debug("Departamento sem seção correspondente, ignorado")
		return nil, nil
	}
	return &section.ID, nil
}

func (s *Service) resolveAssignee(ctx context.Context, value string) (*string, error) {
	member, err := s.teamRepo.FindByNameOrNickname(ctx, value)
	if err != nil {
		return nil, err
	}
	if member == nil {
		log.ForContext(ctx).WithField("assignee", value).Debug("Responsável não encontrado na equipe, ignorado")
		return nil, nil
	}
	return &member.Name, nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
