package tasking

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

type TaskService interface {
	CreateTask(ctx context.Context, req *domain.CreateTaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, req *domain.UpdateTaskRequest) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context, filters domain.TaskFilters) ([]*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type Service struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

func NewService(taskRepo repository.TaskRepository) TaskService {
	return &Service{
		taskRepo: taskRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) CreateTask(ctx context.Context, req *domain.CreateTaskRequest) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, NewTaskError(ErrTitleRequired, apiErrors.ErrMissingRequiredData, "Título é obrigatório")
	}

	status := req.Status
	if status == "" {
		status = domain.TaskStatusTodo
	}
	if !status.IsValid() {
		return nil, NewTaskError(ErrInvalidStatus, apiErrors.ErrInvalidValue, string(status))
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !priority.IsValid() {
		return nil, NewTaskError(ErrInvalidPriority, apiErrors.ErrInvalidValue, string(priority))
	}

	now := s.now()
	task := &domain.Task{
		ID:           utils.GenerateID(),
		Title:        title,
		Description:  utils.NullIfBlank(req.Description),
		Priority:     priority,
		AssigneeName: utils.NullIfBlank(req.AssigneeName),
		DueDate:      nullableDate(req.DueDate),
		ProjectID:    utils.NullIfBlank(req.ProjectID),
		SectionID:    utils.NullIfBlank(req.SectionID),
		Source:       utils.NullIfBlank(req.Source),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	task.ApplyStatus(status, now)

	if err := s.taskRepo.Create(ctx, task); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao criar tarefa")
		return nil, NewTaskError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar tarefa")
	}

	return task, nil
}

// UpdateTask aplica apenas os campos presentes. String vazia limpa campos opcionais
// e completed_at acompanha a transição de status na mesma escrita.
func (s *Service) UpdateTask(ctx context.Context, req *domain.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.GetTask(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, NewTaskErrorWithID(ErrTitleRequired, apiErrors.ErrMissingRequiredData, task.ID, "Título não pode ser vazio")
		}
		task.Title = title
	}

	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, NewTaskErrorWithID(ErrInvalidPriority, apiErrors.ErrInvalidValue, task.ID, string(*req.Priority))
		}
		task.Priority = *req.Priority
	}

	if req.Description != nil {
		task.Description = utils.NullIfBlank(req.Description)
	}
	if req.AssigneeName != nil {
		task.AssigneeName = utils.NullIfBlank(req.AssigneeName)
	}
	if req.ProjectID != nil {
		task.ProjectID = utils.NullIfBlank(req.ProjectID)
	}
	if req.SectionID != nil {
		task.SectionID = utils.NullIfBlank(req.SectionID)
	}
	if req.DueDate != nil {
		task.DueDate = nullableDate(req.DueDate)
	}

	now := s.now()
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, NewTaskErrorWithID(ErrInvalidStatus, apiErrors.ErrInvalidValue, task.ID, string(*req.Status))
		}
		task.ApplyStatus(*req.Status, now)
	}
	task.UpdatedAt = now

	if err := s.taskRepo.Update(ctx, task); err != nil {
		log.ForContext(ctx).WithError(err).WithField("task_id", task.ID).Error("Erro ao atualizar tarefa")
		return nil, NewTaskErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, task.ID, "Erro ao atualizar tarefa")
	}

	return task, nil
}

func (s *Service) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewTaskError(ErrTaskIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("task_id", id).Error("Erro ao buscar tarefa")
		return nil, NewTaskErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Erro ao buscar tarefa")
	}
	if task == nil {
		return nil, NewTaskErrorWithID(ErrTaskNotFound, apiErrors.ErrResourceNotFound, id, "Tarefa não encontrada")
	}

	return task, nil
}

func (s *Service) ListTasks(ctx context.Context, filters domain.TaskFilters) ([]*domain.Task, error) {
	for _, status := range filters.Status {
		if !status.IsValid() {
			return nil, NewTaskError(ErrInvalidStatus, apiErrors.ErrInvalidValue, string(status))
		}
	}
	for _, priority := range filters.Priority {
		if !priority.IsValid() {
			return nil, NewTaskError(ErrInvalidPriority, apiErrors.ErrInvalidValue, string(priority))
		}
	}
	if filters.DueFrom != nil && filters.DueTo != nil && filters.DueTo.Before(filters.DueFrom.Time) {
		return nil, NewTaskError(ErrInvalidDateFilter, apiErrors.ErrInvalidValue, "Data final anterior à inicial")
	}

	tasks, err := s.taskRepo.List(ctx, filters)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar tarefas")
		return nil, NewTaskError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar tarefas")
	}

	return tasks, nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.GetTask(ctx, id); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		log.ForContext(ctx).WithError(err).WithField("task_id", id).Error("Erro ao remover tarefa")
		return NewTaskErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Erro ao remover tarefa")
	}

	return nil
}

// data zero vinda de "due_date": "" remove o vencimento
func nullableDate(value *domain.Date) *domain.Date {
	if value == nil || value.IsZero() {
		return nil
	}
	date := *value
	return &date
}
