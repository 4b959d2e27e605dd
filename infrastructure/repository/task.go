package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/internal/domain"
)

const tasksTable = "tasks"

var taskColumns = []string{
	"id", "title", "description", "status", "priority", "assignee_name", "due_date",
	"project_id", "section_id", "source", "created_at", "updated_at", "completed_at",
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filters domain.TaskFilters) ([]*domain.Task, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[domain.TaskStatus]int, error)
	CountOverdue(ctx context.Context, today domain.Date) (int, error)
}

type taskRepository struct {
	conn *database.Connection
}

func NewTaskRepository(conn *database.Connection) TaskRepository {
	return &taskRepository{conn: conn}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	builder := r.conn.Builder().
		Insert(tasksTable).
		Columns(taskColumns...).
		Values(
			task.ID, task.Title, task.Description, task.Status, task.Priority, task.AssigneeName, task.DueDate,
			task.ProjectID, task.SectionID, task.Source, task.CreatedAt, task.UpdatedAt, task.CompletedAt,
		)

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrap(err, "falha ao inserir tarefa")
	}
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	builder := r.conn.Builder().
		Update(tasksTable).
		SetMap(map[string]any{
			"title":         task.Title,
			"description":   task.Description,
			"status":        task.Status,
			"priority":      task.Priority,
			"assignee_name": task.AssigneeName,
			"due_date":      task.DueDate,
			"project_id":    task.ProjectID,
			"section_id":    task.SectionID,
			"updated_at":    task.UpdatedAt,
			"completed_at":  task.CompletedAt,
		}).
		Where(squirrel.Eq{"id": task.ID})

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrapf(err, "falha ao atualizar tarefa %s", task.ID)
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row, err := queryRow(ctx, r.conn, r.conn.Builder().
		Select(taskColumns...).
		From(tasksTable).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "falha ao buscar tarefa %s", id)
	}
	return task, nil
}

func (r *taskRepository) List(ctx context.Context, filters domain.TaskFilters) ([]*domain.Task, error) {
	builder := r.conn.Builder().
		Select(taskColumns...).
		From(tasksTable).
		OrderBy("due_date IS NULL", "due_date ASC", "created_at DESC")

	if len(filters.Status) > 0 {
		builder = builder.Where(squirrel.Eq{"status": filters.Status})
	}
	if len(filters.Priority) > 0 {
		builder = builder.Where(squirrel.Eq{"priority": filters.Priority})
	}
	if filters.Assignee != "" {
		builder = builder.Where(equalsIgnoreCase("assignee_name", filters.Assignee))
	}
	if filters.ProjectID != "" {
		builder = builder.Where(squirrel.Eq{"project_id": filters.ProjectID})
	}
	if filters.SectionID != "" {
		builder = builder.Where(squirrel.Eq{"section_id": filters.SectionID})
	}
	if filters.Source != "" {
		builder = builder.Where(equalsIgnoreCase("source", filters.Source))
	}
	if filters.DueFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"due_date": *filters.DueFrom})
	}
	if filters.DueTo != nil {
		builder = builder.Where(squirrel.LtOrEq{"due_date": *filters.DueTo})
	}

	rows, err := query(ctx, r.conn, builder)
	if err != nil {
		return nil, errors.Wrap(err, "falha ao listar tarefas")
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, errors.Wrap(err, "falha ao ler tarefa")
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	if _, err := exec(ctx, r.conn, r.conn.Builder().Delete(tasksTable).Where(squirrel.Eq{"id": id})); err != nil {
		return errors.Wrapf(err, "falha ao remover tarefa %s", id)
	}
	return nil
}

func (r *taskRepository) CountByStatus(ctx context.Context) (map[domain.TaskStatus]int, error) {
	rows, err := query(ctx, r.conn, r.conn.Builder().
		Select("status", "COUNT(*)").
		From(tasksTable).
		GroupBy("status"))
	if err != nil {
		return nil, errors.Wrap(err, "falha ao contar tarefas")
	}
	defer rows.Close()

	counts := make(map[domain.TaskStatus]int)
	for rows.Next() {
		var status domain.TaskStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, errors.Wrap(err, "falha ao ler contagem de tarefas")
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func (r *taskRepository) CountOverdue(ctx context.Context, today domain.Date) (int, error) {
	row, err := queryRow(ctx, r.conn, r.conn.Builder().
		Select("COUNT(*)").
		From(tasksTable).
		Where(squirrel.NotEq{"status": domain.TaskStatusDone}).
		Where(squirrel.NotEq{"due_date": nil}).
		Where(squirrel.Lt{"due_date": today}))
	if err != nil {
		return 0, err
	}

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, errors.Wrap(err, "falha ao contar tarefas atrasadas")
	}
	return count, nil
}

func scanTask(s scanner) (*domain.Task, error) {
	var task domain.Task
	err := s.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.AssigneeName,
		&task.DueDate,
		&task.ProjectID,
		&task.SectionID,
		&task.Source,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
