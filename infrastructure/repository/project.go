package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/internal/domain"
)

const (
	projectsTable        = "projects"
	projectSectionsTable = "project_sections"
)

var (
	projectColumns = []string{"id", "name", "color", "icon", "description", "created_at"}
	sectionColumns = []string{"id", "project_id", "name", "color", "position", "created_at"}
)

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	FindByName(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type SectionRepository interface {
	Create(ctx context.Context, section *domain.ProjectSection) error
	Update(ctx context.Context, section *domain.ProjectSection) error
	GetByID(ctx context.Context, id string) (*domain.ProjectSection, error)
	FindByName(ctx context.Context, projectID, name string) (*domain.ProjectSection, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectSection, error)
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	conn *database.Connection
}

func NewProjectRepository(conn *database.Connection) ProjectRepository {
	return &projectRepository{conn: conn}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	builder := r.conn.Builder().
		Insert(projectsTable).
		Columns(projectColumns...).
		Values(project.ID, project.Name, project.Color, project.Icon, project.Description, project.CreatedAt)

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrap(err, "falha ao inserir projeto")
	}
	return nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	builder := r.conn.Builder().
		Update(projectsTable).
		Set("name", project.Name).
		Set("color", project.Color).
		Set("icon", project.Icon).
		Set("description", project.Description).
		Where(squirrel.Eq{"id": project.ID})

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrapf(err, "falha ao atualizar projeto %s", project.ID)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// FindByName compara o nome sem diferenciar maiúsculas; com duplicados devolve o mais antigo
func (r *projectRepository) FindByName(ctx context.Context, name string) (*domain.Project, error) {
	return r.getOne(ctx, equalsIgnoreCase("name", name))
}

func (r *projectRepository) getOne(ctx context.Context, pred squirrel.Sqlizer) (*domain.Project, error) {
	row, err := queryRow(ctx, r.conn, r.conn.Builder().
		Select(projectColumns...).
		From(projectsTable).
		Where(pred).
		OrderBy("created_at ASC").
		Limit(1))
	if err != nil {
		return nil, err
	}

	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "falha ao buscar projeto")
	}
	return project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := query(ctx, r.conn, r.conn.Builder().
		Select(projectColumns...).
		From(projectsTable).
		OrderBy("name ASC"))
	if err != nil {
		return nil, errors.Wrap(err, "falha ao listar projetos")
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, errors.Wrap(err, "falha ao ler projeto")
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// Delete remove o projeto e suas seções na mesma transação
func (r *projectRepository) Delete(ctx context.Context, id string) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := exec(ctx, tx, r.conn.Builder().Delete(projectSectionsTable).Where(squirrel.Eq{"project_id": id})); err != nil {
			return errors.Wrapf(err, "falha ao remover seções do projeto %s", id)
		}
		if _, err := exec(ctx, tx, r.conn.Builder().Delete(projectsTable).Where(squirrel.Eq{"id": id})); err != nil {
			return errors.Wrapf(err, "falha ao remover projeto %s", id)
		}
		return nil
	})
}

func scanProject(s scanner) (*domain.Project, error) {
	var project domain.Project
	if err := s.Scan(
		&project.ID,
		&project.Name,
		&project.Color,
		&project.Icon,
		&project.Description,
		&project.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &project, nil
}

type sectionRepository struct {
	conn *database.Connection
}

func NewSectionRepository(conn *database.Connection) SectionRepository {
	return &sectionRepository{conn: conn}
}

func (r *sectionRepository) Create(ctx context.Context, section *domain.ProjectSection) error {
	builder := r.conn.Builder().
		Insert(projectSectionsTable).
		Columns(sectionColumns...).
		Values(section.ID, section.ProjectID, section.Name, section.Color, section.Position, section.CreatedAt)

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrap(err, "falha ao inserir seção")
	}
	return nil
}

func (r *sectionRepository) Update(ctx context.Context, section *domain.ProjectSection) error {
	builder := r.conn.Builder().
		Update(projectSectionsTable).
		Set("name", section.Name).
		Set("color", section.Color).
		Set("position", section.Position).
		Where(squirrel.Eq{"id": section.ID})

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrapf(err, "falha ao atualizar seção %s", section.ID)
	}
	return nil
}

func (r *sectionRepository) GetByID(ctx context.Context, id string) (*domain.ProjectSection, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *sectionRepository) FindByName(ctx context.Context, projectID, name string) (*domain.ProjectSection, error) {
	return r.getOne(ctx, squirrel.And{squirrel.Eq{"project_id": projectID}, equalsIgnoreCase("name", name)})
}

func (r *sectionRepository) getOne(ctx context.Context, pred squirrel.Sqlizer) (*domain.ProjectSection, error) {
	row, err := queryRow(ctx, r.conn, r.conn.Builder().
		Select(sectionColumns...).
		From(projectSectionsTable).
		Where(pred).
		OrderBy("position ASC").
		Limit(1))
	if err != nil {
		return nil, err
	}

	section, err := scanSection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "falha ao buscar seção")
	}
	return section, nil
}

func (r *sectionRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectSection, error) {
	rows, err := query(ctx, r.conn, r.conn.Builder().
		Select(sectionColumns...).
		From(projectSectionsTable).
		Where(squirrel.Eq{"project_id": projectID}).
		OrderBy("position ASC", "name ASC"))
	if err != nil {
		return nil, errors.Wrapf(err, "falha ao listar seções do projeto %s", projectID)
	}
	defer rows.Close()

	sections := make([]*domain.ProjectSection, 0)
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, errors.Wrap(err, "falha ao ler seção")
		}
		sections = append(sections, section)
	}

	return sections, rows.Err()
}

func (r *sectionRepository) Delete(ctx context.Context, id string) error {
	if _, err := exec(ctx, r.conn, r.conn.Builder().Delete(projectSectionsTable).Where(squirrel.Eq{"id": id})); err != nil {
		return errors.Wrapf(err, "falha ao remover seção %s", id)
	}
	return nil
}

func scanSection(s scanner) (*domain.ProjectSection, error) {
	var section domain.ProjectSection
	if err := s.Scan(
		&section.ID,
		&section.ProjectID,
		&section.Name,
		&section.Color,
		&section.Position,
		&section.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &section, nil
}
