package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/internal/domain"
)

const notesTable = "notes"

var noteColumns = []string{
	"id", "title", "content", "pinned", "category", "shared", "department_id", "project_id", "author", "created_at", "updated_at",
}

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	Update(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	List(ctx context.Context, filters domain.NoteFilters) ([]*domain.Note, error)
	Delete(ctx context.Context, id string) error
}

type noteRepository struct {
	conn *database.Connection
}

func NewNoteRepository(conn *database.Connection) NoteRepository {
	return &noteRepository{conn: conn}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	builder := r.conn.Builder().
		Insert(notesTable).
		Columns(noteColumns...).
		Values(
			note.ID, note.Title, note.Content, note.Pinned, note.Category, note.Shared,
			note.DepartmentID, note.ProjectID, note.Author, note.CreatedAt, note.UpdatedAt,
		)

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrap(err, "falha ao inserir nota")
	}
	return nil
}

// Update grava a nota inteira; a última escrita vence
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	builder := r.conn.Builder().
		Update(notesTable).
		SetMap(map[string]any{
			"title":         note.Title,
			"content":       note.Content,
			"pinned":        note.Pinned,
			"category":      note.Category,
			"shared":        note.Shared,
			"department_id": note.DepartmentID,
			"project_id":    note.ProjectID,
			"updated_at":    note.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": note.ID})

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrapf(err, "falha ao atualizar nota %s", note.ID)
	}
	return nil
}

func (r *noteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	row, err := queryRow(ctx, r.conn, r.conn.Builder().
		Select(noteColumns...).
		From(notesTable).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "falha ao buscar nota %s", id)
	}
	return note, nil
}

// List ordena fixadas primeiro e depois pela edição mais recente
func (r *noteRepository) List(ctx context.Context, filters domain.NoteFilters) ([]*domain.Note, error) {
	builder := r.conn.Builder().
		Select(noteColumns...).
		From(notesTable).
		OrderBy("pinned DESC", "updated_at DESC")

	if filters.Category != "" {
		builder = builder.Where(equalsIgnoreCase("category", filters.Category))
	}
	if filters.ProjectID != "" {
		builder = builder.Where(squirrel.Eq{"project_id": filters.ProjectID})
	}
	if filters.DepartmentID != "" {
		builder = builder.Where(squirrel.Eq{"department_id": filters.DepartmentID})
	}
	if filters.Shared != nil {
		builder = builder.Where(squirrel.Eq{"shared": *filters.Shared})
	}

	rows, err := query(ctx, r.conn, builder)
	if err != nil {
		return nil, errors.Wrap(err, "falha ao listar notas")
	}
	defer rows.Close()

	notes := make([]*domain.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, errors.Wrap(err, "falha ao ler nota")
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

func (r *noteRepository) Delete(ctx context.Context, id string) error {
	if _, err := exec(ctx, r.conn, r.conn.Builder().Delete(notesTable).Where(squirrel.Eq{"id": id})); err != nil {
		return errors.Wrapf(err, "falha ao remover nota %s", id)
	}
	return nil
}

func scanNote(s scanner) (*domain.Note, error) {
	var note domain.Note
	if err := s.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.Pinned,
		&note.Category,
		&note.Shared,
		&note.DepartmentID,
		&note.ProjectID,
		&note.Author,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &note, nil
}
