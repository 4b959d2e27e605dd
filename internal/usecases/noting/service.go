package noting

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

type NoteService interface {
	CreateNote(ctx context.Context, req *domain.CreateNoteRequest) (*domain.Note, error)
	UpdateNote(ctx context.Context, req *domain.UpdateNoteRequest) (*domain.Note, error)
	GetNote(ctx context.Context, id string) (*domain.Note, error)
	ListNotes(ctx context.Context, filters domain.NoteFilters) ([]*domain.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

type Service struct {
	noteRepo repository.NoteRepository
	now      func() time.Time
}

func NewService(noteRepo repository.NoteRepository) NoteService {
	return &Service{
		noteRepo: noteRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) CreateNote(ctx context.Context, req *domain.CreateNoteRequest) (*domain.Note, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, NewNoteError(ErrTitleRequired, apiErrors.ErrMissingRequiredData, "Título é obrigatório")
	}

	now := s.now()
	note := &domain.Note{
		ID:           utils.GenerateID(),
		Title:        title,
		Content:      req.Content,
		Pinned:       req.Pinned,
		Category:     utils.NullIfBlank(req.Category),
		Shared:       req.Shared,
		DepartmentID: utils.NullIfBlank(req.DepartmentID),
		ProjectID:    utils.NullIfBlank(req.ProjectID),
		Author:       utils.NullIfBlank(req.Author),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao criar nota")
		return nil, NewNoteError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar nota")
	}

	return note, nil
}

// UpdateNote grava por cima da versão atual; a última escrita vence
func (s *Service) UpdateNote(ctx context.Context, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.GetNote(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, NewNoteError(ErrTitleRequired, apiErrors.ErrMissingRequiredData, "Título não pode ser vazio")
		}
		note.Title = title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Pinned != nil {
		note.Pinned = *req.Pinned
	}
	if req.Shared != nil {
		note.Shared = *req.Shared
	}
	if req.Category != nil {
		note.Category = utils.NullIfBlank(req.Category)
	}
	if req.DepartmentID != nil {
		note.DepartmentID = utils.NullIfBlank(req.DepartmentID)
	}
	if req.ProjectID != nil {
		note.ProjectID = utils.NullIfBlank(req.ProjectID)
	}
	note.UpdatedAt = s.now()

	if err := s.noteRepo.Update(ctx, note); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao atualizar nota")
		return nil, NewNoteError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao atualizar nota")
	}

	return note, nil
}

func (s *Service) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewNoteError(ErrNoteIDRequired, apiErrors.ErrMissingRequiredData, "")
	}

	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar nota")
		return nil, NewNoteError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao buscar nota")
	}
	if note == nil {
		return nil, NewNoteError(ErrNoteNotFound, apiErrors.ErrResourceNotFound, "Nota não encontrada")
	}

	return note, nil
}

func (s *Service) ListNotes(ctx context.Context, filters domain.NoteFilters) ([]*domain.Note, error) {
	notes, err := s.noteRepo.List(ctx, filters)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar notas")
		return nil, NewNoteError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao listar notas")
	}

	return notes, nil
}

func (s *Service) DeleteNote(ctx context.Context, id string) error {
	if _, err := s.GetNote(ctx, id); err != nil {
		return err
	}

	if err := s.noteRepo.Delete(ctx, id); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao remover nota")
		return NewNoteError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao remover nota")
	}

	return nil
}
