package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/internal/domain"
)

const dealsTable = "deals"

var dealColumns = []string{
	"id", "title", "value", "stage", "client_name", "client_email", "source", "assigned_to", "notes", "created_at", "updated_at",
}

type DealRepository interface {
	Create(ctx context.Context, deal *domain.Deal) error
	Update(ctx context.Context, deal *domain.Deal) error
	GetByID(ctx context.Context, id string) (*domain.Deal, error)
	List(ctx context.Context, filters domain.DealFilters) ([]*domain.Deal, error)
	Delete(ctx context.Context, id string) error
}

type dealRepository struct {
	conn *database.Connection
}

func NewDealRepository(conn *database.Connection) DealRepository {
	return &dealRepository{conn: conn}
}

func (r *dealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	builder := r.conn.Builder().
		Insert(dealsTable).
		Columns(dealColumns...).
		Values(
			deal.ID, deal.Title, deal.Value, deal.Stage, deal.ClientName, deal.ClientEmail,
			deal.Source, deal.AssignedTo, deal.Notes, deal.CreatedAt, deal.UpdatedAt,
		)

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrap(err, "falha ao inserir negócio")
	}
	return nil
}

func (r *dealRepository) Update(ctx context.Context, deal *domain.Deal) error {
	builder := r.conn.Builder().
		Update(dealsTable).
		SetMap(map[string]any{
			"title":        deal.Title,
			"value":        deal.Value,
			"stage":        deal.Stage,
			"client_name":  deal.ClientName,
			"client_email": deal.ClientEmail,
			"source":       deal.Source,
			"assigned_to":  deal.AssignedTo,
			"notes":        deal.Notes,
			"updated_at":   deal.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": deal.ID})

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrapf(err, "falha ao atualizar negócio %s", deal.ID)
	}
	return nil
}

func (r *dealRepository) GetByID(ctx context.Context, id string) (*domain.Deal, error) {
	row, err := queryRow(ctx, r.conn, r.conn.Builder().
		Select(dealColumns...).
		From(dealsTable).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	deal, err := scanDeal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "falha ao buscar negócio %s", id)
	}
	return deal, nil
}

func (r *dealRepository) List(ctx context.Context, filters domain.DealFilters) ([]*domain.Deal, error) {
	builder := r.conn.Builder().
		Select(dealColumns...).
		From(dealsTable).
		OrderBy("updated_at DESC")

	if len(filters.Stage) > 0 {
		builder = builder.Where(squirrel.Eq{"stage": filters.Stage})
	}
	if filters.AssignedTo != "" {
		builder = builder.Where(equalsIgnoreCase("assigned_to", filters.AssignedTo))
	}

	rows, err := query(ctx, r.conn, builder)
	if err != nil {
		return nil, errors.Wrap(err, "falha ao listar negócios")
	}
	defer rows.Close()

	deals := make([]*domain.Deal, 0)
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, errors.Wrap(err, "falha ao ler negócio")
		}
		deals = append(deals, deal)
	}

	return deals, rows.Err()
}

func (r *dealRepository) Delete(ctx context.Context, id string) error {
	if _, err := exec(ctx, r.conn, r.conn.Builder().Delete(dealsTable).Where(squirrel.Eq{"id": id})); err != nil {
		return errors.Wrapf(err, "falha ao remover negócio %s", id)
	}
	return nil
}

func scanDeal(s scanner) (*domain.Deal, error) {
	var deal domain.Deal
	if err := s.Scan(
		&deal.ID,
		&deal.Title,
		&deal.Value,
		&deal.Stage,
		&deal.ClientName,
		&deal.ClientEmail,
		&deal.Source,
		&deal.AssignedTo,
		&deal.Notes,
		&deal.CreatedAt,
		&deal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &deal, nil
}
