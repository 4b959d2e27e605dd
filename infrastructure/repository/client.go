package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/internal/domain"
)

const clientsTable = "clients"

var clientColumns = []string{"id", "name", "email", "status", "health_score", "ltv", "created_at", "updated_at"}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, statuses []domain.ClientStatus) ([]*domain.Client, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[domain.ClientStatus]int, error)
}

type clientRepository struct {
	conn *database.Connection
}

func NewClientRepository(conn *database.Connection) ClientRepository {
	return &clientRepository{conn: conn}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	builder := r.conn.Builder().
		Insert(clientsTable).
		Columns(clientColumns...).
		Values(client.ID, client.Name, client.Email, client.Status, client.HealthScore, client.LTV, client.CreatedAt, client.UpdatedAt)

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrap(err, "falha ao inserir cliente")
	}
	return nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	builder := r.conn.Builder().
		Update(clientsTable).
		Set("name", client.Name).
		Set("email", client.Email).
		Set("status", client.Status).
		Set("health_score", client.HealthScore).
		Set("ltv", client.LTV).
		Set("updated_at", client.UpdatedAt).
		Where(squirrel.Eq{"id": client.ID})

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrapf(err, "falha ao atualizar cliente %s", client.ID)
	}
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row, err := queryRow(ctx, r.conn, r.conn.Builder().
		Select(clientColumns...).
		From(clientsTable).
		Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	client, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "falha ao buscar cliente %s", id)
	}
	return client, nil
}

func (r *clientRepository) List(ctx context.Context, statuses []domain.ClientStatus) ([]*domain.Client, error) {
	builder := r.conn.Builder().
		Select(clientColumns...).
		From(clientsTable).
		OrderBy("name ASC")

	if len(statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": statuses})
	}

	rows, err := query(ctx, r.conn, builder)
	if err != nil {
		return nil, errors.Wrap(err, "falha ao listar clientes")
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, errors.Wrap(err, "falha ao ler cliente")
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	if _, err := exec(ctx, r.conn, r.conn.Builder().Delete(clientsTable).Where(squirrel.Eq{"id": id})); err != nil {
		return errors.Wrapf(err, "falha ao remover cliente %s", id)
	}
	return nil
}

func (r *clientRepository) CountByStatus(ctx context.Context) (map[domain.ClientStatus]int, error) {
	rows, err := query(ctx, r.conn, r.conn.Builder().
		Select("status", "COUNT(*)").
		From(clientsTable).
		GroupBy("status"))
	if err != nil {
		return nil, errors.Wrap(err, "falha ao contar clientes")
	}
	defer rows.Close()

	counts := make(map[domain.ClientStatus]int)
	for rows.Next() {
		var status domain.ClientStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, errors.Wrap(err, "falha ao ler contagem de clientes")
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func scanClient(s scanner) (*domain.Client, error) {
	var client domain.Client
	if err := s.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Status,
		&client.HealthScore,
		&client.LTV,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &client, nil
}
