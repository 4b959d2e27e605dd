package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/internal/domain"
)

const teamMembersTable = "team_members"

var teamMemberColumns = []string{"id", "name", "nickname", "email", "role", "avatar_url", "created_at"}

type TeamMemberRepository interface {
	Create(ctx context.Context, member *domain.TeamMember) error
	Update(ctx context.Context, member *domain.TeamMember) error
	GetByID(ctx context.Context, id string) (*domain.TeamMember, error)
	FindByNameOrNickname(ctx context.Context, value string) (*domain.TeamMember, error)
	List(ctx context.Context) ([]*domain.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

type teamMemberRepository struct {
	conn *database.Connection
}

func NewTeamMemberRepository(conn *database.Connection) TeamMemberRepository {
	return &teamMemberRepository{conn: conn}
}

func (r *teamMemberRepository) Create(ctx context.Context, member *domain.TeamMember) error {
	builder := r.conn.Builder().
		Insert(teamMembersTable).
		Columns(teamMemberColumns...).
		Values(member.ID, member.Name, member.Nickname, member.Email, member.Role, member.AvatarURL, member.CreatedAt)

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrap(err, "falha ao inserir membro da equipe")
	}
	return nil
}

func (r *teamMemberRepository) Update(ctx context.Context, member *domain.TeamMember) error {
	builder := r.conn.Builder().
		Update(teamMembersTable).
		Set("name", member.Name).
		Set("nickname", member.Nickname).
		Set("email", member.Email).
		Set("role", member.Role).
		Set("avatar_url", member.AvatarURL).
		Where(squirrel.Eq{"id": member.ID})

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrapf(err, "falha ao atualizar membro %s", member.ID)
	}
	return nil
}

func (r *teamMemberRepository) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// FindByNameOrNickname casa o valor com nome ou apelido, sem diferenciar maiúsculas
func (r *teamMemberRepository) FindByNameOrNickname(ctx context.Context, value string) (*domain.TeamMember, error) {
	return r.getOne(ctx, squirrel.Or{
		equalsIgnoreCase("name", value),
		equalsIgnoreCase("nickname", value),
	})
}

func (r *teamMemberRepository) getOne(ctx context.Context, pred squirrel.Sqlizer) (*domain.TeamMember, error) {
	row, err := queryRow(ctx, r.conn, r.conn.Builder().
		Select(teamMemberColumns...).
		From(teamMembersTable).
		Where(pred).
		OrderBy("created_at ASC").
		Limit(1))
	if err != nil {
		return nil, err
	}

	member, err := scanTeamMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "falha ao buscar membro da equipe")
	}
	return member, nil
}

func (r *teamMemberRepository) List(ctx context.Context) ([]*domain.TeamMember, error) {
	rows, err := query(ctx, r.conn, r.conn.Builder().
		Select(teamMemberColumns...).
		From(teamMembersTable).
		OrderBy("name ASC"))
	if err != nil {
		return nil, errors.Wrap(err, "falha ao listar equipe")
	}
	defer rows.Close()

	members := make([]*domain.TeamMember, 0)
	for rows.Next() {
		member, err := scanTeamMember(rows)
		if err != nil {
			return nil, errors.Wrap(err, "falha ao ler membro da equipe")
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

func (r *teamMemberRepository) Delete(ctx context.Context, id string) error {
	if _, err := exec(ctx, r.conn, r.conn.Builder().Delete(teamMembersTable).Where(squirrel.Eq{"id": id})); err != nil {
		return errors.Wrapf(err, "falha ao remover membro %s", id)
	}
	return nil
}

func scanTeamMember(s scanner) (*domain.TeamMember, error) {
	var member domain.TeamMember
	if err := s.Scan(
		&member.ID,
		&member.Name,
		&member.Nickname,
		&member.Email,
		&member.Role,
		&member.AvatarURL,
		&member.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}
