package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/internal/domain"
)

const usersTable = "users"

var userColumns = []string{"id", "name", "email", "password_hash", "role", "active", "avatar_url", "created_at", "updated_at"}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

type userRepository struct {
	conn *database.Connection
}

func NewUserRepository(conn *database.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	builder := r.conn.Builder().
		Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.Active, user.AvatarURL, user.CreatedAt, user.UpdatedAt)

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrap(err, "falha ao inserir usuário")
	}
	return nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	builder := r.conn.Builder().
		Update(usersTable).
		Set("active", user.Active).
		Set("updated_at", user.UpdatedAt).
		Where(squirrel.Eq{"id": user.ID})

	if user.Name != "" {
		builder = builder.Set("name", user.Name)
	}

	if user.Email != "" {
		builder = builder.Set("email", user.Email)
	}

	if user.PasswordHash != "" {
		builder = builder.Set("password_hash", user.PasswordHash)
	}

	if user.Role != "" {
		builder = builder.Set("role", user.Role)
	}

	if user.AvatarURL != nil {
		builder = builder.Set("avatar_url", user.AvatarURL)
	}

	if _, err := exec(ctx, r.conn, builder); err != nil {
		return errors.Wrapf(err, "falha ao atualizar usuário %s", user.ID)
	}
	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, equalsIgnoreCase("email", email))
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": userID})
}

func (r *userRepository) getOne(ctx context.Context, pred squirrel.Sqlizer) (*domain.User, error) {
	row, err := queryRow(ctx, r.conn, r.conn.Builder().
		Select(userColumns...).
		From(usersTable).
		Where(pred))
	if err != nil {
		return nil, err
	}

	var user domain.User
	err = row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Active,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "falha ao buscar usuário")
	}

	return &user, nil
}
