package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
)

type scanner interface {
	Scan(dest ...any) error
}

// queryRow executa o builder e devolve a linha; sql.ErrNoRows fica a cargo do chamador
func queryRow(ctx context.Context, conn *database.Connection, builder squirrel.Sqlizer) (*sql.Row, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir consulta")
	}
	return conn.QueryRowContext(ctx, query, args...), nil
}

func query(ctx context.Context, conn *database.Connection, builder squirrel.Sqlizer) (*sql.Rows, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir consulta")
	}
	return conn.QueryContext(ctx, query, args...)
}

func exec(ctx context.Context, q database.Queryer, builder squirrel.Sqlizer) (sql.Result, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir comando")
	}
	return q.ExecContext(ctx, query, args...)
}

// equalsIgnoreCase compara coluna e valor sem diferenciar maiúsculas, igual em Postgres e SQLite
func equalsIgnoreCase(column, value string) squirrel.Sqlizer {
	return squirrel.Expr("LOWER("+column+") = LOWER(?)", value)
}
