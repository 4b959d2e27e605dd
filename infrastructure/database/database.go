package database

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Queryer é satisfeito tanto por *sql.DB quanto por *sql.Tx
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Conn interface {
	Queryer
	Builder() squirrel.StatementBuilderType
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
}

type Connection struct {
	*sql.DB
	Driver Driver
}

func NewConnection(db *sql.DB, driver Driver) *Connection {
	return &Connection{DB: db, Driver: driver}
}

// Builder devolve o construtor do squirrel com o placeholder do driver
func (c *Connection) Builder() squirrel.StatementBuilderType {
	return StatementBuilder(c.Driver)
}

func StatementBuilder(driver Driver) squirrel.StatementBuilderType {
	if driver == DriverPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunInTransaction run a query in the transaction
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit()
}
