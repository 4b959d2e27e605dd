package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/internal/config"
)

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*database.Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return database.NewConnection(db, database.DriverPostgres), nil
}
