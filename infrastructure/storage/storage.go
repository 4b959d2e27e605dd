package storage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/opsboard-api/infrastructure/database/sqlite"
	"github.com/vfg2006/opsboard-api/infrastructure/migration"
	"github.com/vfg2006/opsboard-api/internal/config"
	"github.com/vfg2006/opsboard-api/pkg/log"
)

const (
	ModeDemo       = "demo"
	ModeProduction = "production"
)

// Store agrupa a conexão aberta, o modo decidido na inicialização e o seeder do modo demo
type Store struct {
	Conn   *database.Connection
	Mode   string
	Seeder *migration.Seeder
}

// Open conecta ao banco configurado (ou ao sqlite local em modo demo) e aplica as
// migrações pendentes. Em modo demo os dados de exemplo são carregados se faltarem.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	store := &Store{Mode: ModeProduction}

	var err error
	if cfg.DemoMode() {
		store.Mode = ModeDemo
		store.Conn, err = sqlite.NewConnection(ctx, cfg.Demo.DatabasePath)
		if err != nil {
			return nil, err
		}
	} else {
		store.Conn, err = postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, errors.Wrap(err, "falha ao conectar ao PostgreSQL")
		}
	}

	runner, err := migration.NewRunnerForDriver(store.Conn)
	if err != nil {
		_ = store.Conn.Close()
		return nil, err
	}

	applied, err := runner.Apply(ctx)
	if err != nil {
		_ = store.Conn.Close()
		return nil, errors.Wrap(err, "falha ao aplicar migrações")
	}

	logger := log.L.WithFields(log.Fields{
		"mode":       store.Mode,
		"driver":     store.Conn.Driver,
		"migrations": applied,
	})

	if store.Mode == ModeDemo {
		store.Seeder = migration.NewSeeder(store.Conn, cfg.Demo.Password)
		if err := store.Seeder.Seed(ctx); err != nil {
			_ = store.Conn.Close()
			return nil, errors.Wrap(err, "falha ao carregar dados demo")
		}
	}

	logger.Info("Banco de dados pronto")
	return store, nil
}

func (s *Store) Close() error {
	return s.Conn.Close()
}
