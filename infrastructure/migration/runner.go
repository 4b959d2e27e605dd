package migration

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/infrastructure/database/migrations"
)

const schemaVersionTable = "schema_version"

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner aplica os scripts versionados (NNN_nome.sql) de um driver, um por transação
type Runner struct {
	conn *database.Connection
	fs   fs.FS
}

func NewRunner(conn *database.Connection, migrationFS fs.FS) *Runner {
	return &Runner{conn: conn, fs: migrationFS}
}

// NewRunnerForDriver usa os scripts embutidos do driver da conexão
func NewRunnerForDriver(conn *database.Connection) (*Runner, error) {
	subFS, err := fs.Sub(migrations.FS, string(conn.Driver))
	if err != nil {
		return nil, errors.Wrapf(err, "migrações do driver %s não encontradas", conn.Driver)
	}
	return NewRunner(conn, subFS), nil
}

func (r *Runner) ensureSchemaVersionTable(ctx context.Context) error {
	_, err := r.conn.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+schemaVersionTable+` (version INTEGER PRIMARY KEY)`)
	return err
}

// CurrentVersion devolve 0 para um banco novo
func (r *Runner) CurrentVersion(ctx context.Context) (int, error) {
	if err := r.ensureSchemaVersionTable(ctx); err != nil {
		return 0, errors.Wrap(err, "falha ao criar tabela schema_version")
	}

	var version int
	err := r.conn.QueryRowContext(ctx, "SELECT version FROM "+schemaVersionTable).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "falha ao ler versão do schema")
	}
	return version, nil
}

// ReadMigrations lê os scripts ordenados por versão
func (r *Runner) ReadMigrations() ([]Migration, error) {
	files, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, errors.Wrap(err, "falha ao ler diretório de migrações")
	}

	var list []Migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(file.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("nome de migração inválido: %s (esperado NNN_nome.sql)", file.Name())
		}

		version, err := strconv.Atoi(parts[0])
		if err != nil || version < 1 {
			return nil, fmt.Errorf("versão inválida no arquivo %s", file.Name())
		}

		content, err := fs.ReadFile(r.fs, file.Name())
		if err != nil {
			return nil, errors.Wrapf(err, "falha ao ler migração %s", file.Name())
		}

		list = append(list, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].Version < list[j].Version
	})

	for i := 1; i < len(list); i++ {
		if list[i].Version == list[i-1].Version {
			return nil, fmt.Errorf("versão de migração duplicada: %d", list[i].Version)
		}
	}

	return list, nil
}

// Apply executa as migrações pendentes e devolve quantas foram aplicadas
func (r *Runner) Apply(ctx context.Context) (int, error) {
	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return 0, err
	}

	list, err := r.ReadMigrations()
	if err != nil {
		return 0, err
	}

	if len(list) == 0 {
		logrus.Warn("Nenhum arquivo de migração encontrado")
		return 0, nil
	}

	latest := list[len(list)-1].Version
	if current > latest {
		return 0, fmt.Errorf("versão do schema (%d) é mais nova que a suportada (%d)", current, latest)
	}

	startTime := time.Now()
	applied := 0

	for _, m := range list {
		if m.Version <= current {
			continue
		}

		logrus.Infof("Aplicando migração %03d: %s", m.Version, m.Name)

		err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
				return errors.Wrapf(err, "falha ao aplicar migração %d (%s)", m.Version, m.Name)
			}

			if _, err := tx.ExecContext(ctx, "DELETE FROM "+schemaVersionTable); err != nil {
				return errors.Wrap(err, "falha ao limpar versão do schema")
			}

			insertSQL, args, err := r.conn.Builder().
				Insert(schemaVersionTable).
				Columns("version").
				Values(m.Version).
				ToSql()
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
				return errors.Wrap(err, "falha ao gravar versão do schema")
			}
			return nil
		})
		if err != nil {
			return applied, err
		}

		applied++
	}

	if applied == 0 {
		logrus.Debugf("Schema já está atualizado (versão %d)", current)
	} else {
		logrus.Infof("%d migração(ões) aplicada(s) em %v", applied, time.Since(startTime))
	}

	return applied, nil
}
