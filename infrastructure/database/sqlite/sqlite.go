package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vfg2006/opsboard-api/infrastructure/database"
	_ "modernc.org/sqlite"
)

const MemoryPath = ":memory:"

// NewConnection abre o banco local do modo demo. Path vazio usa um banco em memória.
func NewConnection(ctx context.Context, path string) (*database.Connection, error) {
	if path == "" {
		path = MemoryPath
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("falha ao criar diretório do banco demo: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir banco demo: %w", err)
	}

	// cada conexão em memória é um banco distinto; o sqlite também serializa escritas
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("falha ao configurar banco demo: %w", err)
	}

	return database.NewConnection(db, database.DriverSQLite), nil
}
