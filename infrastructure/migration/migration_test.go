package migration

import (
	"context"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/opsboard-api/infrastructure/database"
	"github.com/vfg2006/opsboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/opsboard-api/infrastructure/database/sqlite"
	"github.com/vfg2006/opsboard-api/internal/config"
)

func newTestConnection(t *testing.T) *database.Connection {
	t.Helper()
	conn, err := sqlite.NewConnection(context.Background(), sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func countRows(t *testing.T, conn *database.Connection, table string) int {
	t.Helper()
	var count int
	require.NoError(t, conn.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count))
	return count
}

func TestRunnerApply(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)

	fsys := fstest.MapFS{
		"002_posts.sql": {Data: []byte("CREATE TABLE posts (id TEXT PRIMARY KEY);")},
		"001_users.sql": {Data: []byte("CREATE TABLE people (id TEXT PRIMARY KEY);")},
		"README.md":     {Data: []byte("ignorado")},
	}
	runner := NewRunner(conn, fsys)

	list, err := runner.ReadMigrations()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Version)
	assert.Equal(t, "users", list[0].Name)

	applied, err := runner.Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	version, err := runner.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	// segunda execução não tem nada pendente
	applied, err = runner.Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
}

func TestRunnerRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			name: "sem versão",
			fsys: fstest.MapFS{"init.sql": {Data: []byte("SELECT 1;")}},
		},
		{
			name: "versão zero",
			fsys: fstest.MapFS{"000_init.sql": {Data: []byte("SELECT 1;")}},
		},
		{
			name: "versão duplicada",
			fsys: fstest.MapFS{
				"001_a.sql":  {Data: []byte("SELECT 1;")},
				"0001_b.sql": {Data: []byte("SELECT 1;")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(newTestConnection(t), tt.fsys).ReadMigrations()
			assert.Error(t, err)
		})
	}
}

func TestRunnerRollsBackFailedMigration(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)

	fsys := fstest.MapFS{
		"001_ok.sql":     {Data: []byte("CREATE TABLE ok_table (id TEXT);")},
		"002_broken.sql": {Data: []byte("CREATE TABLE broken (;")},
	}

	applied, err := NewRunner(conn, fsys).Apply(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, applied)

	version, err := NewRunner(conn, fsys).CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestEmbeddedSQLiteMigrationsAndSeed(t *testing.T) {
	ctx := context.Background()
	conn := newTestConnection(t)

	runner, err := NewRunnerForDriver(conn)
	require.NoError(t, err)

	_, err = runner.Apply(ctx)
	require.NoError(t, err)

	seeder := NewSeeder(conn, "demo1234")
	require.NoError(t, seeder.Seed(ctx))

	assert.Equal(t, 1, countRows(t, conn, "users"))
	assert.Equal(t, 4, countRows(t, conn, "team_members"))
	assert.Equal(t, 6, countRows(t, conn, "tasks"))
	assert.Equal(t, 14, countRows(t, conn, "kpi_daily_logs"))
	assert.Equal(t, 28, countRows(t, conn, "rep_performance"))

	// seed é idempotente
	require.NoError(t, seeder.Seed(ctx))
	assert.Equal(t, 6, countRows(t, conn, "tasks"))

	_, err = conn.ExecContext(ctx, "DELETE FROM tasks")
	require.NoError(t, err)
	require.NoError(t, seeder.Reset(ctx))
	assert.Equal(t, 6, countRows(t, conn, "tasks"))
	assert.Equal(t, 1, countRows(t, conn, "users"))
}

// Defina POSTGRES_TEST_URL para rodar contra um Postgres real
func TestEmbeddedPostgresMigrations(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_URL não definido")
	}

	ctx := context.Background()
	conn, err := postgres.NewConnection(ctx, config.Database{DSN: dsn})
	require.NoError(t, err)
	defer conn.Close()

	runner, err := NewRunnerForDriver(conn)
	require.NoError(t, err)

	_, err = runner.Apply(ctx)
	require.NoError(t, err)

	require.NoError(t, NewSeeder(conn, "demo1234").Reset(ctx))
	assert.Equal(t, 6, countRows(t, conn, "tasks"))
}
