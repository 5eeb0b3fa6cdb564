package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/pkg/config"
)

// chdir replica testing.T.Chdir (Go 1.24+) para toolchains anteriores.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "stock-ledger", cfg.App.Name)
	assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "permissive", cfg.Alert.WorkflowPolicy)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.EqualValues(t, 25, cfg.DB.MaxConns)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_EnvVars(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "FILE")
	t.Setenv("STORE_FILE_PATH", "/tmp/ledger.json")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("ALERT_WORKFLOW_POLICY", "forward")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverFile, cfg.Store.Driver)
	assert.Equal(t, "/tmp/ledger.json", cfg.Store.FilePath)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.EqualValues(t, 4, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "forward", cfg.Alert.WorkflowPolicy)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoad_DriverInvalido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:wd", DBName: "ledger", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Awd@db:5432/ledger?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", db.ConnectionString())
}
