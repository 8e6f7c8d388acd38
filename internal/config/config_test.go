package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enterprise-registry/internal/datastore"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REGISTRY_STORE_TYPE", "REGISTRY_DB_CONN_STRING", "DB_CONN_STRING",
		"REGISTRY_DB_MAX_OPEN_CONNS", "REGISTRY_DB_SEED_DICTIONARIES",
		"REGISTRY_LOG_LEVEL", "REGISTRY_LOG_FORMAT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.String("log-level", "", "")
	fs.String("log-format", "", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, datastore.PostgreSQLStore, cfg.DataStore.Type)
	assert.Equal(t, DefaultConnString, cfg.DataStore.ConnectionString)
	assert.Equal(t, 1, cfg.DataStore.MaxOpenConns)
	assert.False(t, cfg.DataStore.SeedDictionaries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_UnsetFlagsKeepDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", testFlags())
	require.NoError(t, err)
	assert.Equal(t, DefaultConnString, cfg.DataStore.ConnectionString)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvironmentFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_CONN_STRING", "postgres://fallback/db")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://fallback/db", cfg.DataStore.ConnectionString)

	t.Setenv("REGISTRY_DB_CONN_STRING", "postgres://preferred/db")
	t.Setenv("REGISTRY_DB_SEED_DICTIONARIES", "true")
	t.Setenv("REGISTRY_LOG_LEVEL", "debug")

	cfg, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://preferred/db", cfg.DataStore.ConnectionString)
	assert.True(t, cfg.DataStore.SeedDictionaries)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_PrecedenceFileEnvFlag(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  type: postgres
db:
  conn_string: postgres://file/db
  max_open_conns: 4
log:
  level: warn
  format: json
`), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, datastore.PostgreSQLStore, cfg.DataStore.Type)
	assert.Equal(t, "postgres://file/db", cfg.DataStore.ConnectionString)
	assert.Equal(t, 4, cfg.DataStore.MaxOpenConns)
	assert.Equal(t, "json", cfg.Log.Format)

	t.Setenv("REGISTRY_DB_CONN_STRING", "postgres://env/db")
	cfg, err = Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/db", cfg.DataStore.ConnectionString)

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--db", "postgres://flag/db", "--log-level", "error"}))
	cfg, err = Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "postgres://flag/db", cfg.DataStore.ConnectionString)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	t.Setenv("REGISTRY_DB_MAX_OPEN_CONNS", "-2")
	_, err = Load("", nil)
	assert.Error(t, err)
}

func TestStoreType(t *testing.T) {
	assert.Equal(t, datastore.PostgreSQLStore, storeType("Postgres"))
	assert.Equal(t, datastore.PostgreSQLStore, storeType("db"))
	assert.Equal(t, datastore.Type("mysql"), storeType("mysql"))
}
