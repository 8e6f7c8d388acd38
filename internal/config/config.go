package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"enterprise-registry/internal/datastore"
)

// DefaultConnString is used when neither a flag, the environment nor a
// config file names a database.
const DefaultConnString = "postgres://localhost:5432/postgres?sslmode=disable"

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// Config is the resolved configuration of a registry process.
type Config struct {
	DataStore datastore.Config
	Log       LogConfig
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"db":         "db.conn_string",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// Load resolves the configuration. Flags win over the environment, which wins
// over the config file at path, which wins over defaults. path and flags may
// be empty.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("store.type", string(datastore.PostgreSQLStore))
	v.SetDefault("db.conn_string", DefaultConnString)
	v.SetDefault("db.max_open_conns", 1)
	v.SetDefault("db.seed_dictionaries", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("REGISTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("db.conn_string", "REGISTRY_DB_CONN_STRING", "DB_CONN_STRING"); err != nil {
		return Config{}, fmt.Errorf("failed to bind environment: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	cfg := Config{
		DataStore: datastore.Config{
			Type:             storeType(v.GetString("store.type")),
			ConnectionString: v.GetString("db.conn_string"),
			MaxOpenConns:     v.GetInt("db.max_open_conns"),
			SeedDictionaries: v.GetBool("db.seed_dictionaries"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if cfg.DataStore.ConnectionString == "" {
		return Config{}, errors.New("db.conn_string must not be empty")
	}
	if cfg.DataStore.MaxOpenConns < 0 {
		return Config{}, fmt.Errorf("db.max_open_conns must not be negative, got %d", cfg.DataStore.MaxOpenConns)
	}
	return cfg, nil
}

// storeType accepts the usual spellings of PostgreSQL; anything else is
// passed through so the datastore factory can reject it.
func storeType(s string) datastore.Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgresql", "postgres", "db":
		return datastore.PostgreSQLStore
	default:
		return datastore.Type(s)
	}
}
