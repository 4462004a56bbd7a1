package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/sejarahbot/pkg/log"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type AppConfig struct {
	RuntimePath string `env:"SEJARAH_RUNTIME_PATH" envDefault:".sejarahbot"`

	// sqlite, postgres or memory
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	// Connection string for postgres. Overrides the sqlite file path when
	// the driver is sqlite.
	DatabaseURL string `env:"DATABASE_URL"`

	// Transport Flags
	EnableHTTP     bool `env:"ENABLE_HTTP" envDefault:"true"`
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetDatabasePath() string {
	if c.StorageDriver == StorageSQLite && c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return filepath.Join(c.RuntimePath, "sejarah.db")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) IsHTTPSelected() bool {
	return c.EnableHTTP
}
