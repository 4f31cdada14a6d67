package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/you-humble/supplement-inventory/internal/config/env"
)

var cfg *config

type config struct {
	Server      Server
	Logger      Logger
	Storage     Storage
	Mongo       Mongo
	Postgres    Database
	Inventory   Inventory
	Propagation Propagation
}

// Load reads the configuration from the environment. Mongo and Postgres
// settings are only required when the selected storage drivers use them.
func Load(path ...string) error {
	const op = "config.Load"

	if shouldLoadDotenv() {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	serverCfg, err := envconfig.NewHTTPServerConfig()
	if err != nil {
		return fmt.Errorf("%s Server: %w", op, err)
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	storageCfg, err := envconfig.NewStorageConfig()
	if err != nil {
		return fmt.Errorf("%s Storage: %w", op, err)
	}

	inventoryCfg, err := envconfig.NewInventoryConfig()
	if err != nil {
		return fmt.Errorf("%s Inventory: %w", op, err)
	}

	propagationCfg, err := envconfig.NewPropagationConfig()
	if err != nil {
		return fmt.Errorf("%s Propagation: %w", op, err)
	}

	c := &config{
		Server:      serverCfg,
		Logger:      loggerCfg,
		Storage:     storageCfg,
		Inventory:   inventoryCfg,
		Propagation: propagationCfg,
	}

	if storageCfg.UsesMongo() {
		mongoCfg, err := envconfig.NewMongoConfig()
		if err != nil {
			return fmt.Errorf("%s Mongo: %w", op, err)
		}
		c.Mongo = mongoCfg
	}

	if storageCfg.UsesPostgres() {
		postgresCfg, err := envconfig.NewPostgresConfig()
		if err != nil {
			return fmt.Errorf("%s Postgres: %w", op, err)
		}
		c.Postgres = postgresCfg
	}

	cfg = c
	return nil
}

func C() *config { return cfg }

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}
