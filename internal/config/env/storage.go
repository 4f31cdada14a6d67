package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type storageEnv struct {
	Driver          string `env:"STORAGE_DRIVER" envDefault:"mongo"`
	UnitStoreDriver string `env:"UNIT_STORE_DRIVER" envDefault:"mongo"`
}

type storage struct {
	raw storageEnv
}

func NewStorageConfig() (*storage, error) {
	var raw storageEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	switch raw.Driver {
	case DriverMongo, DriverMemory:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER: unsupported driver %q", raw.Driver)
	}
	switch raw.UnitStoreDriver {
	case DriverMongo, DriverPostgres:
	default:
		return nil, fmt.Errorf("UNIT_STORE_DRIVER: unsupported driver %q", raw.UnitStoreDriver)
	}

	return &storage{raw: raw}, nil
}

func (cfg *storage) Driver() string { return cfg.raw.Driver }

// UnitStoreDriver is memory whenever the whole storage runs in memory.
func (cfg *storage) UnitStoreDriver() string {
	if cfg.raw.Driver == DriverMemory {
		return DriverMemory
	}
	return cfg.raw.UnitStoreDriver
}

func (cfg *storage) UsesMongo() bool    { return cfg.raw.Driver == DriverMongo }
func (cfg *storage) UsesPostgres() bool { return cfg.UnitStoreDriver() == DriverPostgres }
