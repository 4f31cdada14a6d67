package config

import "time"

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
	DBReadTimeout() time.Duration
	DBWriteTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Storage interface {
	Driver() string
	UnitStoreDriver() string
	UsesMongo() bool
	UsesPostgres() bool
}

type Mongo interface {
	DSN() string
	DatabaseName() string
	UnitsCollection() string
	ProductsCollection() string
	CategoriesCollection() string
	TagsCollection() string
	ProductTypesCollection() string
	SequencesCollection() string
}

type Database interface {
	MigrationDirectory() string
	DSN() string
}

type Inventory interface {
	ExpiryWindowDays() int
	ReorderPoint() int
	Capacity() int
	CriticalRatio() float64
}

type Propagation interface {
	Workers() int
	MaxAttempts() int
	RepairInterval() time.Duration
}
