package mongo

import (
	"context"

	"go.uber.org/zap"

	"github.com/you-humble/supplement-inventory/platform/logger"
)

type Logger interface {
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
}

type Config struct {
	NetworkName   string
	ContainerName string
	ImageName     string
	Database      string
	Username      string
	Password      string
	AuthDB        string
	Logger        Logger

	host string
	port string
}

type Option func(*Config)

// WithNetworkName attaches the container to an existing docker network under
// the alias "mongo".
func WithNetworkName(network string) Option {
	return func(c *Config) { c.NetworkName = network }
}

// WithContainerName sets the container name prefix. A random suffix keeps
// parallel suites apart.
func WithContainerName(name string) Option {
	return func(c *Config) { c.ContainerName = name }
}

func WithImageName(image string) Option {
	return func(c *Config) { c.ImageName = image }
}

func WithDatabase(database string) Option {
	return func(c *Config) { c.Database = database }
}

func WithAuth(username, password string) Option {
	return func(c *Config) {
		c.Username = username
		c.Password = password
	}
}

func WithLogger(l Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func buildConfig(opts ...Option) *Config {
	cfg := &Config{
		ContainerName: "inventory-mongo",
		ImageName:     "mongo:8.0",
		Database:      "inventory",
		Username:      "root",
		Password:      "root",
		AuthDB:        "admin",
		Logger:        &logger.NoopLogger{},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}
