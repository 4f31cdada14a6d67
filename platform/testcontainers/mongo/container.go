package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

const (
	mongoPort           = "27017/tcp"
	mongoStartupTimeout = time.Minute
)

type Container struct {
	container testcontainers.Container
	client    *mongo.Client
	cfg       *Config
}

// NewContainer starts a throwaway mongo server and returns a connected
// client. The container is removed when startup fails half way.
func NewContainer(ctx context.Context, opts ...Option) (*Container, error) {
	cfg := buildConfig(opts...)

	c, err := start(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := connect(ctx, c, cfg)
	if err != nil {
		if terr := c.Terminate(ctx); terr != nil {
			cfg.Logger.Error(ctx, "failed to terminate mongo container", zap.Error(terr))
		}
		return nil, err
	}

	cfg.Logger.Info(ctx, "mongo container started",
		zap.String("host", cfg.host),
		zap.String("port", cfg.port),
		zap.String("database", cfg.Database),
	)

	return &Container{container: c, client: client, cfg: cfg}, nil
}

func start(ctx context.Context, cfg *Config) (testcontainers.Container, error) {
	req := testcontainers.ContainerRequest{
		Name:  fmt.Sprintf("%s-%s", cfg.ContainerName, uuid.NewString()[:8]),
		Image: cfg.ImageName,
		Env: map[string]string{
			"MONGO_INITDB_ROOT_USERNAME": cfg.Username,
			"MONGO_INITDB_ROOT_PASSWORD": cfg.Password,
			"MONGO_INITDB_DATABASE":      cfg.Database,
		},
		ExposedPorts: []string{mongoPort},
		WaitingFor:   wait.ForListeningPort(mongoPort).WithStartupTimeout(mongoStartupTimeout),
		HostConfigModifier: func(hc *container.HostConfig) {
			hc.AutoRemove = true
		},
	}
	if cfg.NetworkName != "" {
		req.Networks = []string{cfg.NetworkName}
		req.NetworkAliases = map[string][]string{cfg.NetworkName: {"mongo"}}
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "start mongo container")
	}
	return c, nil
}

func connect(ctx context.Context, c testcontainers.Container, cfg *Config) (*mongo.Client, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "container host")
	}
	port, err := c.MappedPort(ctx, mongoPort)
	if err != nil {
		return nil, errors.Wrap(err, "mapped port")
	}
	cfg.host, cfg.port = host, port.Port()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI()))
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongo")
	}
	return client, nil
}

// URI is the connection string reachable from the test process.
func (cfg *Config) URI() string {
	return fmt.Sprintf(
		"mongodb://%s:%s@%s:%s/%s?authSource=%s",
		cfg.Username, cfg.Password, cfg.host, cfg.port, cfg.Database, cfg.AuthDB,
	)
}

func (c *Container) Client() *mongo.Client { return c.client }
func (c *Container) Config() *Config       { return c.cfg }

func (c *Container) Database() *mongo.Database {
	return c.client.Database(c.cfg.Database)
}

// Reset drops every collection of the test database.
func (c *Container) Reset(ctx context.Context) error {
	db := c.Database()
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return errors.Wrap(err, "list collections")
	}
	for _, name := range names {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return errors.Wrapf(err, "drop %s", name)
		}
	}
	return nil
}

func (c *Container) Terminate(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		c.cfg.Logger.Error(ctx, "failed to disconnect mongo client", zap.Error(err))
	}
	if err := c.container.Terminate(ctx); err != nil {
		return errors.Wrap(err, "terminate mongo container")
	}

	c.cfg.Logger.Info(ctx, "mongo container terminated")
	return nil
}
