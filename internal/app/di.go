package app

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/you-humble/supplement-inventory/internal/config"
	envconfig "github.com/you-humble/supplement-inventory/internal/config/env"
	"github.com/you-humble/supplement-inventory/internal/migrator"
	"github.com/you-humble/supplement-inventory/internal/model"
	classificationrepo "github.com/you-humble/supplement-inventory/internal/repository/classification"
	"github.com/you-humble/supplement-inventory/internal/repository/memory"
	productrepo "github.com/you-humble/supplement-inventory/internal/repository/product"
	sequencerepo "github.com/you-humble/supplement-inventory/internal/repository/sequence"
	unitrepo "github.com/you-humble/supplement-inventory/internal/repository/unit"
	classificationsvc "github.com/you-humble/supplement-inventory/internal/service/classification"
	propagationsvc "github.com/you-humble/supplement-inventory/internal/service/propagation"
	unitsvc "github.com/you-humble/supplement-inventory/internal/service/unit"
	"github.com/you-humble/supplement-inventory/internal/transport/http/health"
	thttp "github.com/you-humble/supplement-inventory/internal/transport/http/v1"
	"github.com/you-humble/supplement-inventory/platform/closer"
)

// ProductStore covers every product access of the services.
type ProductStore interface {
	propagationsvc.ProductRepository
}

type ClassificationService interface {
	thttp.ClassificationService
	SeedSequences(ctx context.Context) error
}

type Handler interface {
	Routes(r chi.Router)
}

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

type di struct {
	mongo    *mongo.Client
	dbPool   *pgxpool.Pool
	migrator *migrator.Migrator

	unitRepository           unitsvc.UnitRepository
	productRepository        ProductStore
	classificationRepository classificationsvc.ClassificationRepository
	sequenceRepository       classificationsvc.SequenceRepository

	unitService           thttp.UnitService
	propagationService    thttp.PropagationService
	classificationService ClassificationService

	handler      Handler
	healthChecks map[string]health.Check
	router       *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) MongoDB(ctx context.Context) *mongo.Client {
	if d.mongo == nil {
		cfg := config.C()

		mongoClient, err := mongo.Connect(
			options.Client().ApplyURI(cfg.Mongo.DSN()),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create mongodb client: %v\n", err))
		}
		closer.AddNamed("Mongo Client",
			func(ctx context.Context) error {
				return mongoClient.Disconnect(ctx)
			})

		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			panic(fmt.Sprintf("failed to ping database: %v\n", err))
		}

		d.mongo = mongoClient
	}

	return d.mongo
}

func (d *di) database(ctx context.Context) *mongo.Database {
	return d.MongoDB(ctx).Database(config.C().Mongo.DatabaseName())
}

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %v\n", err))
		}

		closer.AddNamed("PGX Pool",
			func(ctx context.Context) error {
				pool.Close()
				return nil
			})

		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %v\n", err))
		}

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migrator == nil {
		d.migrator = migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			config.C().Postgres.MigrationDirectory(),
		)

		closer.AddNamed("Migrator",
			func(ctx context.Context) error {
				return d.migrator.Close()
			})
	}

	return d.migrator
}

func (d *di) UnitRepository(ctx context.Context) unitsvc.UnitRepository {
	if d.unitRepository == nil {
		switch config.C().Storage.UnitStoreDriver() {
		case envconfig.DriverMemory:
			d.unitRepository = memory.NewUnitRepository()
		case envconfig.DriverPostgres:
			d.unitRepository = unitrepo.NewPostgresUnitRepository(d.DBPool(ctx))
		default:
			coll := d.database(ctx).Collection(config.C().Mongo.UnitsCollection())
			d.unitRepository = unitrepo.NewUnitRepository(coll)
		}
	}

	return d.unitRepository
}

func (d *di) ProductRepository(ctx context.Context) ProductStore {
	if d.productRepository == nil {
		if config.C().Storage.Driver() == envconfig.DriverMemory {
			d.productRepository = memory.NewProductRepository()
		} else {
			coll := d.database(ctx).Collection(config.C().Mongo.ProductsCollection())
			d.productRepository = productrepo.NewProductRepository(coll)
		}
	}

	return d.productRepository
}

func (d *di) ClassificationRepository(ctx context.Context) classificationsvc.ClassificationRepository {
	if d.classificationRepository == nil {
		if config.C().Storage.Driver() == envconfig.DriverMemory {
			d.classificationRepository = memory.NewClassificationRepository()
		} else {
			cfg := config.C().Mongo
			db := d.database(ctx)
			d.classificationRepository = classificationrepo.NewClassificationRepository(
				map[model.EntityKind]*mongo.Collection{
					model.KindCategory:    db.Collection(cfg.CategoriesCollection()),
					model.KindTag:         db.Collection(cfg.TagsCollection()),
					model.KindProductType: db.Collection(cfg.ProductTypesCollection()),
				},
			)
		}
	}

	return d.classificationRepository
}

func (d *di) SequenceRepository(ctx context.Context) classificationsvc.SequenceRepository {
	if d.sequenceRepository == nil {
		if config.C().Storage.Driver() == envconfig.DriverMemory {
			d.sequenceRepository = memory.NewSequenceRepository()
		} else {
			coll := d.database(ctx).Collection(config.C().Mongo.SequencesCollection())
			d.sequenceRepository = sequencerepo.NewSequenceRepository(coll)
		}
	}

	return d.sequenceRepository
}

// Indexers lists the repositories that own database indexes.
func (d *di) Indexers(ctx context.Context) []indexer {
	var out []indexer
	for _, r := range []any{
		d.UnitRepository(ctx),
		d.ProductRepository(ctx),
		d.ClassificationRepository(ctx),
	} {
		if ix, ok := r.(indexer); ok {
			out = append(out, ix)
		}
	}
	return out
}

func (d *di) UnitService(ctx context.Context) thttp.UnitService {
	if d.unitService == nil {
		cfg := config.C()

		d.unitService = unitsvc.NewUnitService(
			d.UnitRepository(ctx),
			d.ProductRepository(ctx),
			model.RollupParams{
				ExpiryWindowDays: cfg.Inventory.ExpiryWindowDays(),
				ReorderPoint:     cfg.Inventory.ReorderPoint(),
				Capacity:         cfg.Inventory.Capacity(),
				CriticalRatio:    cfg.Inventory.CriticalRatio(),
			},
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.unitService
}

func (d *di) PropagationService(ctx context.Context) thttp.PropagationService {
	if d.propagationService == nil {
		cfg := config.C()

		d.propagationService = propagationsvc.NewPropagationService(
			d.ClassificationRepository(ctx),
			d.ProductRepository(ctx),
			cfg.Propagation.Workers(),
			cfg.Propagation.MaxAttempts(),
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.propagationService
}

func (d *di) ClassificationService(ctx context.Context) ClassificationService {
	if d.classificationService == nil {
		cfg := config.C()

		d.classificationService = classificationsvc.NewClassificationService(
			d.ClassificationRepository(ctx),
			d.SequenceRepository(ctx),
			d.ProductRepository(ctx),
			d.PropagationService(ctx),
			cfg.Server.DBReadTimeout(),
			cfg.Server.DBWriteTimeout(),
		)
	}

	return d.classificationService
}

func (d *di) InventoryHandler(ctx context.Context) Handler {
	if d.handler == nil {
		d.handler = thttp.NewInventoryHandler(
			d.UnitService(ctx),
			d.ClassificationService(ctx),
			d.PropagationService(ctx),
		)
	}

	return d.handler
}

// HealthChecks pings the databases the selected drivers connect to.
func (d *di) HealthChecks(ctx context.Context) map[string]health.Check {
	if d.healthChecks == nil {
		checks := make(map[string]health.Check)
		storage := config.C().Storage

		if storage.UsesMongo() {
			client := d.MongoDB(ctx)
			checks["mongo"] = func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			}
		}
		if storage.UsesPostgres() {
			pool := d.DBPool(ctx)
			checks["postgres"] = pool.Ping
		}

		d.healthChecks = checks
	}

	return d.healthChecks
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
