package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/you-humble/supplement-inventory/internal/config"
	envconfig "github.com/you-humble/supplement-inventory/internal/config/env"
	"github.com/you-humble/supplement-inventory/internal/metrics"
	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/internal/transport/http/health"
	thttp "github.com/you-humble/supplement-inventory/internal/transport/http/v1"
	"github.com/you-humble/supplement-inventory/platform/closer"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

type app struct {
	di     *di
	server *http.Server
}

func New(ctx context.Context) (*app, error) {
	a := &app{}

	if err := a.init(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) Run(ctx context.Context) error { return a.run(ctx) }

// Repair runs one full propagation pass and releases every resource.
func (a *app) Repair(ctx context.Context, kinds ...model.EntityKind) (*model.RepairResult, error) {
	defer gracefulShutdown()
	return a.di.PropagationService(ctx).Repair(ctx, kinds...)
}

// Migrate reports the unit store schema version. Pending migrations were
// already applied while the app was initialized.
func (a *app) Migrate(ctx context.Context) error {
	defer gracefulShutdown()

	if !config.C().Storage.UsesPostgres() {
		logger.Info(ctx, "unit store is not postgres, nothing to migrate")
		return nil
	}

	version, err := a.di.Migrator(ctx).Version(ctx)
	if err != nil {
		logger.Error(ctx, "failed to read schema version", logger.ErrorF(err))
		return err
	}
	logger.Info(ctx, "unit store schema is up to date", logger.Int64("version", version))
	return nil
}

func (a *app) init(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initLogger,
		a.initCloser,
		a.initDI,
		a.initStorage,
		a.initServer,
	}

	for _, initFn := range inits {
		if err := initFn(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) initConfig(_ context.Context) error {
	return config.Load()
}

func (a *app) initLogger(_ context.Context) error {
	return logger.Init(
		config.C().Logger.Level(),
		config.C().Logger.AsJSON(),
	)
}

func (a *app) initCloser(_ context.Context) error {
	closer.SetLogger(logger.L())
	closer.AddNamed("Logger", func(context.Context) error { return logger.Sync() })
	return nil
}

func (a *app) initDI(_ context.Context) error {
	a.di = NewDI()
	return nil
}

// initStorage prepares indexes and the postgres schema, then seeds the code
// sequences from the codes already stored. The in-memory driver also gets a
// small demo catalogue.
func (a *app) initStorage(ctx context.Context) error {
	if config.C().Storage.UsesPostgres() {
		if err := a.migrate(ctx); err != nil {
			return err
		}
	}

	for _, ix := range a.di.Indexers(ctx) {
		if err := ix.EnsureIndexes(ctx); err != nil {
			logger.Error(ctx, "failed to ensure indexes", logger.ErrorF(err))
			return err
		}
	}

	if err := a.di.ClassificationService(ctx).SeedSequences(ctx); err != nil {
		logger.Error(ctx, "failed to seed code sequences", logger.ErrorF(err))
		return err
	}

	if config.C().Storage.Driver() == envconfig.DriverMemory {
		store, ok := a.di.ProductRepository(ctx).(catalogueWriter)
		if !ok {
			return fmt.Errorf("product store %T cannot be seeded", a.di.ProductRepository(ctx))
		}
		if _, err := seedCatalogue(ctx, store); err != nil {
			logger.Error(ctx, "failed to seed in-memory catalogue", logger.ErrorF(err))
			return err
		}
	}
	return nil
}

func (a *app) migrate(ctx context.Context) error {
	if err := a.di.Migrator(ctx).Up(ctx); err != nil {
		logger.Error(ctx, "failed to apply migrations", logger.ErrorF(err))
		return err
	}
	return nil
}

func (a *app) initServer(ctx context.Context) error {
	cfg := config.C()

	r := a.di.Router(ctx)
	r.Use(
		middleware.RequestID,
		thttp.RequestContext,
		middleware.Recoverer,
		thttp.RequestLogger,
		metrics.Middleware,
	)

	r.Handle("/health", health.NewHealthHandler(a.di.HealthChecks(ctx)))
	r.Handle("/metrics", metrics.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		a.di.InventoryHandler(ctx).Routes(r)
	})

	a.server = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadTimeout(),
	}

	closer.AddNamed("HTTP Server", a.server.Shutdown)
	return nil
}

func (a *app) run(ctx context.Context) error {
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info(egCtx,
			"🚀 inventory server listening",
			logger.String("address", config.C().Server.Address()),
		)
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	if interval := config.C().Propagation.RepairInterval(); interval > 0 {
		eg.Go(func() error {
			a.repairLoop(egCtx, interval)
			return nil
		})
	}

	eg.Go(func() error {
		<-egCtx.Done()
		gracefulShutdown()
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	return nil
}

// repairLoop re-runs propagation for every entity on a fixed interval, so
// products left stale by failed passes converge.
func (a *app) repairLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info(ctx, "🔁 propagation repair scheduled", logger.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := a.di.PropagationService(ctx).Repair(ctx)
			if err != nil {
				logger.Warn(ctx, "scheduled repair", logger.ErrorF(err))
				continue
			}
			logger.Debug(ctx, "scheduled repair finished",
				logger.Int("entities", res.Entities),
				logger.Int("affected", res.Affected),
			)
		}
	}
}

//nolint:contextcheck
func gracefulShutdown() {
	ctx, cancel := context.WithTimeout(
		context.Background(), // do not inherit cancellation from ctx
		config.C().Server.ShutdownTimeout(),
	)
	defer cancel()

	err := closer.CloseAll(ctx)
	if err != nil {
		logger.Error(ctx, "❌ Error during server shutdown", logger.ErrorF(err))
		logger.Error(ctx, "❌😵‍💫 Server stopped")
		return
	}
	logger.Info(ctx, "✅ Server stopped")
}
