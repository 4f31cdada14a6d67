package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/you-humble/supplement-inventory/internal/metrics"
	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

const (
	defaultWorkers     = 8
	defaultMaxAttempts = 3
)

type ClassificationRepository interface {
	ByID(ctx context.Context, kind model.EntityKind, id string) (*model.Entity, error)
	List(ctx context.Context, kind model.EntityKind, filter model.EntityFilter) ([]*model.Entity, error)
	UpdateMetrics(ctx context.Context, kind model.EntityKind, id string, m model.EntityMetrics) error
}

type ProductRepository interface {
	ProductByID(ctx context.Context, id string) (*model.Product, error)
	ListByReference(ctx context.Context, kind model.EntityKind, id string) ([]*model.Product, error)
	UpdateSnapshots(ctx context.Context, productID string, kind model.EntityKind, snaps []model.Snapshot, version int64) error
}

type service struct {
	entities    ClassificationRepository
	products    ProductRepository
	workers     int
	maxAttempts int

	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

// NewPropagationService builds the snapshot propagator. workers bounds the
// products rewritten concurrently; maxAttempts bounds retries per product on
// version conflicts.
func NewPropagationService(
	entities ClassificationRepository,
	products ProductRepository,
	workers int,
	maxAttempts int,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &service{
		entities:       entities,
		products:       products,
		workers:        workers,
		maxAttempts:    maxAttempts,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

// Propagate rewrites the embedded snapshot of one entity in every product
// referencing it. Product failures never stop the pass; when any occurred
// the report is returned together with ErrPropagationPartialFailure.
func (s *service) Propagate(ctx context.Context, kind model.EntityKind, entityID string) (*model.PropagationResult, error) {
	const op = "propagation.service.Propagate"
	log := logger.With(
		logger.String("kind", string(kind)),
		logger.String("entity_id", entityID),
	)

	entityID = strings.TrimSpace(entityID)
	if !kind.Valid() {
		log.Error(ctx, "validation: unknown kind")
		return nil, errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown kind %q", kind))
	}
	if entityID == "" {
		log.Error(ctx, "validation: empty entity id")
		return nil, errors.Join(model.ErrInvalidArgument, errors.New("entity id must be non-empty"))
	}

	start := time.Now()

	snap, err := s.snapshot(ctx, kind, entityID)
	if err != nil {
		log.Error(ctx, "load canonical entity", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	readCtx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	products, err := s.products.ListByReference(readCtx, kind, entityID)
	cancel()
	if err != nil {
		log.Error(ctx, "repository list by reference", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := &model.PropagationResult{
		Kind:     kind,
		EntityID: entityID,
		Matched:  len(products),
		Errors:   make([]model.ProductFailure, 0),
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(s.workers)

	for _, p := range products {
		g.Go(func() error {
			changed, err := s.reconcile(ctx, p, kind, snap)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				res.Errors = append(res.Errors, model.ProductFailure{ProductID: p.ID, Err: err})
			case changed:
				res.Affected++
			default:
				res.Unchanged++
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(res.Errors, func(i, j int) bool { return res.Errors[i].ProductID < res.Errors[j].ProductID })

	writeCtx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
	if err := s.entities.UpdateMetrics(writeCtx, kind, entityID, model.CountMetrics(products)); err != nil {
		log.Warn(ctx, "refresh entity metrics", logger.ErrorF(err))
	}
	cancel()

	res.Duration = time.Since(start)
	metrics.PropagationDuration.WithLabelValues(string(kind)).Observe(res.Duration.Seconds())
	metrics.PropagationProducts.WithLabelValues(string(kind), "affected").Add(float64(res.Affected))
	metrics.PropagationProducts.WithLabelValues(string(kind), "unchanged").Add(float64(res.Unchanged))
	metrics.PropagationProducts.WithLabelValues(string(kind), "failed").Add(float64(len(res.Errors)))

	fields := []logger.Field{
		logger.Int("matched", res.Matched),
		logger.Int("affected", res.Affected),
		logger.Int("unchanged", res.Unchanged),
		logger.Int("failed", len(res.Errors)),
		logger.Duration("duration", res.Duration),
	}
	if res.Failed() {
		log.Warn(ctx, "propagation finished with failures", fields...)
		return res, fmt.Errorf("%s: %w", op, errors.Join(
			model.ErrPropagationPartialFailure,
			fmt.Errorf("%d of %d products failed", len(res.Errors), res.Matched),
		))
	}

	log.Info(ctx, "propagation finished", fields...)
	return res, nil
}

// snapshot loads the entity and, for level-2 categories, its parent.
func (s *service) snapshot(ctx context.Context, kind model.EntityKind, id string) (model.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	e, err := s.entities.ByID(ctx, kind, id)
	if err != nil {
		return model.Snapshot{}, err
	}

	var parent *model.Entity
	if kind == model.KindCategory && e.ParentID != "" {
		parent, err = s.entities.ByID(ctx, model.KindCategory, e.ParentID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.Snapshot{}, err
		}
	}

	return e.Snapshot(parent), nil
}

// reconcile brings one product up to date. A version conflict reloads the
// product and tries again, up to maxAttempts writes.
func (s *service) reconcile(ctx context.Context, p *model.Product, kind model.EntityKind, snap model.Snapshot) (bool, error) {
	for attempt := 1; ; attempt++ {
		next, changed := ReplaceSnapshot(kind, p.Snapshots(kind), snap)
		if !changed {
			return false, nil
		}

		writeCtx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
		err := s.products.UpdateSnapshots(writeCtx, p.ID, kind, next, p.Version)
		cancel()
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, model.ErrVersionConflict) {
			return false, err
		}

		metrics.PropagationConflicts.WithLabelValues(string(kind)).Inc()
		if attempt >= s.maxAttempts {
			return false, fmt.Errorf("gave up after %d attempts: %w", attempt, err)
		}

		readCtx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
		p, err = s.products.ProductByID(readCtx, p.ID)
		cancel()
		if err != nil {
			return false, err
		}
		if !p.References(kind, snap.ID) {
			return false, nil
		}
	}
}

// Repair propagates every entity of kinds, all kinds when none are given.
// Categories are visited root level first.
func (s *service) Repair(ctx context.Context, kinds ...model.EntityKind) (*model.RepairResult, error) {
	const op = "propagation.service.Repair"

	if len(kinds) == 0 {
		kinds = model.Kinds
	}
	for _, k := range kinds {
		if !k.Valid() {
			return nil, errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown kind %q", k))
		}
	}

	res := &model.RepairResult{
		Results: make([]*model.PropagationResult, 0),
		Errors:  make([]model.EntityFailure, 0),
	}
	failedProducts := 0

	for _, kind := range kinds {
		readCtx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
		entities, err := s.entities.List(readCtx, kind, model.EntityFilter{})
		cancel()
		if err != nil {
			logger.Error(ctx, "repair: list entities", logger.String("kind", string(kind)), logger.ErrorF(err))
			return res, fmt.Errorf("%s: %w", op, err)
		}

		sort.SliceStable(entities, func(i, j int) bool { return entities[i].Level < entities[j].Level })

		for _, e := range entities {
			if err := ctx.Err(); err != nil {
				return res, fmt.Errorf("%s: %w", op, err)
			}

			res.Entities++
			pr, err := s.Propagate(ctx, kind, e.ID)
			if pr != nil {
				res.Results = append(res.Results, pr)
				res.Affected += pr.Affected
				res.Unchanged += pr.Unchanged
				failedProducts += len(pr.Errors)
			}
			if err != nil && !errors.Is(err, model.ErrPropagationPartialFailure) {
				res.Errors = append(res.Errors, model.EntityFailure{Kind: kind, EntityID: e.ID, Err: err})
			}
		}
	}

	logger.Info(ctx, "repair finished",
		logger.Int("entities", res.Entities),
		logger.Int("affected", res.Affected),
		logger.Int("unchanged", res.Unchanged),
		logger.Int("failed_products", failedProducts),
		logger.Int("failed_entities", len(res.Errors)),
	)

	if failedProducts > 0 || len(res.Errors) > 0 {
		return res, fmt.Errorf("%s: %w", op, errors.Join(
			model.ErrPropagationPartialFailure,
			fmt.Errorf("%d products and %d entities failed", failedProducts, len(res.Errors)),
		))
	}
	return res, nil
}
