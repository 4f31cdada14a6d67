package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/you-humble/supplement-inventory/internal/aggregator"
	"github.com/you-humble/supplement-inventory/internal/metrics"
	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

// MaxReceiptQuantity caps the units created by one purchase-order line.
const MaxReceiptQuantity = 10_000

type UnitRepository interface {
	UnitByID(ctx context.Context, id string) (*model.Unit, error)
	CreateBatch(ctx context.Context, units []*model.Unit) error
	ListByProduct(ctx context.Context, productID string) ([]*model.Unit, error)
	UpdateLifecycle(ctx context.Context, u *model.Unit, from model.UnitState) error
}

type ProductRepository interface {
	ProductByID(ctx context.Context, id string) (*model.Product, error)
}

type service struct {
	units      UnitRepository
	products   ProductRepository
	thresholds model.RollupParams
	now        func() time.Time

	readDBTimeout  time.Duration
	writeDBTimeout time.Duration
}

// NewUnitService builds the unit service. thresholds carries the configured
// roll-up defaults; its Now field is ignored.
func NewUnitService(
	units UnitRepository,
	products ProductRepository,
	thresholds model.RollupParams,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		units:          units,
		products:       products,
		thresholds:     thresholds,
		now:            time.Now,
		readDBTimeout:  readDBTimeout,
		writeDBTimeout: writeDBTimeout,
	}
}

func (s *service) Unit(ctx context.Context, unitID string) (*model.Unit, error) {
	const op = "unit.service.Unit"
	log := logger.With(logger.String("unit_id", unitID))

	unitID = strings.TrimSpace(unitID)
	if unitID == "" {
		log.Error(ctx, "validation: empty unit id")
		return nil, errors.Join(model.ErrInvalidArgument, errors.New("unit id must be non-empty"))
	}

	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	u, err := s.units.UnitByID(ctx, unitID)
	if err != nil {
		log.Error(ctx, "repository unit by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Units lists the units of a product, by id or first-expire-first-out.
func (s *service) Units(ctx context.Context, productID string, order model.UnitOrder) ([]*model.Unit, error) {
	const op = "unit.service.Units"
	log := logger.With(
		logger.String("product_id", productID),
		logger.String("order", string(order)),
	)

	productID = strings.TrimSpace(productID)
	if productID == "" {
		log.Error(ctx, "validation: empty product id")
		return nil, errors.Join(model.ErrInvalidArgument, errors.New("product id must be non-empty"))
	}
	if order != model.UnitOrderDefault && order != model.UnitOrderFEFO {
		log.Error(ctx, "validation: unknown order")
		return nil, errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown order %q", order))
	}

	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	units, err := s.units.ListByProduct(ctx, productID)
	if err != nil {
		log.Error(ctx, "repository list by product", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if order == model.UnitOrderFEFO {
		return aggregator.SortFEFO(units), nil
	}
	return units, nil
}

func (s *service) Transition(ctx context.Context, params model.TransitionParams) (*model.Unit, error) {
	const op = "unit.service.Transition"
	log := logger.With(
		logger.String("unit_id", params.UnitID),
		logger.String("target", string(params.Target)),
	)

	params.UnitID = strings.TrimSpace(params.UnitID)
	if params.UnitID == "" {
		log.Error(ctx, "validation: empty unit id")
		return nil, errors.Join(model.ErrInvalidArgument, errors.New("unit id must be non-empty"))
	}
	if !params.Target.Valid() {
		log.Error(ctx, "validation: unknown target state")
		return nil, errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown state %q", params.Target))
	}

	u, err := s.transition(ctx, params.UnitID, params.Target, params.Metadata)
	if err != nil {
		log.Warn(ctx, "transition rejected", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "unit transitioned", logger.String("warehouse_id", u.WarehouseID))
	return u, nil
}

// TransitionBatch moves every unit to the same target. Per-unit failures are
// collected and never stop the batch.
func (s *service) TransitionBatch(ctx context.Context, params model.BatchTransitionParams) (*model.BatchTransitionResult, error) {
	log := logger.With(
		logger.Int("units_count", len(params.UnitIDs)),
		logger.String("target", string(params.Target)),
	)

	ids := lo.Uniq(lo.Compact(lo.Map(params.UnitIDs, func(id string, _ int) string {
		return strings.TrimSpace(id)
	})))
	if len(ids) == 0 {
		log.Error(ctx, "validation: no unit ids")
		return nil, errors.Join(model.ErrInvalidArgument, errors.New("at least one unit id is required"))
	}
	if !params.Target.Valid() {
		log.Error(ctx, "validation: unknown target state")
		return nil, errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown state %q", params.Target))
	}

	res := &model.BatchTransitionResult{
		Updated:  make([]*model.Unit, 0, len(ids)),
		Failures: make([]model.UnitFailure, 0),
	}
	for _, id := range ids {
		u, err := s.transition(ctx, id, params.Target, params.Metadata)
		if err != nil {
			res.Failures = append(res.Failures, model.UnitFailure{UnitID: id, Err: err})
			continue
		}
		res.Updated = append(res.Updated, u)
	}

	if len(res.Failures) > 0 {
		log.Warn(ctx, "batch transition finished with failures",
			logger.Int("updated", len(res.Updated)),
			logger.Int("failed", len(res.Failures)),
		)
	} else {
		log.Info(ctx, "batch transition finished", logger.Int("updated", len(res.Updated)))
	}
	return res, nil
}

func (s *service) transition(ctx context.Context, unitID string, target model.UnitState, meta model.TransitionMetadata) (*model.Unit, error) {
	readCtx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	u, err := s.units.UnitByID(readCtx, unitID)
	cancel()
	if err != nil {
		metrics.UnitTransitions.WithLabelValues(string(target), "error").Inc()
		return nil, err
	}

	next, err := applyTransition(u, target, meta, s.now())
	if err != nil {
		metrics.UnitTransitions.WithLabelValues(string(target), "rejected").Inc()
		return nil, err
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
	defer cancel()

	if err := s.units.UpdateLifecycle(writeCtx, next, u.State); err != nil {
		result := "error"
		if errors.Is(err, model.ErrInvalidTransition) {
			result = "rejected"
		}
		metrics.UnitTransitions.WithLabelValues(string(target), result).Inc()
		return nil, err
	}

	metrics.UnitTransitions.WithLabelValues(string(target), "ok").Inc()
	return next, nil
}

// Receive turns a purchase-order line into units in received_origin.
func (s *service) Receive(ctx context.Context, line model.PurchaseOrderLine) ([]*model.Unit, error) {
	const op = "unit.service.Receive"
	log := logger.With(
		logger.String("product_id", line.ProductID),
		logger.String("purchase_order_id", line.PurchaseOrderID),
		logger.Int("quantity", line.Quantity),
	)

	line.ProductID = strings.TrimSpace(line.ProductID)
	line.WarehouseID = strings.TrimSpace(line.WarehouseID)
	if err := validateLine(line); err != nil {
		log.Error(ctx, "validation: purchase order line", logger.ErrorF(err))
		return nil, err
	}

	readCtx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	product, err := s.products.ProductByID(readCtx, line.ProductID)
	cancel()
	if err != nil {
		log.Error(ctx, "repository product by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	receivedAt := now
	if !line.ReceivedAt.IsZero() {
		receivedAt = line.ReceivedAt.UTC()
	}
	sku := strings.TrimSpace(line.SKU)
	if sku == "" {
		sku = product.SKU
	}

	units := make([]*model.Unit, 0, line.Quantity)
	for range line.Quantity {
		units = append(units, &model.Unit{
			ID:              uuid.NewString(),
			ProductID:       product.ID,
			SKU:             sku,
			LotCode:         strings.TrimSpace(line.LotCode),
			PurchaseOrderID: strings.TrimSpace(line.PurchaseOrderID),
			WarehouseID:     line.WarehouseID,
			Country:         strings.TrimSpace(line.Country),
			State:           model.StateReceivedOrigin,
			ExpirationDate:  line.ExpirationDate,
			Cost:            line.UnitCost,
			ReceivedAt:      lo.ToPtr(receivedAt),
			UpdatedAt:       lo.ToPtr(now),
		})
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.writeDBTimeout)
	defer cancel()

	if err := s.units.CreateBatch(writeCtx, units); err != nil {
		log.Error(ctx, "repository create batch", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	metrics.UnitsReceived.Add(float64(len(units)))
	log.Info(ctx, "units received", logger.String("warehouse_id", line.WarehouseID))
	return units, nil
}

func validateLine(line model.PurchaseOrderLine) error {
	switch {
	case line.ProductID == "":
		return errors.Join(model.ErrInvalidArgument, errors.New("product id must be non-empty"))
	case line.WarehouseID == "":
		return errors.Join(model.ErrInvalidArgument, errors.New("warehouse id must be non-empty"))
	case line.Quantity <= 0:
		return errors.Join(model.ErrInvalidArgument, errors.New("quantity must be positive"))
	case line.Quantity > MaxReceiptQuantity:
		return errors.Join(model.ErrInvalidArgument, fmt.Errorf("quantity must not exceed %d", MaxReceiptQuantity))
	case line.UnitCost.IsNegative():
		return errors.Join(model.ErrInvalidArgument, errors.New("unit cost must be non-negative"))
	}
	return nil
}

// Rollup recomputes the product roll-up from its units on every call.
func (s *service) Rollup(ctx context.Context, productID string) (*model.ProductRollup, error) {
	const op = "unit.service.Rollup"
	log := logger.With(logger.String("product_id", productID))

	productID = strings.TrimSpace(productID)
	if productID == "" {
		log.Error(ctx, "validation: empty product id")
		return nil, errors.Join(model.ErrInvalidArgument, errors.New("product id must be non-empty"))
	}

	ctx, cancel := context.WithTimeout(ctx, s.readDBTimeout)
	defer cancel()

	product, err := s.products.ProductByID(ctx, productID)
	if err != nil {
		log.Error(ctx, "repository product by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	units, err := s.units.ListByProduct(ctx, productID)
	if err != nil {
		log.Error(ctx, "repository list by product", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	params := s.thresholds
	params.Now = s.now().UTC()
	if product.ReorderPoint != nil {
		params.ReorderPoint = *product.ReorderPoint
	}
	if product.Capacity != nil {
		params.Capacity = *product.Capacity
	}

	r := aggregator.Aggregate(units, params)
	r.ProductID = product.ID
	if r.SKU == "" {
		r.SKU = product.SKU
	}
	return r, nil
}
