package converter

import (
	"time"

	"github.com/samber/lo"

	inventoryv1 "github.com/you-humble/supplement-inventory/internal/api/inventory/v1"
	"github.com/you-humble/supplement-inventory/internal/model"
)

func ReceiveRequestToLine(req *inventoryv1.ReceiveRequest) model.PurchaseOrderLine {
	line := model.PurchaseOrderLine{
		PurchaseOrderID: req.PurchaseOrderID,
		ProductID:       req.ProductID,
		SKU:             req.SKU,
		LotCode:         req.LotCode,
		Quantity:        req.Quantity,
		UnitCost:        req.UnitCost,
		ExpirationDate:  req.ExpirationDate,
		WarehouseID:     req.WarehouseID,
		Country:         req.Country,
	}
	if req.ReceivedAt != nil {
		line.ReceivedAt = *req.ReceivedAt
	}
	return line
}

func TransitionRequestToMetadata(req *inventoryv1.TransitionRequest) model.TransitionMetadata {
	meta := model.TransitionMetadata{
		WarehouseID: req.WarehouseID,
		Country:     req.Country,
		Reference:   req.Reference,
		Reason:      req.Reason,
	}
	if req.At != nil {
		meta.At = *req.At
	}
	return meta
}

func TransitionRequestToParams(unitID string, req *inventoryv1.TransitionRequest) model.TransitionParams {
	return model.TransitionParams{
		UnitID:   unitID,
		Target:   model.UnitState(req.TargetState),
		Metadata: TransitionRequestToMetadata(req),
	}
}

func BatchTransitionRequestToParams(req *inventoryv1.BatchTransitionRequest) model.BatchTransitionParams {
	return model.BatchTransitionParams{
		UnitIDs:  req.UnitIDs,
		Target:   model.UnitState(req.TargetState),
		Metadata: TransitionRequestToMetadata(&req.TransitionRequest),
	}
}

func UnitToAPI(u *model.Unit) inventoryv1.Unit {
	if u == nil {
		return inventoryv1.Unit{}
	}

	return inventoryv1.Unit{
		ID:              u.ID,
		ProductID:       u.ProductID,
		SKU:             u.SKU,
		LotCode:         u.LotCode,
		PurchaseOrderID: u.PurchaseOrderID,
		WarehouseID:     u.WarehouseID,
		Country:         u.Country,
		State:           string(u.State),
		AllowedTargets:  statesToAPI(model.AllowedTargets(u.State)),
		ExpirationDate:  u.ExpirationDate,
		Cost:            u.Cost,
		Reference:       u.Reference,
		Reason:          u.Reason,
		ReceivedAt:      u.ReceivedAt,
		TransferredAt:   u.TransferredAt,
		ArrivedAt:       u.ArrivedAt,
		ReservedAt:      u.ReservedAt,
		SoldAt:          u.SoldAt,
		DisposedAt:      u.DisposedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func UnitsToAPI(units []*model.Unit) []inventoryv1.Unit {
	return lo.Map(units, func(u *model.Unit, _ int) inventoryv1.Unit { return UnitToAPI(u) })
}

// BatchResultToResponse renders per-unit failures with the status code the
// caller assigns to each error.
func BatchResultToResponse(res *model.BatchTransitionResult, status func(error) int) inventoryv1.BatchTransitionResponse {
	out := inventoryv1.BatchTransitionResponse{
		Updated:  UnitsToAPI(res.Updated),
		Failures: make([]inventoryv1.UnitFailure, 0, len(res.Failures)),
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, inventoryv1.UnitFailure{
			UnitID:  f.UnitID,
			Code:    status(f.Err),
			Message: f.Err.Error(),
		})
	}
	return out
}

func RollupToAPI(r *model.ProductRollup) inventoryv1.Rollup {
	counts := make(map[string]int, len(r.Counts))
	for s, n := range r.Counts {
		counts[string(s)] = n
	}

	return inventoryv1.Rollup{
		ProductID:              r.ProductID,
		SKU:                    r.SKU,
		Counts:                 counts,
		ReceivedOrigin:         r.ReceivedOrigin,
		InTransitOrigin:        r.InTransitOrigin,
		InTransitDestination:   r.InTransitDestination,
		AvailableAtDestination: r.AvailableAtDestination,
		Reserved:               r.Reserved,
		Sold:                   r.Sold,
		Expired:                r.Expired,
		Damaged:                r.Damaged,
		InTransit:              r.InTransit,
		Problems:               r.Problems,
		TotalUnits:             r.TotalUnits,
		TotalValue:             r.TotalValue,
		AverageCost:            r.AverageCost,
		ExpiringSoon:           r.ExpiringSoon,
		PastExpiration:         r.PastExpiration,
		NextExpiration:         r.NextExpiration,
		StockCritical:          r.StockCritical,
		Alerts: lo.Map(r.Alerts, func(a model.Alert, _ int) inventoryv1.Alert {
			return inventoryv1.Alert{Code: string(a.Code), Count: a.Count}
		}),
		AllocationOrder: lo.Ternary(r.AllocationOrder == nil, []string{}, r.AllocationOrder),
		ByWarehouse:     lo.Ternary(r.ByWarehouse == nil, map[string]int{}, r.ByWarehouse),
		ComputedAt:      r.ComputedAt.UTC().Truncate(time.Millisecond),
	}
}

func statesToAPI(states []model.UnitState) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, string(s))
	}
	return out
}
