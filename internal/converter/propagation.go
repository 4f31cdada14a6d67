package converter

import (
	"github.com/samber/lo"

	inventoryv1 "github.com/you-humble/supplement-inventory/internal/api/inventory/v1"
	"github.com/you-humble/supplement-inventory/internal/model"
)

func PropagationToAPI(r *model.PropagationResult) inventoryv1.Propagation {
	if r == nil {
		return inventoryv1.Propagation{Errors: []inventoryv1.ProductFailure{}}
	}

	return inventoryv1.Propagation{
		Kind:      string(r.Kind),
		EntityID:  r.EntityID,
		Matched:   r.Matched,
		Affected:  r.Affected,
		Unchanged: r.Unchanged,
		Errors: lo.Map(r.Errors, func(f model.ProductFailure, _ int) inventoryv1.ProductFailure {
			return inventoryv1.ProductFailure{ProductID: f.ProductID, Message: f.Err.Error()}
		}),
		DurationMS: r.Duration.Milliseconds(),
	}
}

func PropagationsToAPI(results []*model.PropagationResult) []inventoryv1.Propagation {
	return lo.Map(results, func(r *model.PropagationResult, _ int) inventoryv1.Propagation {
		return PropagationToAPI(r)
	})
}

func RepairRequestToKinds(req *inventoryv1.RepairRequest) []model.EntityKind {
	return lo.Map(req.Kinds, func(k string, _ int) model.EntityKind { return model.EntityKind(k) })
}

func RepairResultToAPI(res *model.RepairResult) inventoryv1.RepairResponse {
	return inventoryv1.RepairResponse{
		Entities:  res.Entities,
		Affected:  res.Affected,
		Unchanged: res.Unchanged,
		Results:   PropagationsToAPI(res.Results),
		Errors: lo.Map(res.Errors, func(f model.EntityFailure, _ int) inventoryv1.EntityFailure {
			return inventoryv1.EntityFailure{Kind: string(f.Kind), EntityID: f.EntityID, Message: f.Err.Error()}
		}),
	}
}
