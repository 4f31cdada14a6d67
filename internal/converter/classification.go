package converter

import (
	"github.com/samber/lo"

	inventoryv1 "github.com/you-humble/supplement-inventory/internal/api/inventory/v1"
	"github.com/you-humble/supplement-inventory/internal/model"
)

func CreateEntityRequestToParams(kind model.EntityKind, req *inventoryv1.CreateEntityRequest) model.CreateEntityParams {
	return model.CreateEntityParams{
		Kind:        kind,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Level:       req.Level,
		ParentID:    req.ParentID,
		Order:       req.Order,
	}
}

func UpdateEntityRequestToParams(req *inventoryv1.UpdateEntityRequest) model.UpdateEntityParams {
	return model.UpdateEntityParams{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		ParentID:    req.ParentID,
		Order:       req.Order,
	}
}

func EntityToAPI(e *model.Entity) inventoryv1.Entity {
	if e == nil {
		return inventoryv1.Entity{}
	}

	return inventoryv1.Entity{
		ID:             e.ID,
		Kind:           string(e.Kind),
		Code:           e.Code,
		Name:           e.Name,
		NormalizedName: e.NormalizedName,
		Slug:           e.Slug,
		Description:    e.Description,
		Icon:           e.Icon,
		Color:          e.Color,
		Active:         e.Active,
		Level:          e.Level,
		ParentID:       e.ParentID,
		Order:          e.Order,
		Metrics: inventoryv1.EntityMetrics{
			ActiveProducts: e.Metrics.ActiveProducts,
			TotalProducts:  e.Metrics.TotalProducts,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func EntitiesToAPI(entities []*model.Entity) []inventoryv1.Entity {
	return lo.Map(entities, func(e *model.Entity, _ int) inventoryv1.Entity { return EntityToAPI(e) })
}

func UpdateResultToAPI(res *model.UpdateEntityResult) inventoryv1.UpdateEntityResponse {
	return inventoryv1.UpdateEntityResponse{
		Entity:      EntityToAPI(res.Entity),
		Propagation: PropagationsToAPI(res.Propagation),
	}
}
