package repository

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/you-humble/supplement-inventory/internal/model"
)

func DocumentToModel(kind model.EntityKind, d *EntityDocument) *model.Entity {
	if d == nil {
		return nil
	}

	return &model.Entity{
		ID:             d.ID,
		Kind:           kind,
		Code:           d.Code,
		Name:           d.Name,
		NormalizedName: d.NormalizedName,
		Slug:           d.Slug,
		Description:    d.Description,
		Icon:           d.Icon,
		Color:          d.Color,
		Active:         d.Active,
		Level:          d.Level,
		ParentID:       d.ParentID,
		Order:          d.Order,
		Metrics: model.EntityMetrics{
			ActiveProducts: d.Metrics.ActiveProducts,
			TotalProducts:  d.Metrics.TotalProducts,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func DocumentFromModel(e *model.Entity) *EntityDocument {
	if e == nil {
		return nil
	}

	return &EntityDocument{
		ID:             e.ID,
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
		Metrics: MetricsDocument{
			ActiveProducts: e.Metrics.ActiveProducts,
			TotalProducts:  e.Metrics.TotalProducts,
		},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func BuildMongoFilter(f model.EntityFilter) bson.M {
	q := bson.M{}

	if f.ActiveOnly {
		q["active"] = true
	}
	if f.Level != 0 {
		q["level"] = f.Level
	}
	if f.ParentID != "" {
		q["parent_id"] = f.ParentID
	}

	return q
}
