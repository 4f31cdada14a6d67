package repository

import (
	"github.com/samber/lo"

	"github.com/you-humble/supplement-inventory/internal/model"
)

func EntityToModel(e *ProductEntity) *model.Product {
	if e == nil {
		return nil
	}

	out := &model.Product{
		ID:            e.ID,
		SKU:           e.SKU,
		Name:          e.Name,
		Active:        e.Active,
		CategoryIDs:   e.CategoryIDs,
		Categories:    snapshotsToModel(e.Categories),
		TagIDs:        e.TagIDs,
		Tags:          snapshotsToModel(e.Tags),
		ProductTypeID: e.ProductTypeID,
		ReorderPoint:  e.ReorderPoint,
		Capacity:      e.Capacity,
		Version:       e.Version,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.ProductType != nil {
		out.ProductType = lo.ToPtr(snapshotToModel(*e.ProductType))
	}

	return out
}

func EntityFromModel(p *model.Product) *ProductEntity {
	if p == nil {
		return nil
	}

	out := &ProductEntity{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Active:        p.Active,
		CategoryIDs:   p.CategoryIDs,
		Categories:    SnapshotsFromModel(p.Categories),
		TagIDs:        p.TagIDs,
		Tags:          SnapshotsFromModel(p.Tags),
		ProductTypeID: p.ProductTypeID,
		ReorderPoint:  p.ReorderPoint,
		Capacity:      p.Capacity,
		Version:       p.Version,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.ProductType != nil {
		out.ProductType = lo.ToPtr(snapshotFromModel(*p.ProductType))
	}

	return out
}

func SnapshotsFromModel(in []model.Snapshot) []SnapshotEntity {
	if in == nil {
		return nil
	}
	return lo.Map(in, func(s model.Snapshot, _ int) SnapshotEntity { return snapshotFromModel(s) })
}

func snapshotsToModel(in []SnapshotEntity) []model.Snapshot {
	if in == nil {
		return nil
	}
	return lo.Map(in, func(s SnapshotEntity, _ int) model.Snapshot { return snapshotToModel(s) })
}

func snapshotToModel(s SnapshotEntity) model.Snapshot {
	return model.Snapshot{
		ID:         s.ID,
		Code:       s.Code,
		Name:       s.Name,
		Slug:       s.Slug,
		Icon:       s.Icon,
		Color:      s.Color,
		Level:      s.Level,
		ParentID:   s.ParentID,
		ParentName: s.ParentName,
	}
}

func snapshotFromModel(s model.Snapshot) SnapshotEntity {
	return SnapshotEntity{
		ID:         s.ID,
		Code:       s.Code,
		Name:       s.Name,
		Slug:       s.Slug,
		Icon:       s.Icon,
		Color:      s.Color,
		Level:      s.Level,
		ParentID:   s.ParentID,
		ParentName: s.ParentName,
	}
}

// referenceField is the back-reference index for kind.
func referenceField(kind model.EntityKind) (string, bool) {
	switch kind {
	case model.KindCategory:
		return "category_ids", true
	case model.KindTag:
		return "tag_ids", true
	case model.KindProductType:
		return "product_type_id", true
	default:
		return "", false
	}
}

// snapshotValue returns the document field and value storing the snapshots
// of kind.
func snapshotValue(kind model.EntityKind, snaps []model.Snapshot) (string, any, bool) {
	switch kind {
	case model.KindCategory:
		return "categories", SnapshotsFromModel(snaps), true
	case model.KindTag:
		return "tags", SnapshotsFromModel(snaps), true
	case model.KindProductType:
		if len(snaps) == 0 {
			return "product_type", nil, true
		}
		return "product_type", snapshotFromModel(snaps[0]), true
	default:
		return "", nil, false
	}
}
