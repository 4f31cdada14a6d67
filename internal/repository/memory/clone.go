package memory

import (
	"slices"

	"github.com/you-humble/supplement-inventory/internal/model"
)

func cloneUnit(u *model.Unit) *model.Unit {
	out := *u
	out.ExpirationDate = copyPtr(u.ExpirationDate)
	out.ReceivedAt = copyPtr(u.ReceivedAt)
	out.TransferredAt = copyPtr(u.TransferredAt)
	out.ArrivedAt = copyPtr(u.ArrivedAt)
	out.ReservedAt = copyPtr(u.ReservedAt)
	out.SoldAt = copyPtr(u.SoldAt)
	out.DisposedAt = copyPtr(u.DisposedAt)
	out.UpdatedAt = copyPtr(u.UpdatedAt)
	return &out
}

func cloneProduct(p *model.Product) *model.Product {
	out := *p
	out.CategoryIDs = slices.Clone(p.CategoryIDs)
	out.Categories = slices.Clone(p.Categories)
	out.TagIDs = slices.Clone(p.TagIDs)
	out.Tags = slices.Clone(p.Tags)
	out.ProductType = copyPtr(p.ProductType)
	out.ReorderPoint = copyPtr(p.ReorderPoint)
	out.Capacity = copyPtr(p.Capacity)
	out.UpdatedAt = copyPtr(p.UpdatedAt)
	return &out
}

func cloneEntity(e *model.Entity) *model.Entity {
	out := *e
	out.CreatedAt = copyPtr(e.CreatedAt)
	out.UpdatedAt = copyPtr(e.UpdatedAt)
	return &out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
