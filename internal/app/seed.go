package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

type catalogueWriter interface {
	CreateBatch(ctx context.Context, products []*model.Product) error
}

// seedCatalogue fills an empty in-memory product store so that receipts and
// roll-ups have products to point at. The mongo catalogue is owned elsewhere
// and is never seeded.
func seedCatalogue(ctx context.Context, store catalogueWriter) ([]*model.Product, error) {
	now := time.Now().UTC()

	products := []*model.Product{
		{SKU: "VIT-C-1000", Name: "Vitamina C 1000 mg", Active: true},
		{SKU: "VIT-D3-2000", Name: "Vitamina D3 2000 UI", Active: true, ReorderPoint: lo.ToPtr(20), Capacity: lo.ToPtr(200)},
		{SKU: "MAG-CIT-400", Name: "Citrato de Magnesio 400 mg", Active: true},
		{SKU: "OMEGA-3-1200", Name: "Omega 3 1200 mg", Active: false},
	}
	for _, p := range products {
		p.ID = uuid.NewString()
		p.UpdatedAt = &now
	}

	if err := store.CreateBatch(ctx, products); err != nil {
		return nil, fmt.Errorf("seed catalogue: %w", err)
	}

	for _, p := range products {
		logger.Info(ctx, "seeded product",
			logger.String("product_id", p.ID),
			logger.String("sku", p.SKU),
		)
	}
	return products, nil
}
