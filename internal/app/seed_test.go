package app

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/internal/repository/memory"
)

type failingWriter struct{}

func (failingWriter) CreateBatch(context.Context, []*model.Product) error {
	return errors.New("store closed")
}

func TestSeedCatalogue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewProductRepository()

	seeded, err := seedCatalogue(ctx, store)
	require.NoError(t, err)
	require.NotEmpty(t, seeded)

	skus := lo.Map(seeded, func(p *model.Product, _ int) string { return p.SKU })
	assert.Len(t, lo.Uniq(skus), len(skus))

	for _, p := range seeded {
		got, err := store.ProductByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.SKU, got.SKU)
	}

	_, err = seedCatalogue(ctx, failingWriter{})
	assert.ErrorContains(t, err, "store closed")
}
