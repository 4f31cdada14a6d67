package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/supplement-inventory/internal/model"
)

func TestUnitRepositoryUpdateLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewUnitRepository()

	u := &model.Unit{
		ID:          gofakeit.UUID(),
		ProductID:   gofakeit.UUID(),
		WarehouseID: "wh-origin",
		State:       model.StateReceivedOrigin,
		Cost:        decimal.RequireFromString("12.50"),
	}
	require.NoError(t, repo.CreateBatch(ctx, []*model.Unit{u}))

	next := *u
	next.State = model.StateInTransitOrigin
	next.Cost = decimal.NewFromInt(999)
	require.NoError(t, repo.UpdateLifecycle(ctx, &next, model.StateReceivedOrigin))

	got, err := repo.UnitByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StateInTransitOrigin, got.State)
	assert.True(t, decimal.RequireFromString("12.50").Equal(got.Cost), "cost must stay immutable")

	stale := *u
	stale.State = model.StateDamaged
	err = repo.UpdateLifecycle(ctx, &stale, model.StateReceivedOrigin)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	missing := model.Unit{ID: "missing", State: model.StateDamaged}
	assert.ErrorIs(t, repo.UpdateLifecycle(ctx, &missing, model.StateReceivedOrigin), model.ErrUnitNotFound)
}

func TestUnitRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUnitRepository()

	u := &model.Unit{ID: "u1", ProductID: "p1", State: model.StateAvailableDestination}
	require.NoError(t, repo.CreateBatch(ctx, []*model.Unit{u}))
	u.State = model.StateSold

	got, err := repo.UnitByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, model.StateAvailableDestination, got.State)

	assert.Error(t, repo.CreateBatch(ctx, []*model.Unit{{ID: "u1"}}))
}

func TestProductRepositoryUpdateSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	p := &model.Product{ID: "p1", TagIDs: []string{"t1"}, Tags: []model.Snapshot{{ID: "t1", Name: "Old"}}}
	require.NoError(t, repo.CreateBatch(ctx, []*model.Product{p}))

	refs, err := repo.ListByReference(ctx, model.KindTag, "t1")
	require.NoError(t, err)
	require.Len(t, refs, 1)

	snaps := []model.Snapshot{{ID: "t1", Name: "New"}}
	require.NoError(t, repo.UpdateSnapshots(ctx, "p1", model.KindTag, snaps, 0))
	assert.ErrorIs(t, repo.UpdateSnapshots(ctx, "p1", model.KindTag, snaps, 0), model.ErrVersionConflict)
	assert.ErrorIs(t, repo.UpdateSnapshots(ctx, "nope", model.KindTag, snaps, 0), model.ErrProductNotFound)

	got, err := repo.ProductByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, "New", got.Tags[0].Name)
}

func TestClassificationRepositoryUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewClassificationRepository()

	first := &model.Entity{ID: "a", Kind: model.KindTag, Code: "TAG-0001", Name: "Vegano", NormalizedName: "vegano"}
	require.NoError(t, repo.Create(ctx, first))

	dup := &model.Entity{ID: "b", Kind: model.KindTag, Code: "TAG-0002", Name: "VEGANO", NormalizedName: "vegano"}
	assert.ErrorIs(t, repo.Create(ctx, dup), model.ErrDuplicateName)

	other := &model.Entity{ID: "b", Kind: model.KindProductType, Code: "TPR-0001", Name: "Vegano", NormalizedName: "vegano"}
	assert.NoError(t, repo.Create(ctx, other), "names are unique per kind only")

	renamed := *first
	renamed.Name = "Vegano!"
	assert.NoError(t, repo.Update(ctx, &renamed), "an entity never collides with itself")
}

func TestSequenceRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSequenceRepository()

	require.NoError(t, repo.Seed(ctx, model.KindCategory, 7))
	require.NoError(t, repo.Seed(ctx, model.KindCategory, 3))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]struct{})
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := repo.Next(ctx, model.KindCategory)
			assert.NoError(t, err)
			mu.Lock()
			seen[n] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 20)
	for n := range seen {
		assert.Greater(t, n, int64(7))
	}
}
