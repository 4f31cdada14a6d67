package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/internal/repository/memory"
	"github.com/you-humble/supplement-inventory/internal/service/mocks"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

func TestMain(m *testing.M) {
	logger.SetNopLogger()
	m.Run()
}

type deps struct {
	repo       *memory.ClassificationRepository
	sequences  *memory.SequenceRepository
	products   *memory.ProductRepository
	propagator *mocks.MockPropagator
}

func newDeps(t *testing.T) deps {
	return deps{
		repo:       memory.NewClassificationRepository(),
		sequences:  memory.NewSequenceRepository(),
		products:   memory.NewProductRepository(),
		propagator: mocks.NewMockPropagator(t),
	}
}

func newSvc(d deps) *service {
	return NewClassificationService(d.repo, d.sequences, d.products, d.propagator, time.Second, time.Second)
}

func okResult(kind model.EntityKind, id string) *model.PropagationResult {
	return &model.PropagationResult{Kind: kind, EntityID: id}
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("codes follow the per-kind sequence", func(t *testing.T) {
		t.Parallel()

		svc := newSvc(newDeps(t))

		first, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindCategory, Name: "Vitaminas"})
		require.NoError(t, err)
		second, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindCategory, Name: "Minerales"})
		require.NoError(t, err)
		tag, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindTag, Name: "Sin Gluten"})
		require.NoError(t, err)

		assert.Equal(t, "CAT-0001", first.Code)
		assert.Equal(t, "CAT-0002", second.Code)
		assert.Equal(t, "TAG-0001", tag.Code)
		assert.Equal(t, "sin-gluten", tag.Slug)
		assert.True(t, tag.Active)
		assert.Equal(t, model.CategoryLevelRoot, first.Level)
	})

	t.Run("normalized names collide across spellings", func(t *testing.T) {
		t.Parallel()

		svc := newSvc(newDeps(t))

		_, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindTag, Name: "Sistema Inmune"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, model.CreateEntityParams{Kind: model.KindTag, Name: "sistema immune"})
		assert.ErrorIs(t, err, model.ErrDuplicateName)

		_, err = svc.Create(ctx, model.CreateEntityParams{Kind: model.KindProductType, Name: "Sistema  INMUNE"})
		assert.NoError(t, err, "uniqueness is per kind")
	})

	t.Run("sequence is seeded from existing codes", func(t *testing.T) {
		t.Parallel()

		d := newDeps(t)
		require.NoError(t, d.repo.Create(ctx, &model.Entity{ID: gofakeit.UUID(), Kind: model.KindTag, Code: "TAG-0007", Name: "Keto", NormalizedName: "keto"}))
		require.NoError(t, d.repo.Create(ctx, &model.Entity{ID: gofakeit.UUID(), Kind: model.KindTag, Code: "TAG-0003", Name: "Vegano", NormalizedName: "vegano"}))

		svc := newSvc(d)
		require.NoError(t, svc.SeedSequences(ctx))

		e, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindTag, Name: "Orgánico"})
		require.NoError(t, err)
		assert.Equal(t, "TAG-0008", e.Code)
	})

	t.Run("hierarchy rules", func(t *testing.T) {
		t.Parallel()

		svc := newSvc(newDeps(t))
		root, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindCategory, Name: "Deportes"})
		require.NoError(t, err)
		child, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindCategory, Name: "Proteínas", ParentID: root.ID})
		require.NoError(t, err)
		assert.Equal(t, model.CategoryLevelChild, child.Level)

		tests := []struct {
			name   string
			params model.CreateEntityParams
		}{
			{"grandchild", model.CreateEntityParams{Kind: model.KindCategory, Name: "Whey", Level: 2, ParentID: child.ID}},
			{"missing parent", model.CreateEntityParams{Kind: model.KindCategory, Name: "Whey", Level: 2, ParentID: "nope"}},
			{"level 2 without parent", model.CreateEntityParams{Kind: model.KindCategory, Name: "Whey", Level: 2}},
			{"level 1 with parent", model.CreateEntityParams{Kind: model.KindCategory, Name: "Whey", Level: 1, ParentID: root.ID}},
			{"level 3", model.CreateEntityParams{Kind: model.KindCategory, Name: "Whey", Level: 3}},
			{"tag with parent", model.CreateEntityParams{Kind: model.KindTag, Name: "Whey", ParentID: root.ID}},
			{"blank name", model.CreateEntityParams{Kind: model.KindTag, Name: "   "}},
			{"unknown kind", model.CreateEntityParams{Kind: "brand", Name: "Whey"}},
		}
		for _, tt := range tests {
			_, err := svc.Create(ctx, tt.params)
			assert.ErrorIs(t, err, model.ErrInvalidArgument, tt.name)
		}
	})
}

func TestServiceQuickCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newSvc(newDeps(t))

	created, isNew, err := svc.QuickCreate(ctx, model.KindTag, "Colágeno")
	require.NoError(t, err)
	assert.True(t, isNew)

	again, isNew, err := svc.QuickCreate(ctx, model.KindTag, "  colageno ")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.ID, again.ID)

	found, err := svc.FindByNormalizedName(ctx, model.KindTag, "COLÁGENO")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestServiceUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	type fixture struct {
		d     deps
		svc   *service
		root  *model.Entity
		child *model.Entity
		other *model.Entity
	}
	setup := func(t *testing.T) fixture {
		d := newDeps(t)
		svc := newSvc(d)
		root, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindCategory, Name: "Vitaminas"})
		require.NoError(t, err)
		child, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindCategory, Name: "Vitamina D", ParentID: root.ID})
		require.NoError(t, err)
		other, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindCategory, Name: "Minerales"})
		require.NoError(t, err)
		return fixture{d: d, svc: svc, root: root, child: child, other: other}
	}

	tests := []struct {
		name   string
		run    func(f fixture) (*model.UpdateEntityResult, error)
		setup  func(f fixture)
		assert func(t *testing.T, f fixture, res *model.UpdateEntityResult, err error)
	}{
		{
			name: "renaming a root category propagates it and its children",
			run: func(f fixture) (*model.UpdateEntityResult, error) {
				return f.svc.Update(ctx, model.KindCategory, f.root.ID, model.UpdateEntityParams{Name: lo.ToPtr("Vitaminas y Más")})
			},
			setup: func(f fixture) {
				f.d.propagator.On("Propagate", mock.Anything, model.KindCategory, f.root.ID).
					Return(okResult(model.KindCategory, f.root.ID), nil).Once()
				f.d.propagator.On("Propagate", mock.Anything, model.KindCategory, f.child.ID).
					Return(okResult(model.KindCategory, f.child.ID), nil).Once()
			},
			assert: func(t *testing.T, f fixture, res *model.UpdateEntityResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Vitaminas y Más", res.Entity.Name)
				assert.Equal(t, "vitaminas-y-mas", res.Entity.Slug)
				assert.Equal(t, f.root.Code, res.Entity.Code)
				assert.Len(t, res.Propagation, 2)

				stored, err := f.d.repo.ByID(ctx, model.KindCategory, f.root.ID)
				require.NoError(t, err)
				assert.Equal(t, "vitaminas y mas", stored.NormalizedName)
			},
		},
		{
			name: "rename onto another entity's name is refused",
			run: func(f fixture) (*model.UpdateEntityResult, error) {
				return f.svc.Update(ctx, model.KindCategory, f.root.ID, model.UpdateEntityParams{Name: lo.ToPtr("MINERALES")})
			},
			assert: func(t *testing.T, f fixture, res *model.UpdateEntityResult, err error) {
				assert.ErrorIs(t, err, model.ErrDuplicateName)
				assert.Nil(t, res)
			},
		},
		{
			name: "re-parenting a child to another root",
			run: func(f fixture) (*model.UpdateEntityResult, error) {
				return f.svc.Update(ctx, model.KindCategory, f.child.ID, model.UpdateEntityParams{ParentID: lo.ToPtr(f.other.ID)})
			},
			setup: func(f fixture) {
				f.d.propagator.On("Propagate", mock.Anything, model.KindCategory, f.child.ID).
					Return(okResult(model.KindCategory, f.child.ID), nil).Once()
			},
			assert: func(t *testing.T, f fixture, res *model.UpdateEntityResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, f.other.ID, res.Entity.ParentID)
			},
		},
		{
			name: "a root category cannot gain a parent",
			run: func(f fixture) (*model.UpdateEntityResult, error) {
				return f.svc.Update(ctx, model.KindCategory, f.other.ID, model.UpdateEntityParams{ParentID: lo.ToPtr(f.root.ID)})
			},
			assert: func(t *testing.T, f fixture, res *model.UpdateEntityResult, err error) {
				assert.ErrorIs(t, err, model.ErrInvalidArgument)
			},
		},
		{
			name: "empty update",
			run: func(f fixture) (*model.UpdateEntityResult, error) {
				return f.svc.Update(ctx, model.KindCategory, f.root.ID, model.UpdateEntityParams{})
			},
			assert: func(t *testing.T, f fixture, res *model.UpdateEntityResult, err error) {
				assert.ErrorIs(t, err, model.ErrInvalidArgument)
			},
		},
		{
			name: "unknown entity",
			run: func(f fixture) (*model.UpdateEntityResult, error) {
				return f.svc.Update(ctx, model.KindTag, gofakeit.UUID(), model.UpdateEntityParams{Icon: lo.ToPtr("leaf")})
			},
			assert: func(t *testing.T, f fixture, res *model.UpdateEntityResult, err error) {
				assert.ErrorIs(t, err, model.ErrNotFound)
			},
		},
		{
			name: "propagation failure is reported with the saved entity",
			run: func(f fixture) (*model.UpdateEntityResult, error) {
				return f.svc.Update(ctx, model.KindCategory, f.child.ID, model.UpdateEntityParams{Color: lo.ToPtr("#ff8800")})
			},
			setup: func(f fixture) {
				partial := okResult(model.KindCategory, f.child.ID)
				partial.Errors = []model.ProductFailure{{ProductID: "p1", Err: errors.New("boom")}}
				f.d.propagator.On("Propagate", mock.Anything, model.KindCategory, f.child.ID).
					Return(partial, errors.Join(model.ErrPropagationPartialFailure, errors.New("1 of 1 products failed"))).Once()
			},
			assert: func(t *testing.T, f fixture, res *model.UpdateEntityResult, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrPropagationPartialFailure)
				require.NotNil(t, res)
				assert.Equal(t, "#ff8800", res.Entity.Color)
				require.Len(t, res.Propagation, 1)
				assert.True(t, res.Propagation[0].Failed())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := setup(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			res, err := tt.run(f)
			tt.assert(t, f, res, err)
		})
	}
}

func TestServiceDeleteReferentialIntegrity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := newDeps(t)
	svc := newSvc(d)

	pt, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindProductType, Name: "Cápsulas"})
	require.NoError(t, err)

	product := &model.Product{ID: "p1", Active: true, ProductTypeID: pt.ID}
	require.NoError(t, d.products.CreateBatch(ctx, []*model.Product{product}))

	err = svc.Delete(ctx, model.KindProductType, pt.ID)
	assert.ErrorIs(t, err, model.ErrReferentialIntegrity)

	stored, err := svc.Get(ctx, model.KindProductType, pt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EntityMetrics{ActiveProducts: 1, TotalProducts: 1}, stored.Metrics)

	product.Active = false
	require.NoError(t, d.products.CreateBatch(ctx, []*model.Product{product}))

	require.NoError(t, svc.Delete(ctx, model.KindProductType, pt.ID))
	_, err = svc.Get(ctx, model.KindProductType, pt.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestServiceDeactivateAndActivate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := newDeps(t)
	svc := newSvc(d)

	root, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindCategory, Name: "Herbales"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindCategory, Name: "Té", ParentID: root.ID})
	require.NoError(t, err)

	_, err = svc.Deactivate(ctx, model.KindCategory, root.ID)
	assert.ErrorIs(t, err, model.ErrReferentialIntegrity, "root with children")

	d.propagator.On("Propagate", mock.Anything, model.KindCategory, child.ID).
		Return(okResult(model.KindCategory, child.ID), nil).Once()
	res, err := svc.Deactivate(ctx, model.KindCategory, child.ID)
	require.NoError(t, err)
	assert.False(t, res.Entity.Active)
	assert.Len(t, res.Propagation, 1)

	again, err := svc.Deactivate(ctx, model.KindCategory, child.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Propagation, "already inactive")

	require.NoError(t, svc.Delete(ctx, model.KindCategory, child.ID))
	d.propagator.On("Propagate", mock.Anything, model.KindCategory, root.ID).
		Return(okResult(model.KindCategory, root.ID), nil).Once()
	_, err = svc.Deactivate(ctx, model.KindCategory, root.ID)
	require.NoError(t, err)

	orphan, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindCategory, Name: "Infusiones", ParentID: root.ID})
	require.NoError(t, err)
	d.propagator.On("Propagate", mock.Anything, model.KindCategory, orphan.ID).
		Return(okResult(model.KindCategory, orphan.ID), nil).Once()
	_, err = svc.Deactivate(ctx, model.KindCategory, orphan.ID)
	require.NoError(t, err)

	_, err = svc.Activate(ctx, model.KindCategory, orphan.ID)
	assert.ErrorIs(t, err, model.ErrInvalidArgument, "parent is inactive")

	res, err = svc.Activate(ctx, model.KindCategory, root.ID)
	require.NoError(t, err)
	assert.True(t, res.Entity.Active)
}

func TestServiceRefreshMetrics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	d := newDeps(t)
	svc := newSvc(d)

	tag, err := svc.Create(ctx, model.CreateEntityParams{Kind: model.KindTag, Name: "Vegano"})
	require.NoError(t, err)
	require.NoError(t, d.products.CreateBatch(ctx, []*model.Product{
		{ID: "p1", Active: true, TagIDs: []string{tag.ID}},
		{ID: "p2", Active: false, TagIDs: []string{tag.ID}},
		{ID: "p3", Active: true},
	}))

	e, err := svc.RefreshMetrics(ctx, model.KindTag, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EntityMetrics{ActiveProducts: 1, TotalProducts: 2}, e.Metrics)
}
