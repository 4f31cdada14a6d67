package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryv1 "github.com/you-humble/supplement-inventory/internal/api/inventory/v1"
	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/internal/repository/memory"
	classificationsvc "github.com/you-humble/supplement-inventory/internal/service/classification"
	propagationsvc "github.com/you-humble/supplement-inventory/internal/service/propagation"
	unitsvc "github.com/you-humble/supplement-inventory/internal/service/unit"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

func TestMain(m *testing.M) {
	logger.SetNopLogger()
	m.Run()
}

type deps struct {
	units    *memory.UnitRepository
	products *memory.ProductRepository
	entities *memory.ClassificationRepository
	server   *httptest.Server
}

func newDeps(t *testing.T) deps {
	t.Helper()

	d := deps{
		units:    memory.NewUnitRepository(),
		products: memory.NewProductRepository(),
		entities: memory.NewClassificationRepository(),
	}

	thresholds := model.RollupParams{ExpiryWindowDays: 30, ReorderPoint: 2, Capacity: 100, CriticalRatio: 0.1}
	units := unitsvc.NewUnitService(d.units, d.products, thresholds, time.Second, time.Second)
	propagation := propagationsvc.NewPropagationService(d.entities, d.products, 4, 3, time.Second, time.Second)
	entities := classificationsvc.NewClassificationService(
		d.entities, memory.NewSequenceRepository(), d.products, propagation, time.Second, time.Second,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, RequestContext)
	r.Route("/api/v1", NewInventoryHandler(units, entities, propagation).Routes)

	d.server = httptest.NewServer(r)
	t.Cleanup(d.server.Close)
	return d
}

func (d deps) seedProduct(t *testing.T, p *model.Product) {
	t.Helper()
	require.NoError(t, d.products.CreateBatch(context.Background(), []*model.Product{p}))
}

func (d deps) do(t *testing.T, method, path string, body any, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, d.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestUnitLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	d.seedProduct(t, &model.Product{ID: "prod-1", SKU: "OMEGA-3", Active: true})

	var received inventoryv1.UnitList
	resp := d.do(t, http.MethodPost, "/api/v1/receipts", inventoryv1.ReceiveRequest{
		PurchaseOrderID: "po-1",
		ProductID:       "prod-1",
		Quantity:        3,
		UnitCost:        decimal.RequireFromString("10.50"),
		WarehouseID:     "wh-origin",
		Country:         "CN",
	}, &received)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, received.Items, 3)
	assert.Equal(t, "OMEGA-3", received.Items[0].SKU)
	assert.Equal(t, string(model.StateReceivedOrigin), received.Items[0].State)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	id := received.Items[0].ID

	var moved inventoryv1.Unit
	resp = d.do(t, http.MethodPost, "/api/v1/units/"+id+"/transitions",
		inventoryv1.TransitionRequest{TargetState: string(model.StateInTransitOrigin)}, &moved)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, string(model.StateInTransitOrigin), moved.State)
	assert.NotNil(t, moved.TransferredAt)

	var skipped inventoryv1.Error
	resp = d.do(t, http.MethodPost, "/api/v1/units/"+id+"/transitions",
		inventoryv1.TransitionRequest{TargetState: string(model.StateSold)}, &skipped)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, http.StatusConflict, skipped.Code)

	var damaged inventoryv1.Unit
	resp = d.do(t, http.MethodPost, "/api/v1/units/"+received.Items[1].ID+"/transitions",
		inventoryv1.TransitionRequest{TargetState: string(model.StateDamaged), Reason: "crushed"}, &damaged)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, damaged.AllowedTargets)

	var rollup inventoryv1.Rollup
	resp = d.do(t, http.MethodGet, "/api/v1/products/prod-1/rollup", nil, &rollup)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, rollup.TotalUnits)
	assert.Equal(t, 1, rollup.ReceivedOrigin)
	assert.Equal(t, 1, rollup.InTransitOrigin)
	assert.Equal(t, 1, rollup.Damaged)
	assert.True(t, rollup.TotalValue.Equal(decimal.RequireFromString("21")), rollup.TotalValue.String())

	var listed inventoryv1.UnitList
	resp = d.do(t, http.MethodGet, "/api/v1/products/prod-1/units?order=fefo", nil, &listed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, listed.Items, 3)
}

func TestUnitErrorsOverHTTP(t *testing.T) {
	t.Parallel()

	d := newDeps(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
	}{
		{
			name:     "unknown unit",
			method:   http.MethodGet,
			path:     "/api/v1/units/missing",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "receipt for unknown product",
			method:   http.MethodPost,
			path:     "/api/v1/receipts",
			body:     inventoryv1.ReceiveRequest{ProductID: "ghost", Quantity: 1, WarehouseID: "wh"},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "receipt without quantity",
			method:   http.MethodPost,
			path:     "/api/v1/receipts",
			body:     inventoryv1.ReceiveRequest{ProductID: "ghost", WarehouseID: "wh"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown body field",
			method:   http.MethodPost,
			path:     "/api/v1/receipts",
			body:     map[string]any{"product": "x"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown unit order",
			method:   http.MethodGet,
			path:     "/api/v1/products/prod-1/units?order=lifo",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "rollup of unknown product",
			method:   http.MethodGet,
			path:     "/api/v1/products/ghost/rollup",
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body inventoryv1.Error
			resp := d.do(t, tt.method, tt.path, tt.body, &body)

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestBatchTransitionOverHTTP(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	d.seedProduct(t, &model.Product{ID: "prod-1", SKU: "ZINC", Active: true})

	var received inventoryv1.UnitList
	d.do(t, http.MethodPost, "/api/v1/receipts", inventoryv1.ReceiveRequest{
		ProductID: "prod-1", Quantity: 2, UnitCost: decimal.NewFromInt(5), WarehouseID: "wh",
	}, &received)
	require.Len(t, received.Items, 2)

	var res inventoryv1.BatchTransitionResponse
	resp := d.do(t, http.MethodPost, "/api/v1/units/transitions", inventoryv1.BatchTransitionRequest{
		UnitIDs:           []string{received.Items[0].ID, "ghost", received.Items[1].ID},
		TransitionRequest: inventoryv1.TransitionRequest{TargetState: string(model.StateExpired), Reason: "lot recall"},
	}, &res)

	assert.Equal(t, http.StatusMultiStatus, resp.StatusCode)
	assert.Len(t, res.Updated, 2)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "ghost", res.Failures[0].UnitID)
	assert.Equal(t, http.StatusNotFound, res.Failures[0].Code)
}

func TestClassificationOverHTTP(t *testing.T) {
	t.Parallel()

	d := newDeps(t)

	var tag inventoryv1.Entity
	resp := d.do(t, http.MethodPost, "/api/v1/classifications/tags",
		inventoryv1.CreateEntityRequest{Name: "Sistema Inmune"}, &tag)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "TAG-0001", tag.Code)

	var dup inventoryv1.Error
	resp = d.do(t, http.MethodPost, "/api/v1/classifications/tag",
		inventoryv1.CreateEntityRequest{Name: "sistema immune"}, &dup)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var quick inventoryv1.QuickCreateResponse
	resp = d.do(t, http.MethodPost, "/api/v1/classifications/tags/quick",
		inventoryv1.QuickCreateRequest{Name: "SISTEMA INMUNE"}, &quick)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, quick.Created)
	assert.Equal(t, tag.ID, quick.Entity.ID)

	var found inventoryv1.Entity
	resp = d.do(t, http.MethodGet, "/api/v1/classifications/tags/lookup?name=Sistema%20Inmune", nil, &found)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, tag.ID, found.ID)

	d.seedProduct(t, &model.Product{
		ID:     "prod-1",
		Active: true,
		TagIDs: []string{tag.ID},
		Tags:   []model.Snapshot{{ID: tag.ID, Code: tag.Code, Name: tag.Name}},
	})

	name := "Defensas"
	var updated inventoryv1.UpdateEntityResponse
	resp = d.do(t, http.MethodPatch, "/api/v1/classifications/tags/"+tag.ID,
		inventoryv1.UpdateEntityRequest{Name: &name}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Defensas", updated.Entity.Name)
	require.Len(t, updated.Propagation, 1)
	assert.Equal(t, 1, updated.Propagation[0].Affected)

	p, err := d.products.ProductByID(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "Defensas", p.Tags[0].Name)

	var blocked inventoryv1.Error
	resp = d.do(t, http.MethodDelete, "/api/v1/classifications/tags/"+tag.ID, nil, &blocked)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var list inventoryv1.EntityList
	resp = d.do(t, http.MethodGet, "/api/v1/classifications/tags?active=true", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list.Items, 1)

	var repair inventoryv1.RepairResponse
	resp = d.do(t, http.MethodPost, "/api/v1/repair", inventoryv1.RepairRequest{Kinds: []string{"tag"}}, &repair)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, repair.Entities)
	assert.Equal(t, 1, repair.Unchanged)

	var bad inventoryv1.Error
	resp = d.do(t, http.MethodGet, "/api/v1/classifications/brands", nil, &bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatusOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: errors.Join(model.ErrInvalidArgument, errors.New("empty name")), want: http.StatusBadRequest},
		{err: fmt.Errorf("op: %w", model.ErrUnitNotFound), want: http.StatusNotFound},
		{err: model.ErrInvalidTransition, want: http.StatusConflict},
		{err: model.ErrDuplicateName, want: http.StatusConflict},
		{err: model.ErrReferentialIntegrity, want: http.StatusConflict},
		{err: model.ErrVersionConflict, want: http.StatusConflict},
		{
			err:  errors.Join(model.ErrPropagationPartialFailure, model.ErrVersionConflict),
			want: http.StatusMultiStatus,
		},
		{err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, statusOf(tt.err), "statusOf(%v)", tt.err)
	}
}
