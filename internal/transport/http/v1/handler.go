package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/you-humble/supplement-inventory/internal/model"
)

type UnitService interface {
	Unit(ctx context.Context, unitID string) (*model.Unit, error)
	Units(ctx context.Context, productID string, order model.UnitOrder) ([]*model.Unit, error)
	Transition(ctx context.Context, params model.TransitionParams) (*model.Unit, error)
	TransitionBatch(ctx context.Context, params model.BatchTransitionParams) (*model.BatchTransitionResult, error)
	Receive(ctx context.Context, line model.PurchaseOrderLine) ([]*model.Unit, error)
	Rollup(ctx context.Context, productID string) (*model.ProductRollup, error)
}

type ClassificationService interface {
	Get(ctx context.Context, kind model.EntityKind, id string) (*model.Entity, error)
	List(ctx context.Context, kind model.EntityKind, filter model.EntityFilter) ([]*model.Entity, error)
	FindByNormalizedName(ctx context.Context, kind model.EntityKind, name string) (*model.Entity, error)
	Create(ctx context.Context, params model.CreateEntityParams) (*model.Entity, error)
	QuickCreate(ctx context.Context, kind model.EntityKind, name string) (*model.Entity, bool, error)
	Update(ctx context.Context, kind model.EntityKind, id string, params model.UpdateEntityParams) (*model.UpdateEntityResult, error)
	Deactivate(ctx context.Context, kind model.EntityKind, id string) (*model.UpdateEntityResult, error)
	Activate(ctx context.Context, kind model.EntityKind, id string) (*model.UpdateEntityResult, error)
	Delete(ctx context.Context, kind model.EntityKind, id string) error
	RefreshMetrics(ctx context.Context, kind model.EntityKind, id string) (*model.Entity, error)
}

type PropagationService interface {
	Propagate(ctx context.Context, kind model.EntityKind, entityID string) (*model.PropagationResult, error)
	Repair(ctx context.Context, kinds ...model.EntityKind) (*model.RepairResult, error)
}

type handler struct {
	units       UnitService
	entities    ClassificationService
	propagation PropagationService
}

func NewInventoryHandler(units UnitService, entities ClassificationService, propagation PropagationService) *handler {
	return &handler{
		units:       units,
		entities:    entities,
		propagation: propagation,
	}
}

// Routes mounts the v1 API under r.
func (h *handler) Routes(r chi.Router) {
	r.Post("/receipts", h.Receive)

	r.Route("/units", func(r chi.Router) {
		r.Post("/transitions", h.TransitionBatch)
		r.Get("/{unitID}", h.GetUnit)
		r.Post("/{unitID}/transitions", h.Transition)
	})

	r.Route("/products/{productID}", func(r chi.Router) {
		r.Get("/units", h.ProductUnits)
		r.Get("/rollup", h.ProductRollup)
	})

	r.Route("/classifications/{kind}", func(r chi.Router) {
		r.Get("/", h.ListEntities)
		r.Post("/", h.CreateEntity)
		r.Post("/quick", h.QuickCreate)
		r.Get("/lookup", h.Lookup)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetEntity)
			r.Patch("/", h.UpdateEntity)
			r.Delete("/", h.DeleteEntity)
			r.Post("/deactivate", h.Deactivate)
			r.Post("/activate", h.Activate)
			r.Post("/metrics", h.RefreshMetrics)
			r.Post("/propagate", h.Propagate)
		})
	})

	r.Post("/repair", h.Repair)
}

// Router builds a standalone v1 router.
func (h *handler) Router() http.Handler {
	r := chi.NewRouter()
	h.Routes(r)
	return r
}
