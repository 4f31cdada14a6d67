package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	inventoryv1 "github.com/you-humble/supplement-inventory/internal/api/inventory/v1"
	"github.com/you-humble/supplement-inventory/internal/converter"
	"github.com/you-humble/supplement-inventory/internal/model"
)

var kindAliases = map[string]model.EntityKind{
	"category":      model.KindCategory,
	"categories":    model.KindCategory,
	"tag":           model.KindTag,
	"tags":          model.KindTag,
	"product_type":  model.KindProductType,
	"product_types": model.KindProductType,
	"product-types": model.KindProductType,
}

func kindParam(r *http.Request) (model.EntityKind, error) {
	raw := chi.URLParam(r, "kind")
	kind, ok := kindAliases[raw]
	if !ok {
		return "", errors.Join(model.ErrInvalidArgument, fmt.Errorf("unknown classification kind %q", raw))
	}
	return kind, nil
}

func (h *handler) ListEntities(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	filter := model.EntityFilter{ParentID: q.Get("parent_id")}
	if v := q.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, errors.Join(model.ErrInvalidArgument, fmt.Errorf("active: %w", err)))
			return
		}
		filter.ActiveOnly = active
	}
	if v := q.Get("level"); v != "" {
		level, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, r, errors.Join(model.ErrInvalidArgument, fmt.Errorf("level: %w", err)))
			return
		}
		filter.Level = level
	}

	entities, err := h.entities.List(r.Context(), kind, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, inventoryv1.EntityList{Items: converter.EntitiesToAPI(entities)})
}

func (h *handler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req inventoryv1.CreateEntityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.entities.Create(r.Context(), converter.CreateEntityRequestToParams(kind, &req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, converter.EntityToAPI(e))
}

// QuickCreate answers 201 for a new entity and 200 when an equivalent name
// already existed.
func (h *handler) QuickCreate(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req inventoryv1.QuickCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e, created, err := h.entities.QuickCreate(r.Context(), kind, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, r, status, inventoryv1.QuickCreateResponse{Entity: converter.EntityToAPI(e), Created: created})
}

func (h *handler) Lookup(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.entities.FindByNormalizedName(r.Context(), kind, r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.EntityToAPI(e))
}

func (h *handler) GetEntity(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.entities.Get(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.EntityToAPI(e))
}

func (h *handler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req inventoryv1.UpdateEntityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.entities.Update(r.Context(), kind, chi.URLParam(r, "id"), converter.UpdateEntityRequestToParams(&req))
	writeUpdateResult(w, r, res, err)
}

func (h *handler) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.entities.Delete(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.entities.Deactivate(r.Context(), kind, chi.URLParam(r, "id"))
	writeUpdateResult(w, r, res, err)
}

func (h *handler) Activate(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.entities.Activate(r.Context(), kind, chi.URLParam(r, "id"))
	writeUpdateResult(w, r, res, err)
}

func (h *handler) RefreshMetrics(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.entities.RefreshMetrics(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.EntityToAPI(e))
}

func (h *handler) Propagate(w http.ResponseWriter, r *http.Request) {
	kind, err := kindParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.propagation.Propagate(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil && !partial(err, res != nil) {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, statusOfPartial(err), converter.PropagationToAPI(res))
}

func (h *handler) Repair(w http.ResponseWriter, r *http.Request) {
	var req inventoryv1.RepairRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}

	res, err := h.propagation.Repair(r.Context(), converter.RepairRequestToKinds(&req)...)
	if err != nil && !partial(err, res != nil) {
		writeError(w, r, err)
		return
	}

	body := converter.RepairResultToAPI(res)
	if err != nil {
		body.Message = err.Error()
	}
	writeJSON(w, r, statusOfPartial(err), body)
}

// writeUpdateResult reports a saved entity whose propagation partly failed
// as 207 with the per-product errors in the body.
func writeUpdateResult(w http.ResponseWriter, r *http.Request, res *model.UpdateEntityResult, err error) {
	if err != nil && !partial(err, res != nil) {
		writeError(w, r, err)
		return
	}

	body := converter.UpdateResultToAPI(res)
	if err != nil {
		body.Message = err.Error()
	}
	writeJSON(w, r, statusOfPartial(err), body)
}
