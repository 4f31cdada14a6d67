package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	inventoryv1 "github.com/you-humble/supplement-inventory/internal/api/inventory/v1"
	"github.com/you-humble/supplement-inventory/internal/converter"
	"github.com/you-humble/supplement-inventory/internal/model"
)

func (h *handler) Receive(w http.ResponseWriter, r *http.Request) {
	var req inventoryv1.ReceiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	units, err := h.units.Receive(r.Context(), converter.ReceiveRequestToLine(&req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, inventoryv1.UnitList{Items: converter.UnitsToAPI(units)})
}

func (h *handler) GetUnit(w http.ResponseWriter, r *http.Request) {
	u, err := h.units.Unit(r.Context(), chi.URLParam(r, "unitID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.UnitToAPI(u))
}

func (h *handler) Transition(w http.ResponseWriter, r *http.Request) {
	var req inventoryv1.TransitionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.units.Transition(r.Context(), converter.TransitionRequestToParams(chi.URLParam(r, "unitID"), &req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.UnitToAPI(u))
}

// TransitionBatch answers 207 when some units failed and the rest moved.
func (h *handler) TransitionBatch(w http.ResponseWriter, r *http.Request) {
	var req inventoryv1.BatchTransitionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.units.TransitionBatch(r.Context(), converter.BatchTransitionRequestToParams(&req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if len(res.Failures) > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, r, status, converter.BatchResultToResponse(res, statusOf))
}

func (h *handler) ProductUnits(w http.ResponseWriter, r *http.Request) {
	order := model.UnitOrder(r.URL.Query().Get("order"))

	units, err := h.units.Units(r.Context(), chi.URLParam(r, "productID"), order)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, inventoryv1.UnitList{Items: converter.UnitsToAPI(units)})
}

func (h *handler) ProductRollup(w http.ResponseWriter, r *http.Request) {
	rollup, err := h.units.Rollup(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, converter.RollupToAPI(rollup))
}
