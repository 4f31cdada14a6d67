package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	inventoryv1 "github.com/you-humble/supplement-inventory/internal/api/inventory/v1"
	"github.com/you-humble/supplement-inventory/internal/model"
	"github.com/you-humble/supplement-inventory/platform/logger"
)

const maxBodyBytes = 1 << 20

func decodeJSON(r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errors.Join(model.ErrInvalidArgument,
				fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit))
		}
		return errors.Join(model.ErrInvalidArgument, fmt.Errorf("invalid JSON: %w", err))
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(r.Context(), "write response", logger.ErrorF(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed", logger.ErrorF(err))
	}
	writeJSON(w, r, status, inventoryv1.Error{Code: status, Message: err.Error()})
}

// statusOf maps domain errors to HTTP status codes. Partial propagation is
// checked first because its joined errors also carry version conflicts.
func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrPropagationPartialFailure):
		return http.StatusMultiStatus // 207
	case errors.Is(err, model.ErrInvalidArgument):
		return http.StatusBadRequest // 400
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrDuplicateName),
		errors.Is(err, model.ErrReferentialIntegrity),
		errors.Is(err, model.ErrVersionConflict):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}

// partial reports whether err only signals that some products failed while
// a result is still available to render.
func partial(err error, hasResult bool) bool {
	return hasResult && errors.Is(err, model.ErrPropagationPartialFailure)
}

func statusOfPartial(err error) int {
	if err != nil {
		return http.StatusMultiStatus
	}
	return http.StatusOK
}
