package health

import (
	"context"
	"net/http"
	"time"

	"github.com/you-humble/supplement-inventory/platform/logger"
)

const checkTimeout = 2 * time.Second

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type handler struct {
	checks map[string]Check
}

func NewHealthHandler(checks map[string]Check) *handler {
	return &handler{checks: checks}
}

// ServeHTTP answers SERVING when every check passes and NOT_SERVING with 503
// otherwise.
func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	status, body := http.StatusOK, "SERVING"
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			logger.Error(ctx, "health check", logger.String("dependency", name), logger.ErrorF(err))
			status, body = http.StatusServiceUnavailable, "NOT_SERVING"
			break
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		logger.Error(r.Context(), "health check", logger.ErrorF(err))
	}
}
