package router

import (
	"net/http"
	"slices"

	"github.com/shandysiswandi/gobudget/internal/pkg/config"
)

// middlewareMaintenance switches off the route patterns listed in
// app.maintenance.endpoints (for example "/api/transactions/:id") with a 503.
func middlewareMaintenance(cfg config.Config) Middleware {
	var closed []string
	if cfg != nil {
		closed = cfg.GetArray("app.maintenance.endpoints")
	}

	return func(next http.Handler) http.Handler {
		if len(closed) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(closed, matchedRoutePath(r)) {
				w.Header().Set("Retry-After", "120")
				writeJSON(w, errorResponse{Message: "Service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
