package router

import (
	"net/http"

	"github.com/shandysiswandi/dinebite/internal/pkg/config"
)

// middlewareMaintenance answers 503 for routes listed under
// app.maintenance.endpoints. The list is read per request so a config reload
// takes effect without a restart.
func middlewareMaintenance(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg != nil {
				route := matchedRoutePath(r)
				for _, ep := range cfg.GetArray("app.maintenance.endpoints") {
					if ep == route {
						writeJSON(w, http.StatusServiceUnavailable, failure("Service is under maintenance", nil))
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
