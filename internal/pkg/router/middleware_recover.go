package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/shandysiswandi/dinebite/internal/pkg/stacktrace"
)

func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
				panic(rvr)
			}

			slog.ErrorContext(r.Context(), "panic while serving request",
				"panic", rvr,
				"stack", stacktrace.InternalPaths(debug.Stack()),
			)
			writeJSON(w, http.StatusInternalServerError, failure("Internal server error", nil))
		}()

		next.ServeHTTP(w, r)
	})
}
