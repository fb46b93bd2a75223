package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/shandysiswandi/gobudget/internal/pkg/stacktrace"
)

// middlewareRecoverer turns a handler panic into a logged 500.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:err113,errorlint // sentinel value comparison
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			var stack any = stacktrace.InternalPaths(debug.Stack())
			if frames, _ := stack.([]string); len(frames) == 0 {
				stack = string(debug.Stack())
			}
			slog.ErrorContext(r.Context(), "panic on the server", "because", rvr, "stack", stack)

			writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
