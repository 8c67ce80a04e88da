package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/teamfinder-app/teamfinder/internal/api/response"
)

// Recovery converts a handler panic into a 500 envelope instead of a
// dropped connection. The panic value and stack go to the log together
// with enough of the request to find the offending endpoint.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(r.Context())
				slog.Error("panic recovered",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"requestId", requestID,
					"stack", string(debug.Stack()),
				)
				response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", requestID)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
