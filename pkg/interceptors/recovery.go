package interceptors

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/FACorreiaa/cohana-api/pkg/api"
)

// NewRecoveryMiddleware turns a panic in a handler into a logged 500 whose
// error body is chosen by message.
func NewRecoveryMiddleware(logger *slog.Logger, message func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				ctx := r.Context()
				logger.ErrorContext(ctx, "panic recovered", appendLoggerFields(ctx,
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)...)
				api.ErrorResponse(w, r, http.StatusInternalServerError, message(r))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
