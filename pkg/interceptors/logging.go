package interceptors

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
)

// NewLoggingMiddleware logs the start and outcome of every request with
// payload size tracking.
func NewLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			logger.InfoContext(ctx, "HTTP request started", appendLoggerFields(ctx,
				"method", r.Method,
				"path", r.URL.Path,
				"peer", r.RemoteAddr,
				"request_size_bytes", r.ContentLength,
			)...)

			m := httpsnoop.CaptureMetrics(next, w, r)

			fields := appendLoggerFields(ctx,
				"method", r.Method,
				"path", r.URL.Path,
				"status", m.Code,
				"duration", m.Duration.String(),
				"duration_ms", m.Duration.Milliseconds(),
				"response_size_bytes", m.Written,
			)
			if m.Code >= http.StatusInternalServerError {
				logger.ErrorContext(ctx, "HTTP request failed", fields...)
				return
			}
			logger.InfoContext(ctx, "HTTP request completed", fields...)
		})
	}
}

func appendLoggerFields(ctx context.Context, base ...any) []any {
	if requestID, ok := RequestIDFromContext(ctx); ok && requestID != "" {
		base = append(base, "request_id", requestID)
	}
	return base
}
