package api

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/FACorreiaa/cohana-api/internal/types"
	response "github.com/FACorreiaa/cohana-api/pkg/api"
	"github.com/FACorreiaa/cohana-api/pkg/interceptors"
	"github.com/FACorreiaa/cohana-api/pkg/observability"
)

const (
	createRoutePath = "/api/create-route"
	voiceChatPath   = "/api/voice-chat"
)

// RouterOptions selects the parts of the surface that differ between the
// socket server and the host-invoked handler.
type RouterOptions struct {
	// ServeStatic mounts Config.Server.StaticDir at "/".
	ServeStatic bool
}

// SetupRouter configures all routes and returns the HTTP service
func SetupRouter(deps *Dependencies, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	registerAPIRoutes(mux, deps)

	if opts.ServeStatic {
		registerStaticRoutes(mux, deps)
	}

	return wrapMiddleware(mux, deps.Logger)
}

// wrapMiddleware applies the chain, outermost first: tracing, CORS, request
// ID, access log, metrics, recovery. Metrics and recovery do not replace the
// request, so the pattern the mux matched is still visible to metrics.
func wrapMiddleware(mux http.Handler, logger *slog.Logger) http.Handler {
	handler := interceptors.NewRecoveryMiddleware(logger, failureMessage)(mux)
	handler = observability.NewMetricsMiddleware()(handler)
	handler = interceptors.NewLoggingMiddleware(logger)(handler)
	handler = interceptors.NewRequestIDMiddleware("X-Request-ID")(handler)

	// The browser client is served from any origin.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	handler = corsHandler.Handler(handler)

	return otelhttp.NewHandler(handler, "cohana-api")
}

// registerAPIRoutes registers the two API endpoints. Other methods on the
// same paths are answered with 405 even when the static file server is
// mounted at "/".
func registerAPIRoutes(mux *http.ServeMux, deps *Dependencies) {
	mux.HandleFunc(http.MethodPost+" "+createRoutePath, deps.RouteHandler.CreateRoute)
	mux.HandleFunc(http.MethodPost+" "+voiceChatPath, deps.VoiceHandler.VoiceChat)

	for _, path := range []string{createRoutePath, voiceChatPath} {
		mux.HandleFunc(path, methodNotAllowed(http.MethodPost))
		deps.Logger.Info("registered API route", slog.String("method", http.MethodPost), slog.String("path", path))
	}
}

// registerStaticRoutes serves the browser client from the static directory.
func registerStaticRoutes(mux *http.ServeMux, deps *Dependencies) {
	dir := deps.Config.Server.StaticDir
	mux.Handle("/", http.FileServer(http.Dir(dir)))
	deps.Logger.Info("registered static file server", slog.String("path", "/"), slog.String("dir", dir))
}

func methodNotAllowed(allowed string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allowed)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

// FallbackHandler answers every request with the endpoint's fixed failure
// message. It is served when dependencies could not be initialized.
func FallbackHandler(logger *slog.Logger, cause error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.ErrorContext(r.Context(), "service unavailable", slog.String("path", r.URL.Path), slog.Any("error", cause))
		response.ErrorResponse(w, r, http.StatusInternalServerError, failureMessage(r))
	})
}

// failureMessage is the fixed error text of the endpoint r addresses.
func failureMessage(r *http.Request) string {
	switch r.URL.Path {
	case createRoutePath:
		return types.MsgRouteFailed
	case voiceChatPath:
		return types.MsgVoiceFailed
	default:
		return http.StatusText(http.StatusInternalServerError)
	}
}
