// Package handler exposes the API as a single function for serverless hosts
// that invoke a handler per request instead of running a listener.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/FACorreiaa/cohana-api/cmd/api"
	"github.com/FACorreiaa/cohana-api/pkg/config"
)

var (
	initOnce sync.Once
	router   http.Handler
)

// Handler serves both API endpoints. The router and its clients are built on
// the first invocation and reused while the host keeps the process warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(func() {
		router = buildRouter(context.Background())
	})
	router.ServeHTTP(w, r)
}

func buildRouter(ctx context.Context) http.Handler {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		return api.FallbackHandler(logger, err)
	}
	logger = api.NewLogger(cfg.Observability, os.Stdout)

	deps, err := api.InitDependencies(ctx, cfg, logger)
	if err != nil {
		return api.FallbackHandler(logger, err)
	}
	return api.SetupRouter(deps, api.RouterOptions{})
}
