package route

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/cohana-api/internal/types"
	"github.com/FACorreiaa/cohana-api/pkg/api"
)

// maxRouteBodyBytes caps the JSON body of a route request.
const maxRouteBodyBytes = 1 << 20

// Handler serves POST /api/create-route.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

// NewHandler wires a route handler.
func NewHandler(svc Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// CreateRoute decodes the request, generates the route and writes
// {"places": [...]}. Every failure is reported with the same message.
func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.RouteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRouteBodyBytes)).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "route error: invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, types.MsgRouteFailed)
		return
	}

	resp, err := h.svc.CreateRoute(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "route error", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, types.MsgRouteFailed)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
