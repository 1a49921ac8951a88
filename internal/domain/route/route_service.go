package route

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/cohana-api/internal/llm"
	"github.com/FACorreiaa/cohana-api/internal/types"
	"github.com/FACorreiaa/cohana-api/internal/utils"
)

// rawPreviewLength is how much of the model reply is logged per request.
const rawPreviewLength = 50

var _ Service = (*ServiceImpl)(nil)

// Service generates walking routes around a coordinate.
type Service interface {
	CreateRoute(ctx context.Context, req types.RouteRequest) (*types.RouteResponse, error)
}

type ServiceImpl struct {
	logger   *slog.Logger
	aiClient llm.ChatClient
	timeout  time.Duration
}

// NewServiceImpl builds the route service. aiClient may be nil when no API
// key is configured; every call then fails with ErrAIClientUnavailable.
// A positive timeout bounds the model call.
func NewServiceImpl(aiClient llm.ChatClient, timeout time.Duration, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger.With(slog.String("service", "route")),
		aiClient: aiClient,
		timeout:  timeout,
	}
}

// CreateRoute asks the model for nearby places matching the requested vibe
// and returns them after a synthetic start point at the caller's position.
func (s *ServiceImpl) CreateRoute(ctx context.Context, req types.RouteRequest) (*types.RouteResponse, error) {
	ctx, span := otel.Tracer("RouteService").Start(ctx, "CreateRoute", trace.WithAttributes(
		attribute.String("route.mode", req.Mode),
		attribute.String("route.type", req.Type),
	))
	defer span.End()

	if err := req.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid route request")
		return nil, err
	}
	lat, lng := *req.Lat, *req.Lng
	span.SetAttributes(
		attribute.Float64("route.lat", float64(lat)),
		attribute.Float64("route.lng", float64(lng)),
	)

	s.logger.InfoContext(ctx, "route requested",
		slog.String("mode", req.Mode),
		slog.String("type", req.Type),
		slog.String("lat", lat.String()),
		slog.String("lng", lng.String()))

	if s.aiClient == nil {
		err := types.ErrAIClientUnavailable
		s.logger.ErrorContext(ctx, "AI client is not available", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "AI client unavailable")
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.aiClient.GenerateResponse(ctx, getRoutePrompt(lat, lng, req.Type), nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to generate route", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "LLM call failed")
		return nil, fmt.Errorf("failed to generate route: %w", err)
	}

	raw, err := llm.ResponseText(resp)
	if err != nil {
		s.logger.ErrorContext(ctx, "empty route response", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty LLM response")
		return nil, err
	}
	s.logger.InfoContext(ctx, "AI raw response", slog.String("preview", preview(raw, rawPreviewLength)))

	places, err := utils.ExtractJSONArray[json.RawMessage](raw)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to parse route places", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid LLM output")
		return nil, err
	}

	start, err := json.Marshal(types.StartPoint(lat, lng))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode start point")
		return nil, fmt.Errorf("failed to encode start point: %w", err)
	}

	route := make([]json.RawMessage, 0, len(places)+1)
	route = append(route, start)
	route = append(route, places...)

	span.SetAttributes(attribute.Int("route.places.count", len(route)))
	span.SetStatus(codes.Ok, "Route generated")
	return &types.RouteResponse{Places: route}, nil
}

// preview returns at most n runes of s followed by an ellipsis.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
