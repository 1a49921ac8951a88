package voice

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/cohana-api/internal/llm"
	"github.com/FACorreiaa/cohana-api/internal/tts"
	"github.com/FACorreiaa/cohana-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service runs one voice chat turn.
type Service interface {
	Chat(ctx context.Context, req types.VoiceChatRequest) (*types.VoiceChatResponse, error)
}

type ServiceImpl struct {
	logger      *slog.Logger
	aiClient    llm.ChatClient
	synthesizer tts.Synthesizer
	timeout     time.Duration
}

// NewServiceImpl builds the voice service. aiClient may be nil when no API
// key is configured. A positive timeout bounds both upstream calls together.
func NewServiceImpl(aiClient llm.ChatClient, synthesizer tts.Synthesizer, timeout time.Duration, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger.With(slog.String("service", "voice")),
		aiClient:    aiClient,
		synthesizer: synthesizer,
		timeout:     timeout,
	}
}

// Chat sends the attachments to the model, then speaks its reply. The reply
// is only returned together with its audio.
func (s *ServiceImpl) Chat(ctx context.Context, req types.VoiceChatRequest) (*types.VoiceChatResponse, error) {
	ctx, span := otel.Tracer("VoiceService").Start(ctx, "Chat", trace.WithAttributes(
		attribute.Bool("voice.has_audio", req.Audio != nil),
		attribute.Bool("voice.has_image", req.Image != nil),
	))
	defer span.End()

	s.logger.InfoContext(ctx, "voice chat requested",
		slog.Bool("has_audio", req.Audio != nil),
		slog.Bool("has_image", req.Image != nil))

	if s.aiClient == nil {
		err := types.ErrAIClientUnavailable
		s.logger.ErrorContext(ctx, "AI client is not available", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "AI client unavailable")
		return nil, err
	}
	if s.synthesizer == nil {
		err := types.ErrTTSUnavailable
		span.RecordError(err)
		span.SetStatus(codes.Error, "Synthesizer unavailable")
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	parts := BuildParts(req)
	span.SetAttributes(attribute.Int("voice.parts.count", len(parts)))

	resp, err := s.aiClient.GenerateMultimodalResponse(ctx, parts, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to generate reply", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "LLM call failed")
		return nil, fmt.Errorf("failed to generate reply: %w", err)
	}

	text, err := llm.ResponseText(resp)
	if err != nil {
		s.logger.ErrorContext(ctx, "empty voice reply", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Empty LLM response")
		return nil, err
	}

	audio, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to synthesize reply", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Speech synthesis failed")
		return nil, fmt.Errorf("failed to synthesize reply: %w", err)
	}

	span.SetAttributes(
		attribute.Int("voice.reply.length", len(text)),
		attribute.Int("voice.audio.bytes", len(audio)),
	)
	span.SetStatus(codes.Ok, "Voice reply generated")
	return &types.VoiceChatResponse{
		Text:  text,
		Audio: base64.StdEncoding.EncodeToString(audio),
	}, nil
}
