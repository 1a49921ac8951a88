package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/cohana-api/internal/types"
	"github.com/FACorreiaa/cohana-api/pkg/observability"
)

const (
	DefaultBaseURL         = "https://api.elevenlabs.io"
	DefaultModelID         = "eleven_turbo_v2_5"
	DefaultStability       = 0.5
	DefaultSimilarityBoost = 0.75

	providerName = "elevenlabs"

	// Upstream error bodies are logged, never returned, so keep them short.
	maxErrorBody = 2048
)

// Synthesizer converts text to speech audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type Options struct {
	APIKey          string
	VoiceID         string
	ModelID         string
	BaseURL         string
	// Nil voice settings fall back to the defaults. Zero is a valid setting.
	Stability       *float64
	SimilarityBoost *float64
	HTTPClient      *http.Client
	Logger          *slog.Logger
}

// ElevenLabsClient calls the ElevenLabs text-to-speech REST API.
type ElevenLabsClient struct {
	apiKey          string
	voiceID         string
	modelID         string
	baseURL         string
	stability       float64
	similarityBoost float64
	httpClient      *http.Client
	logger          *slog.Logger
}

var _ Synthesizer = (*ElevenLabsClient)(nil)

func NewElevenLabsClient(opts Options) *ElevenLabsClient {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	modelID := strings.TrimSpace(opts.ModelID)
	if modelID == "" {
		modelID = DefaultModelID
	}
	stability := DefaultStability
	if opts.Stability != nil {
		stability = *opts.Stability
	}
	similarity := DefaultSimilarityBoost
	if opts.SimilarityBoost != nil {
		similarity = *opts.SimilarityBoost
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &ElevenLabsClient{
		apiKey:          strings.TrimSpace(opts.APIKey),
		voiceID:         strings.TrimSpace(opts.VoiceID),
		modelID:         modelID,
		baseURL:         baseURL,
		stability:       stability,
		similarityBoost: similarity,
		httpClient:      httpClient,
		logger:          logger,
	}
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize returns the raw audio bytes for text.
func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, span := otel.Tracer("ElevenLabsClient").Start(ctx, "Synthesize", trace.WithAttributes(
		attribute.String("tts.model_id", c.modelID),
		attribute.String("tts.voice_id", c.voiceID),
		attribute.Int("tts.text_length", len(text)),
	))
	defer span.End()

	if c.apiKey == "" || c.voiceID == "" {
		span.RecordError(types.ErrTTSUnavailable)
		span.SetStatus(codes.Error, "TTS not configured")
		return nil, fmt.Errorf("%w: api key and voice id are required", types.ErrTTSUnavailable)
	}

	start := time.Now()
	audio, err := c.synthesize(ctx, text)
	observability.ObserveUpstream(providerName, "text_to_speech", start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Speech synthesis failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("tts.audio_bytes", len(audio)))
	span.SetStatus(codes.Ok, "Speech synthesized")
	return audio, nil
}

func (c *ElevenLabsClient) synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(synthesisRequest{
		Text:    text,
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       c.stability,
			SimilarityBoost: c.similarityBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal tts request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, url.PathEscape(c.voiceID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create tts request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.ErrorContext(ctx, "ElevenLabs returned an error",
			slog.Int("status", resp.StatusCode),
			slog.String("body", strings.TrimSpace(string(errBody))))
		return nil, fmt.Errorf("%w: elevenlabs %s", types.ErrUpstreamStatus, resp.Status)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts response: %w", err)
	}
	return audio, nil
}
