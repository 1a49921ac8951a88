package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/cohana-api/internal/domain/route"
	"github.com/FACorreiaa/cohana-api/internal/domain/voice"
	"github.com/FACorreiaa/cohana-api/internal/httpclient"
	"github.com/FACorreiaa/cohana-api/internal/llm"
	"github.com/FACorreiaa/cohana-api/internal/tts"
	"github.com/FACorreiaa/cohana-api/pkg/config"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	HTTPClient *http.Client

	// Clients. LLMClient is nil when Gemini is not configured.
	LLMClient llm.ChatClient
	TTS       tts.Synthesizer

	// Services
	RouteService route.Service
	VoiceService voice.Service

	// Handlers
	RouteHandler *route.Handler
	VoiceHandler *voice.Handler
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	for _, warning := range cfg.Warnings() {
		logger.Warn(warning)
	}

	if err := deps.initClients(ctx); err != nil {
		return nil, fmt.Errorf("failed to init clients: %w", err)
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	if err := deps.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initClients builds the shared outbound HTTP client and the provider
// clients on top of it. A missing or unusable Gemini key leaves LLMClient nil
// so that requests fail individually instead of the process refusing to start.
func (d *Dependencies) initClients(ctx context.Context) error {
	d.HTTPClient = httpclient.New(httpclient.Options{Timeout: d.Config.Server.HTTPTimeout})

	if d.Config.LLM.APIKey != "" {
		client, err := llm.NewGeminiChatClient(ctx, d.Config.LLM.APIKey, d.Config.LLM.Model, d.HTTPClient)
		if err != nil {
			d.Logger.Error("failed to create Gemini client", slog.Any("error", err))
		} else {
			d.LLMClient = client
			d.Logger.Info("Gemini client initialized", slog.String("model", client.Model()))
		}
	}

	d.TTS = tts.NewElevenLabsClient(tts.Options{
		APIKey:          d.Config.TTS.APIKey,
		VoiceID:         d.Config.TTS.VoiceID,
		ModelID:         d.Config.TTS.ModelID,
		BaseURL:         d.Config.TTS.BaseURL,
		Stability:       &d.Config.TTS.Stability,
		SimilarityBoost: &d.Config.TTS.SimilarityBoost,
		HTTPClient:      d.HTTPClient,
		Logger:          d.Logger,
	})

	d.Logger.Info("clients initialized")
	return nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() error {
	if d.TTS == nil {
		return fmt.Errorf("speech synthesizer is required")
	}

	timeout := d.Config.Server.RequestTimeout
	d.RouteService = route.NewServiceImpl(d.LLMClient, timeout, d.Logger)
	d.VoiceService = voice.NewServiceImpl(d.LLMClient, d.TTS, timeout, d.Logger)

	d.Logger.Info("services initialized")
	return nil
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() error {
	d.RouteHandler = route.NewHandler(d.RouteService, d.Logger)
	d.VoiceHandler = voice.NewHandler(d.VoiceService, d.Config.Server.MaxUploadBytes, d.Logger)
	d.Logger.Info("handlers initialized")
	return nil
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.HTTPClient != nil {
		d.HTTPClient.CloseIdleConnections()
	}
	d.Logger.Info("cleanup completed")
}
