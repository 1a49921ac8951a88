package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "STATIC_DIR", "MAX_UPLOAD_MB", "REQUEST_TIMEOUT_SECONDS", "HTTP_TIMEOUT_SECONDS",
	"GEMINI_API_KEY", "GEMINI_MODEL",
	"ELEVENLABS_API_KEY", "ELEVENLABS_VOICE_ID", "ELEVENLABS_MODEL_ID", "ELEVENLABS_BASE_URL",
	"ELEVENLABS_STABILITY", "ELEVENLABS_SIMILARITY_BOOST",
	"LOG_LEVEL", "LOG_FORMAT", "METRICS_ENABLED", "METRICS_ADDR",
}

// clearEnv blanks every variable Load reads. Empty values fall back to
// defaults, and godotenv never overrides a variable that is already set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":3000", cfg.Server.Addr())
	assert.Equal(t, "public", cfg.Server.StaticDir)
	assert.Equal(t, int64(25<<20), cfg.Server.MaxUploadBytes)
	assert.Zero(t, cfg.Server.RequestTimeout)
	assert.Zero(t, cfg.Server.HTTPTimeout)

	assert.Equal(t, "gemini-2.5-flash-lite", cfg.LLM.Model)
	assert.Equal(t, "eleven_turbo_v2_5", cfg.TTS.ModelID)
	assert.Equal(t, "https://api.elevenlabs.io", cfg.TTS.BaseURL)
	assert.InDelta(t, 0.5, cfg.TTS.Stability, 1e-9)
	assert.InDelta(t, 0.75, cfg.TTS.SimilarityBoost, 1e-9)

	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.Equal(t, "json", cfg.Observability.LogFormat)
	assert.False(t, cfg.Observability.MetricsEnabled)
	assert.Equal(t, ":9090", cfg.Observability.MetricsAddr)

	assert.Len(t, cfg.Warnings(), 3)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("ELEVENLABS_API_KEY", "el-key")
	t.Setenv("ELEVENLABS_VOICE_ID", "voice")
	t.Setenv("ELEVENLABS_BASE_URL", "http://localhost:9999/")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("METRICS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, int64(2<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://localhost:9999", cfg.TTS.BaseURL)
	assert.Equal(t, "text", cfg.Observability.LogFormat)
	assert.True(t, cfg.Observability.MetricsEnabled)
	assert.Empty(t, cfg.Warnings())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")
	t.Setenv("METRICS_ENABLED", "maybe")
	t.Setenv("ELEVENLABS_STABILITY", "high")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.False(t, cfg.Observability.MetricsEnabled)
	assert.InDelta(t, 0.5, cfg.TTS.Stability, 1e-9)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "PORT", "70000"},
		{"zero upload cap", "MAX_UPLOAD_MB", "0"},
		{"negative timeout", "HTTP_TIMEOUT_SECONDS", "-1"},
		{"unknown log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_ZeroVoiceSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("ELEVENLABS_STABILITY", "0")
	t.Setenv("ELEVENLABS_SIMILARITY_BOOST", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Zero(t, cfg.TTS.Stability)
	assert.Zero(t, cfg.TTS.SimilarityBoost)
}
