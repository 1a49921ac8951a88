package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort        = 3000
	DefaultStaticDir   = "public"
	DefaultMaxUploadMB = 25
	DefaultMetricsAddr = ":9090"
)

type Config struct {
	Server        ServerConfig
	LLM           LLMConfig
	TTS           TTSConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port           int
	StaticDir      string
	MaxUploadBytes int64
	// RequestTimeout bounds the upstream work of one request. Zero means none.
	RequestTimeout time.Duration
	// HTTPTimeout is the outbound http.Client timeout. Zero means none.
	HTTPTimeout time.Duration
}

// Addr is the listen address for socket mode.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort("", strconv.Itoa(s.Port))
}

type LLMConfig struct {
	APIKey string
	Model  string
}

type TTSConfig struct {
	APIKey          string
	VoiceID         string
	ModelID         string
	BaseURL         string
	Stability       float64
	SimilarityBoost float64
}

type ObservabilityConfig struct {
	LogLevel       string
	LogFormat      string
	MetricsEnabled bool
	MetricsAddr    string
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory.
func Load() (*Config, error) {
	// A missing .env is the normal case in deployed environments.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvInt("PORT", DefaultPort),
			StaticDir:      getEnv("STATIC_DIR", DefaultStaticDir),
			MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_MB", DefaultMaxUploadMB)) << 20,
			RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 0)) * time.Second,
			HTTPTimeout:    time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 0)) * time.Second,
		},
		LLM: LLMConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		},
		TTS: TTSConfig{
			APIKey:          getEnv("ELEVENLABS_API_KEY", ""),
			VoiceID:         getEnv("ELEVENLABS_VOICE_ID", ""),
			ModelID:         getEnv("ELEVENLABS_MODEL_ID", "eleven_turbo_v2_5"),
			BaseURL:         strings.TrimRight(getEnv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"), "/"),
			Stability:       getEnvFloat("ELEVENLABS_STABILITY", 0.5),
			SimilarityBoost: getEnvFloat("ELEVENLABS_SIMILARITY_BOOST", 0.75),
		},
		Observability: ObservabilityConfig{
			LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
			LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "json")),
			MetricsEnabled: getEnvBool("METRICS_ENABLED", false),
			MetricsAddr:    getEnv("METRICS_ADDR", DefaultMetricsAddr),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot start with. Missing provider
// keys are not errors; see Warnings.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 1 and 65535", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid MAX_UPLOAD_MB: must be positive")
	}
	if c.Server.RequestTimeout < 0 || c.Server.HTTPTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	switch c.Observability.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: want json or text", c.Observability.LogFormat)
	}
	return nil
}

// Warnings lists settings that leave an endpoint unable to succeed.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.LLM.APIKey == "" {
		warnings = append(warnings, "GEMINI_API_KEY is not set; every AI request will fail")
	}
	if c.TTS.APIKey == "" {
		warnings = append(warnings, "ELEVENLABS_API_KEY is not set; voice chat will fail")
	}
	if c.TTS.VoiceID == "" {
		warnings = append(warnings, "ELEVENLABS_VOICE_ID is not set; voice chat will fail")
	}
	return warnings
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
