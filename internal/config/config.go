// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Configuration holds all runtime configuration for the service.
type Configuration struct {
	Service       ServiceConfig
	Auth          AuthConfig
	Database      DatabaseConfig
	STT           STTConfig
	Translation   TranslationConfig
	Kafka         KafkaConfig
	Limits        LimitsConfig
	Observability ObservabilityConfig
}

// ServiceConfig identifies the service and its listen address.
type ServiceConfig struct {
	Principal string
	HTTPPort  string
}

// AuthConfig selects and configures the token verifier.
// Mode "http" verifies bearer tokens against the auth provider's user
// endpoint; mode "static" accepts a fixed token for local development.
type AuthConfig struct {
	Mode        string
	Endpoint    string
	APIKey      string
	StaticToken string
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	URL string
}

// STTConfig selects and configures the transcription provider.
type STTConfig struct {
	Provider      string // deepgram, google, mock
	DeepgramKey   string
	DeepgramModel string
	SampleRateHz  int
	AudioEncoding string
}

// TranslationConfig configures the ordered translation provider chain.
type TranslationConfig struct {
	Providers     []string // attempted in order, e.g. deepl,azure
	DeepLKey      string
	DeepLEndpoint string
	AzureKey      string
	AzureEndpoint string
	AzureRegion   string
}

// KafkaConfig configures the transcript event publisher.
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// LimitsConfig defines safety guardrails for the streaming loop.
type LimitsConfig struct {
	MaxChunkBytes   int64
	ProviderTimeout time.Duration
}

// ObservabilityConfig configures logging and the metrics server.
type ObservabilityConfig struct {
	LogLevel    string
	LogFormat   string
	MetricsAddr string
}

// Load reads configuration from the environment, applying defaults.
func Load() *Configuration {
	return &Configuration{
		Service: ServiceConfig{
			Principal: envOrDefault("SERVICE_PRINCIPAL", "svc-live-interpreter"),
			HTTPPort:  envOrDefault("HTTP_PORT", "8000"),
		},
		Auth: AuthConfig{
			Mode:        envOrDefault("AUTH_MODE", "http"),
			Endpoint:    envOrDefault("AUTH_ENDPOINT", ""),
			APIKey:      envOrDefault("AUTH_API_KEY", ""),
			StaticToken: envOrDefault("AUTH_STATIC_TOKEN", ""),
		},
		Database: DatabaseConfig{
			URL: envOrDefault("DATABASE_URL", "postgres://localhost:5432/interpreter"),
		},
		STT: STTConfig{
			Provider:      envOrDefault("STT_PROVIDER", "mock"),
			DeepgramKey:   envOrDefault("DEEPGRAM_API_KEY", ""),
			DeepgramModel: envOrDefault("DEEPGRAM_MODEL", "nova-2"),
			SampleRateHz:  envIntOrDefault("STT_SAMPLE_RATE_HZ", 16000),
			AudioEncoding: envOrDefault("STT_AUDIO_ENCODING", "LINEAR16"),
		},
		Translation: TranslationConfig{
			Providers:     envListOrDefault("TRANSLATION_PROVIDERS", []string{"deepl", "azure"}),
			DeepLKey:      envOrDefault("DEEPL_API_KEY", ""),
			DeepLEndpoint: envOrDefault("DEEPL_API_URL", "https://api-free.deepl.com/v2"),
			AzureKey:      envOrDefault("AZURE_TRANSLATOR_KEY", ""),
			AzureEndpoint: envOrDefault("AZURE_TRANSLATOR_ENDPOINT", ""),
			AzureRegion:   envOrDefault("AZURE_TRANSLATOR_REGION", ""),
		},
		Kafka: KafkaConfig{
			Enabled: envBoolOrDefault("KAFKA_ENABLED", false),
			Brokers: envListOrDefault("KAFKA_BROKERS", nil),
			Topic:   envOrDefault("KAFKA_TOPIC_TRANSCRIPTS", "interpretation.transcripts"),
		},
		Limits: LimitsConfig{
			MaxChunkBytes:   envInt64OrDefault("MAX_CHUNK_BYTES", 1*1024*1024),
			ProviderTimeout: envDurationOrDefault("PROVIDER_TIMEOUT", 15*time.Second),
		},
		Observability: ObservabilityConfig{
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
			LogFormat:   envOrDefault("LOG_FORMAT", "json"),
			MetricsAddr: envOrDefault("METRICS_ADDR", ":9090"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envInt64OrDefault(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func envBoolOrDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDurationOrDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envListOrDefault(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
