package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear relevant env vars
	envVars := []string{
		"SERVICE_PRINCIPAL", "HTTP_PORT", "LOG_LEVEL", "LOG_FORMAT",
		"AUTH_MODE", "STT_PROVIDER", "STT_SAMPLE_RATE_HZ", "STT_AUDIO_ENCODING",
		"TRANSLATION_PROVIDERS", "KAFKA_ENABLED", "KAFKA_BROKERS",
		"MAX_CHUNK_BYTES", "PROVIDER_TIMEOUT",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}

	cfg := Load()

	// Service defaults
	if cfg.Service.Principal != "svc-live-interpreter" {
		t.Errorf("expected default principal 'svc-live-interpreter', got %s", cfg.Service.Principal)
	}
	if cfg.Service.HTTPPort != "8000" {
		t.Errorf("expected default port '8000', got %s", cfg.Service.HTTPPort)
	}

	// Auth defaults
	if cfg.Auth.Mode != "http" {
		t.Errorf("expected default auth mode 'http', got %s", cfg.Auth.Mode)
	}

	// STT defaults
	if cfg.STT.Provider != "mock" {
		t.Errorf("expected default STT provider 'mock', got %s", cfg.STT.Provider)
	}
	if cfg.STT.SampleRateHz != 16000 {
		t.Errorf("expected default sample rate 16000, got %d", cfg.STT.SampleRateHz)
	}
	if cfg.STT.AudioEncoding != "LINEAR16" {
		t.Errorf("expected default encoding 'LINEAR16', got %s", cfg.STT.AudioEncoding)
	}

	// Translation defaults
	if len(cfg.Translation.Providers) != 2 ||
		cfg.Translation.Providers[0] != "deepl" ||
		cfg.Translation.Providers[1] != "azure" {
		t.Errorf("expected default providers [deepl azure], got %v", cfg.Translation.Providers)
	}

	// Kafka defaults
	if cfg.Kafka.Enabled {
		t.Error("expected kafka disabled by default")
	}
	if cfg.Kafka.Topic != "interpretation.transcripts" {
		t.Errorf("expected default topic 'interpretation.transcripts', got %s", cfg.Kafka.Topic)
	}

	// Limits defaults
	if cfg.Limits.MaxChunkBytes != 1*1024*1024 {
		t.Errorf("expected default max chunk bytes 1MB, got %d", cfg.Limits.MaxChunkBytes)
	}
	if cfg.Limits.ProviderTimeout != 15*time.Second {
		t.Errorf("expected default provider timeout 15s, got %v", cfg.Limits.ProviderTimeout)
	}

	// Observability defaults
	if cfg.Observability.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Observability.LogLevel)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Setenv("SERVICE_PRINCIPAL", "custom-principal")
	os.Setenv("HTTP_PORT", "9999")
	os.Setenv("AUTH_MODE", "static")
	os.Setenv("AUTH_STATIC_TOKEN", "dev-token")
	os.Setenv("STT_PROVIDER", "deepgram")
	os.Setenv("STT_SAMPLE_RATE_HZ", "8000")
	os.Setenv("TRANSLATION_PROVIDERS", "azure, deepl")
	os.Setenv("KAFKA_ENABLED", "true")
	os.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	os.Setenv("MAX_CHUNK_BYTES", "2097152")
	os.Setenv("PROVIDER_TIMEOUT", "5s")

	defer func() {
		os.Unsetenv("SERVICE_PRINCIPAL")
		os.Unsetenv("HTTP_PORT")
		os.Unsetenv("AUTH_MODE")
		os.Unsetenv("AUTH_STATIC_TOKEN")
		os.Unsetenv("STT_PROVIDER")
		os.Unsetenv("STT_SAMPLE_RATE_HZ")
		os.Unsetenv("TRANSLATION_PROVIDERS")
		os.Unsetenv("KAFKA_ENABLED")
		os.Unsetenv("KAFKA_BROKERS")
		os.Unsetenv("MAX_CHUNK_BYTES")
		os.Unsetenv("PROVIDER_TIMEOUT")
	}()

	cfg := Load()

	if cfg.Service.Principal != "custom-principal" {
		t.Errorf("expected principal 'custom-principal', got %s", cfg.Service.Principal)
	}
	if cfg.Service.HTTPPort != "9999" {
		t.Errorf("expected port '9999', got %s", cfg.Service.HTTPPort)
	}
	if cfg.Auth.Mode != "static" {
		t.Errorf("expected auth mode 'static', got %s", cfg.Auth.Mode)
	}
	if cfg.Auth.StaticToken != "dev-token" {
		t.Errorf("expected static token 'dev-token', got %s", cfg.Auth.StaticToken)
	}
	if cfg.STT.Provider != "deepgram" {
		t.Errorf("expected STT provider 'deepgram', got %s", cfg.STT.Provider)
	}
	if cfg.STT.SampleRateHz != 8000 {
		t.Errorf("expected sample rate 8000, got %d", cfg.STT.SampleRateHz)
	}
	if len(cfg.Translation.Providers) != 2 ||
		cfg.Translation.Providers[0] != "azure" ||
		cfg.Translation.Providers[1] != "deepl" {
		t.Errorf("expected providers [azure deepl], got %v", cfg.Translation.Providers)
	}
	if !cfg.Kafka.Enabled {
		t.Error("expected kafka enabled")
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[0] != "broker-1:9092" {
		t.Errorf("expected two brokers, got %v", cfg.Kafka.Brokers)
	}
	if cfg.Limits.MaxChunkBytes != 2097152 {
		t.Errorf("expected max chunk bytes 2097152, got %d", cfg.Limits.MaxChunkBytes)
	}
	if cfg.Limits.ProviderTimeout != 5*time.Second {
		t.Errorf("expected provider timeout 5s, got %v", cfg.Limits.ProviderTimeout)
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	os.Setenv("STT_SAMPLE_RATE_HZ", "not-a-number")
	os.Setenv("PROVIDER_TIMEOUT", "soon")
	defer func() {
		os.Unsetenv("STT_SAMPLE_RATE_HZ")
		os.Unsetenv("PROVIDER_TIMEOUT")
	}()

	cfg := Load()

	if cfg.STT.SampleRateHz != 16000 {
		t.Errorf("expected fallback sample rate 16000, got %d", cfg.STT.SampleRateHz)
	}
	if cfg.Limits.ProviderTimeout != 15*time.Second {
		t.Errorf("expected fallback timeout 15s, got %v", cfg.Limits.ProviderTimeout)
	}
}
