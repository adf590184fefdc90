package events

import (
	"context"
	"testing"

	"live-interpreter-service/internal/models"
)

func TestNew_NilConfig(t *testing.T) {
	p := New(nil)
	if p.enabled {
		t.Error("expected publisher disabled with nil config")
	}
}

func TestNew_DisabledConfig(t *testing.T) {
	p := New(&Config{Enabled: false, Topic: "interpretation.transcripts"})
	if p.enabled {
		t.Error("expected publisher disabled")
	}
	if p.topic != "interpretation.transcripts" {
		t.Errorf("expected topic retained, got %s", p.topic)
	}
}

func TestNew_EnabledWithoutBrokers(t *testing.T) {
	// Enabled but no brokers falls back to log-only mode
	p := New(&Config{Enabled: true, Topic: "interpretation.transcripts"})
	if p.enabled {
		t.Error("expected publisher disabled without brokers")
	}
}

func TestPublishTranscript_LogOnlyMode(t *testing.T) {
	p := New(&Config{Enabled: false, Topic: "interpretation.transcripts", Principal: "svc-test"})

	translated := "hola"
	err := p.PublishTranscript(context.Background(), models.Transcript{
		ID:             1,
		SessionID:      42,
		OriginalText:   "hello",
		TranslatedText: &translated,
		SourceLanguage: "en",
		TargetLanguage: "es",
	})
	if err != nil {
		t.Fatalf("log-only publish should not fail: %v", err)
	}
}

func TestClose_LogOnlyMode(t *testing.T) {
	p := New(nil)
	if err := p.Close(); err != nil {
		t.Fatalf("closing disabled publisher should not fail: %v", err)
	}
}
