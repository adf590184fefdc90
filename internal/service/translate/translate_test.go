package translate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeProvider implements Provider for testing
type fakeProvider struct {
	name   string
	result string
	err    error
	calls  int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Translate(ctx context.Context, text, src, tgt string) (string, error) {
	f.calls++
	return f.result, f.err
}

func TestService_SameLanguageShortCircuits(t *testing.T) {
	primary := &fakeProvider{name: "primary", result: "should not be used"}
	svc := NewService([]Provider{primary}, time.Second, zerolog.Nop())

	out, ok := svc.Translate(context.Background(), "hello", "en", "en")
	if !ok {
		t.Fatal("expected same-language translation to succeed")
	}
	if out != "hello" {
		t.Errorf("expected input returned unchanged, got %q", out)
	}
	if primary.calls != 0 {
		t.Errorf("expected no provider calls, got %d", primary.calls)
	}
}

func TestService_PrimarySuccess(t *testing.T) {
	primary := &fakeProvider{name: "primary", result: "hola"}
	fallback := &fakeProvider{name: "fallback", result: "unused"}
	svc := NewService([]Provider{primary, fallback}, time.Second, zerolog.Nop())

	out, ok := svc.Translate(context.Background(), "hello", "en", "es")
	if !ok {
		t.Fatal("expected translation to succeed")
	}
	if out != "hola" {
		t.Errorf("expected 'hola', got %q", out)
	}
	if fallback.calls != 0 {
		t.Errorf("expected fallback untouched, got %d calls", fallback.calls)
	}
}

func TestService_FallbackServesWhenPrimaryFails(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("quota exceeded")}
	fallback := &fakeProvider{name: "fallback", result: "hola"}
	svc := NewService([]Provider{primary, fallback}, time.Second, zerolog.Nop())

	out, ok := svc.Translate(context.Background(), "hello", "en", "es")
	if !ok {
		t.Fatal("expected fallback to serve the translation")
	}
	if out != "hola" {
		t.Errorf("expected fallback output 'hola', got %q", out)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("expected one call each, got primary=%d fallback=%d", primary.calls, fallback.calls)
	}
}

func TestService_AllProvidersFail(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("down")}
	fallback := &fakeProvider{name: "fallback", err: errors.New("also down")}
	svc := NewService([]Provider{primary, fallback}, time.Second, zerolog.Nop())

	_, ok := svc.Translate(context.Background(), "hello", "en", "es")
	if ok {
		t.Fatal("expected unavailable when all providers fail")
	}
}

func TestService_NoProvidersConfigured(t *testing.T) {
	svc := NewService(nil, time.Second, zerolog.Nop())

	_, ok := svc.Translate(context.Background(), "hello", "en", "es")
	if ok {
		t.Fatal("expected unavailable with no providers")
	}

	// Same-language still works with no providers
	out, ok := svc.Translate(context.Background(), "hello", "en", "en")
	if !ok || out != "hello" {
		t.Errorf("expected same-language short-circuit, got %q ok=%v", out, ok)
	}
}
