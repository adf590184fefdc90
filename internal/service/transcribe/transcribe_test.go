package transcribe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeRecognizer implements Recognizer for testing
type fakeRecognizer struct {
	result Result
	err    error
	block  bool // block until context is done
	calls  int
}

func (f *fakeRecognizer) Name() string { return "fake" }

func (f *fakeRecognizer) Recognize(ctx context.Context, audio []byte, language string) (Result, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return Result{}, ctx.Err()
	}
	return f.result, f.err
}

func TestService_Success(t *testing.T) {
	rec := &fakeRecognizer{result: Result{Text: "hello", Confidence: 0.9}}
	svc := NewService(rec, time.Second, zerolog.Nop())

	result, ok := svc.Transcribe(context.Background(), []byte("audio"), "en")
	if !ok {
		t.Fatal("expected transcription to be available")
	}
	if result.Text != "hello" {
		t.Errorf("expected text 'hello', got %q", result.Text)
	}
	if result.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", result.Confidence)
	}
}

func TestService_EmptyTextIsValid(t *testing.T) {
	// Silence is a valid result, not an error
	rec := &fakeRecognizer{result: Result{Text: "", Confidence: 0}}
	svc := NewService(rec, time.Second, zerolog.Nop())

	result, ok := svc.Transcribe(context.Background(), []byte("silence"), "en")
	if !ok {
		t.Fatal("expected silence to be a valid result")
	}
	if result.Text != "" {
		t.Errorf("expected empty text, got %q", result.Text)
	}
}

func TestService_ProviderErrorBecomesUnavailable(t *testing.T) {
	rec := &fakeRecognizer{err: errors.New("connection refused")}
	svc := NewService(rec, time.Second, zerolog.Nop())

	_, ok := svc.Transcribe(context.Background(), []byte("audio"), "en")
	if ok {
		t.Fatal("expected unavailable on provider error")
	}
}

func TestService_TimeoutBecomesUnavailable(t *testing.T) {
	rec := &fakeRecognizer{block: true}
	svc := NewService(rec, 20*time.Millisecond, zerolog.Nop())

	start := time.Now()
	_, ok := svc.Transcribe(context.Background(), []byte("audio"), "en")
	if ok {
		t.Fatal("expected unavailable on timeout")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout did not bound the call, took %v", elapsed)
	}
}

func TestService_EmptyAudioSkipsProvider(t *testing.T) {
	rec := &fakeRecognizer{result: Result{Text: "hello"}}
	svc := NewService(rec, time.Second, zerolog.Nop())

	_, ok := svc.Transcribe(context.Background(), nil, "en")
	if ok {
		t.Fatal("expected empty audio to produce no result")
	}
	if rec.calls != 0 {
		t.Errorf("expected provider not to be called, got %d calls", rec.calls)
	}
}
