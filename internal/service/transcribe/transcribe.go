// Package transcribe defines the speech-to-text port. A Recognizer
// turns one audio chunk into recognized text; the Service wraps it with
// a bounded timeout and converts every provider failure into
// unavailability so a single bad chunk never reaches the caller as an
// error.
package transcribe

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"live-interpreter-service/internal/observability/metrics"
)

// Word is one recognized word with its timing inside the chunk.
type Word struct {
	Word       string  `json:"word"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Result is a successful recognition. Text may be empty when the
// provider recognized silence; that is a valid result, not an error.
type Result struct {
	Text       string
	Confidence float64
	Words      []Word
}

// Recognizer is implemented by STT providers (Deepgram, Google, mock).
// The language hint biases recognition; it is not a guarantee.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, audio []byte, language string) (Result, error)
}

// Service is the transcription port used by the interpretation loop.
type Service struct {
	rec     Recognizer
	timeout time.Duration
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewService wraps a recognizer with the provider timeout.
func NewService(rec Recognizer, timeout time.Duration, log zerolog.Logger) *Service {
	return &Service{
		rec:     rec,
		timeout: timeout,
		metrics: metrics.DefaultMetrics,
		log:     log,
	}
}

// Transcribe recognizes one audio chunk. The second return value is
// false when the provider failed or timed out; the caller should treat
// that chunk as producing no result and continue.
func (s *Service) Transcribe(ctx context.Context, audio []byte, language string) (Result, bool) {
	if len(audio) == 0 {
		return Result{}, false
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.rec.Recognize(ctx, audio, language)
	s.metrics.RecordProviderCall(s.rec.Name(), "transcribe", err, time.Since(start).Seconds())

	if err != nil {
		s.log.Warn().
			Err(err).
			Str("provider", s.rec.Name()).
			Int("audioBytes", len(audio)).
			Msg("Transcription unavailable")
		return Result{}, false
	}
	return result, true
}
