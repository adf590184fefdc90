// Package translate defines the machine-translation port. Providers
// are attempted in configured order; the first success wins. Identical
// source and target languages short-circuit without touching any
// provider, and provider failures surface only as unavailability.
package translate

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"live-interpreter-service/internal/observability/metrics"
)

// Provider is implemented by translation backends (DeepL, Azure).
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)
}

// Service is the translation port used by the interpretation loop.
type Service struct {
	providers []Provider
	timeout   time.Duration
	metrics   *metrics.Metrics
	log       zerolog.Logger
}

// NewService builds the port over an ordered provider chain. The first
// provider is primary; the rest are fallbacks.
func NewService(providers []Provider, timeout time.Duration, log zerolog.Logger) *Service {
	return &Service{
		providers: providers,
		timeout:   timeout,
		metrics:   metrics.DefaultMetrics,
		log:       log,
	}
}

// Translate converts text between languages. The second return value
// is false when every configured provider failed or none are
// configured; the caller persists the transcript with a null
// translation in that case.
func (s *Service) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, bool) {
	if sourceLanguage == targetLanguage {
		return text, true
	}

	for i, p := range s.providers {
		translated, err := s.tryProvider(ctx, p, text, sourceLanguage, targetLanguage)
		if err != nil {
			s.log.Warn().
				Err(err).
				Str("provider", p.Name()).
				Str("sourceLanguage", sourceLanguage).
				Str("targetLanguage", targetLanguage).
				Msg("Translation provider unavailable")
			continue
		}
		if i > 0 {
			s.metrics.RecordTranslationFallback()
		}
		return translated, true
	}

	return "", false
}

func (s *Service) tryProvider(ctx context.Context, p Provider, text, sourceLanguage, targetLanguage string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	translated, err := p.Translate(ctx, text, sourceLanguage, targetLanguage)
	s.metrics.RecordProviderCall(p.Name(), "translate", err, time.Since(start).Seconds())
	return translated, err
}
