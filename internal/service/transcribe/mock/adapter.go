// Package mock provides a mock recognizer for development and tests
// without provider credentials. It cycles through canned phrases, with
// periodic silence results to exercise the skip path.
package mock

import (
	"context"
	"sync"

	"live-interpreter-service/internal/service/transcribe"
)

// Phrase is one canned recognition result.
type Phrase struct {
	Text       string
	Confidence float64
}

// DefaultPhrases provides sample recognitions for simulation.
var DefaultPhrases = []Phrase{
	{Text: "Good morning everyone", Confidence: 0.96},
	{Text: "Let's get started with the first item", Confidence: 0.93},
	{Text: "", Confidence: 0}, // silence
	{Text: "Could you repeat that please", Confidence: 0.91},
	{Text: "Thank you for joining today", Confidence: 0.97},
}

// Adapter implements transcribe.Recognizer with canned phrases.
type Adapter struct {
	mu      sync.Mutex
	phrases []Phrase
	next    int
}

// New creates a mock recognizer cycling through the default phrases.
func New() *Adapter {
	return &Adapter{phrases: DefaultPhrases}
}

// NewWithPhrases creates a mock recognizer with the given phrases.
func NewWithPhrases(phrases []Phrase) *Adapter {
	return &Adapter{phrases: phrases}
}

// Name identifies the provider in logs and metrics.
func (a *Adapter) Name() string { return "mock" }

// Recognize returns the next canned phrase.
func (a *Adapter) Recognize(_ context.Context, _ []byte, _ string) (transcribe.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.phrases[a.next%len(a.phrases)]
	a.next++

	return transcribe.Result{Text: p.Text, Confidence: p.Confidence}, nil
}
