// Package deepgram provides a Deepgram speech-to-text recognizer using
// the prerecorded transcription API. Each chunk is a standalone
// request/response call; Deepgram's live websocket API is deliberately
// not used here.
package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"live-interpreter-service/internal/service/transcribe"
)

const defaultEndpoint = "https://api.deepgram.com"

// Adapter implements transcribe.Recognizer against Deepgram.
type Adapter struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// New creates a Deepgram recognizer with the given API key and model.
func New(apiKey, model string) *Adapter {
	return &Adapter{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
				Words      []struct {
					Word       string  `json:"word"`
					Start      float64 `json:"start"`
					End        float64 `json:"end"`
					Confidence float64 `json:"confidence"`
				} `json:"words"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Name identifies the provider in logs and metrics.
func (a *Adapter) Name() string { return "deepgram" }

// Recognize transcribes one audio buffer.
func (a *Adapter) Recognize(ctx context.Context, audio []byte, language string) (transcribe.Result, error) {
	q := url.Values{}
	q.Set("model", a.model)
	q.Set("language", language)
	q.Set("punctuate", "true")
	q.Set("smart_format", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.endpoint+"/v1/listen?"+q.Encode(), bytes.NewReader(audio))
	if err != nil {
		return transcribe.Result{}, fmt.Errorf("build deepgram request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+a.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := a.client.Do(req)
	if err != nil {
		return transcribe.Result{}, fmt.Errorf("deepgram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return transcribe.Result{}, fmt.Errorf("deepgram status %d", resp.StatusCode)
	}

	var body listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return transcribe.Result{}, fmt.Errorf("decode deepgram response: %w", err)
	}

	if len(body.Results.Channels) == 0 || len(body.Results.Channels[0].Alternatives) == 0 {
		// No channel data: treat as silence.
		return transcribe.Result{}, nil
	}

	alt := body.Results.Channels[0].Alternatives[0]
	result := transcribe.Result{
		Text:       alt.Transcript,
		Confidence: alt.Confidence,
	}
	for _, w := range alt.Words {
		result.Words = append(result.Words, transcribe.Word{
			Word:       w.Word,
			Start:      w.Start,
			End:        w.End,
			Confidence: w.Confidence,
		})
	}
	return result, nil
}
