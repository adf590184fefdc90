// Package google provides a Google Cloud Speech-to-Text recognizer.
package google

import (
	"context"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"live-interpreter-service/internal/service/transcribe"
)

// Adapter implements transcribe.Recognizer using Google Cloud
// Speech-to-Text, one Recognize call per chunk.
type Adapter struct {
	client       *speech.Client
	encoding     speechpb.RecognitionConfig_AudioEncoding
	sampleRateHz int
}

// New creates a new Google recognizer.
// Requires GOOGLE_APPLICATION_CREDENTIALS environment variable to be set.
func New(ctx context.Context, encoding string, sampleRateHz int) (*Adapter, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	enc, ok := speechpb.RecognitionConfig_AudioEncoding_value[encoding]
	if !ok {
		return nil, fmt.Errorf("unsupported audio encoding %q", encoding)
	}

	return &Adapter{
		client:       c,
		encoding:     speechpb.RecognitionConfig_AudioEncoding(enc),
		sampleRateHz: sampleRateHz,
	}, nil
}

// Name identifies the provider in logs and metrics.
func (a *Adapter) Name() string { return "google" }

// Recognize transcribes one audio buffer.
func (a *Adapter) Recognize(ctx context.Context, audio []byte, language string) (transcribe.Result, error) {
	resp, err := a.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:              a.encoding,
			SampleRateHertz:       int32(a.sampleRateHz),
			LanguageCode:          language,
			EnableWordTimeOffsets: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return transcribe.Result{}, err
	}

	var result transcribe.Result
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		alt := r.Alternatives[0]
		if result.Text == "" {
			result.Text = alt.Transcript
			result.Confidence = float64(alt.Confidence)
		} else {
			result.Text += " " + alt.Transcript
		}
		for _, w := range alt.Words {
			result.Words = append(result.Words, transcribe.Word{
				Word:       w.Word,
				Start:      w.StartTime.AsDuration().Seconds(),
				End:        w.EndTime.AsDuration().Seconds(),
				Confidence: float64(w.Confidence),
			})
		}
	}
	return result, nil
}

// Close releases the underlying client.
func (a *Adapter) Close() error {
	return a.client.Close()
}
