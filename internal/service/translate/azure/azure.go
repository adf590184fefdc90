// Package azure provides an Azure Translator provider, used as the
// fallback behind DeepL.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider implements translate.Provider against the Azure Translator
// REST API (v3.0).
type Provider struct {
	apiKey   string
	endpoint string
	region   string
	client   *http.Client
}

// New creates an Azure Translator provider.
func New(apiKey, endpoint, region string) *Provider {
	return &Provider{
		apiKey:   apiKey,
		endpoint: strings.TrimRight(endpoint, "/"),
		region:   region,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type translateResponse []struct {
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string { return "azure" }

// Translate converts text via Azure Translator.
func (p *Provider) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	q := url.Values{}
	q.Set("api-version", "3.0")
	q.Set("from", sourceLanguage)
	q.Set("to", targetLanguage)

	payload, err := json.Marshal([]map[string]string{{"Text": text}})
	if err != nil {
		return "", fmt.Errorf("encode azure request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.endpoint+"/translate?"+q.Encode(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build azure request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", p.apiKey)
	if p.region != "" {
		req.Header.Set("Ocp-Apim-Subscription-Region", p.region)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("azure request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("azure status %d", resp.StatusCode)
	}

	var body translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode azure response: %w", err)
	}
	if len(body) == 0 || len(body[0].Translations) == 0 {
		return "", errors.New("azure returned no translations")
	}
	return body[0].Translations[0].Text, nil
}
