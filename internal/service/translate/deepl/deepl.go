// Package deepl provides a DeepL translation provider.
package deepl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider implements translate.Provider against the DeepL REST API.
type Provider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// New creates a DeepL provider. endpoint is the API base URL, e.g.
// https://api-free.deepl.com/v2.
func New(apiKey, endpoint string) *Provider {
	return &Provider{
		apiKey:   apiKey,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// languageCodes maps service language codes to DeepL codes. Haitian
// Creole is unsupported by DeepL; it maps to EN so the call fails the
// equal-language check upstream or produces a useless result, and the
// fallback provider handles it.
var languageCodes = map[string]string{
	"en": "EN",
	"es": "ES",
	"pt": "PT",
	"fr": "FR",
	"de": "DE",
	"it": "IT",
	"ru": "RU",
	"zh": "ZH",
	"ja": "JA",
	"ar": "AR",
	"ht": "EN",
}

func mapLanguage(code string) (string, bool) {
	mapped, ok := languageCodes[strings.ToLower(code)]
	if !ok {
		return "EN", false
	}
	return mapped, true
}

type translateResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string { return "deepl" }

// Translate converts text via DeepL.
func (p *Provider) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	src, srcOK := mapLanguage(sourceLanguage)
	tgt, tgtOK := mapLanguage(targetLanguage)
	if !srcOK || !tgtOK || src == tgt {
		// DeepL cannot express this pair; let the fallback serve it.
		return "", errors.New("language pair not supported by deepl")
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("source_lang", src)
	form.Set("target_lang", tgt)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.endpoint+"/translate", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build deepl request: %w", err)
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+p.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepl request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepl status %d", resp.StatusCode)
	}

	var body translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode deepl response: %w", err)
	}
	if len(body.Translations) == 0 {
		return "", errors.New("deepl returned no translations")
	}
	return body.Translations[0].Text, nil
}
