package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// restTimeout bounds each model attempt. One attempt per model, no
	// retry or backoff; exhaustion falls through to the chain's last-error
	// string.
	restTimeout = 30 * time.Second
)

// restProvider talks to the generative-language REST endpoint directly,
// trying an ordered list of model names until one returns a usable
// candidate. It is deliberately SDK-free so its failure domain stays
// separate from the primary provider's.
type restProvider struct {
	apiKey  string
	models  []string
	baseURL string
	client  *http.Client
}

func newRESTProvider(apiKey string, models []string, baseURL string) *restProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &restProvider{
		apiKey:  strings.TrimSpace(apiKey),
		models:  models,
		baseURL: baseURL,
		client:  &http.Client{Timeout: restTimeout},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *restProvider) complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	lastErr := ""
	for _, model := range p.models {
		text, err := p.tryModel(ctx, model, payload)
		if err != nil {
			lastErr = err.Error()
			continue
		}
		return text, nil
	}
	return "", fmt.Errorf("%s", lastErr)
}

func (p *restProvider) tryModel(ctx context.Context, model string, payload []byte) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%d - %s", resp.StatusCode, string(body))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}
