package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DuckDuckGoConfig holds configuration for the keyless fallback provider.
type DuckDuckGoConfig struct {
	BaseURL string        // default: https://api.duckduckgo.com
	Timeout time.Duration // default: 10s
}

// DuckDuckGoProvider queries the DuckDuckGo instant-answer API. It needs no
// credentials, which makes it the free fallback when the primary provider is
// unconfigured or failing.
type DuckDuckGoProvider struct {
	cfg    DuckDuckGoConfig
	client *http.Client
}

// NewDuckDuckGoProvider creates the fallback search provider.
func NewDuckDuckGoProvider(cfg DuckDuckGoConfig) *DuckDuckGoProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.duckduckgo.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &DuckDuckGoProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name identifies the provider in logs.
func (p *DuckDuckGoProvider) Name() string { return "duckduckgo" }

type duckDuckGoResponse struct {
	AbstractText  string `json:"AbstractText"`
	Answer        string `json:"Answer"`
	RelatedTopics []struct {
		Text string `json:"Text"`
	} `json:"RelatedTopics"`
}

func (p *DuckDuckGoProvider) attempt(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, "GET", p.cfg.BaseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("duckduckgo returned status %d: %s", resp.StatusCode, string(body))
	}

	var respData duckDuckGoResponse
	if err := json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	// Extraction priority: abstract, then direct answer, then the first
	// related topic's text.
	if respData.AbstractText != "" {
		return respData.AbstractText, nil
	}
	if respData.Answer != "" {
		return respData.Answer, nil
	}
	for _, topic := range respData.RelatedTopics {
		if topic.Text != "" {
			return topic.Text, nil
		}
	}

	return "", nil
}

// Compile-time assertion.
var _ Provider = (*DuckDuckGoProvider)(nil)
