package search

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

// TavilyConfig holds configuration for the primary search provider.
type TavilyConfig struct {
	APIKey  string
	BaseURL string        // default: https://api.tavily.com
	Timeout time.Duration // default: 10s
}

// TavilyProvider queries the Tavily search API in short-answer mode and
// formats the answer plus up to three source lines.
type TavilyProvider struct {
	cfg    TavilyConfig
	client *http.Client
}

// NewTavilyProvider creates the primary search provider.
func NewTavilyProvider(cfg TavilyConfig) *TavilyProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.tavily.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &TavilyProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Name identifies the provider in logs.
func (p *TavilyProvider) Name() string { return "tavily" }

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
	MaxResults    int    `json:"max_results"`
}

type tavilyResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func (p *TavilyProvider) attempt(ctx context.Context, query string) (string, error) {
	reqBody := tavilyRequest{
		APIKey:        p.cfg.APIKey,
		Query:         query,
		SearchDepth:   "basic",
		IncludeAnswer: true,
		MaxResults:    3,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.cfg.BaseURL+"/search", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("tavily returned status %d: %s", resp.StatusCode, string(body))
	}

	var respData tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return formatTavilyResult(&respData), nil
}

// formatTavilyResult renders "Answer: ..." followed by up to three
// "title (url): snippet" source lines. Returns "" when the response carries
// neither an answer nor results.
func formatTavilyResult(resp *tavilyResponse) string {
	var b strings.Builder

	if resp.Answer != "" {
		fmt.Fprintf(&b, "Answer: %s", resp.Answer)
	}

	for i, r := range resp.Results {
		if i >= 3 {
			break
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%s): %s", r.Title, r.URL, r.Content)
	}

	return b.String()
}

// Compile-time assertion.
var _ Provider = (*TavilyProvider)(nil)
