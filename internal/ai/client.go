// Package ai implements the optional HTTP-backed disambiguation client.
// It fills the extension point the resolution cascade leaves open: the
// engine itself never calls it; the caller invokes it after tier 3 fails
// and feeds the verdict back.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pawprint/labresolve/internal/common"
	"github.com/pawprint/labresolve/internal/model"
	"github.com/pawprint/labresolve/internal/service"
)

// Config holds configuration for the disambiguation client.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client calls the Anthropic messages API to disambiguate unresolved lab
// item names against the current catalog. Implements service.Disambiguator.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
}

// NewClient creates a disambiguation client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "claude-3-5-haiku-20241022"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 400
	}

	return &Client{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Disambiguate asks the API whether rawName matches one of the catalog
// items or warrants a new entry.
func (c *Client) Disambiguate(ctx context.Context, rawName string, items []model.CanonicalItem) (*service.Verdict, error) {
	if len(items) == 0 {
		return nil, common.ErrEmptyCatalog
	}

	systemPrompt := "You are a veterinary lab test identifier. Respond only with JSON in the exact format requested."

	requestBody := map[string]any{
		"model":       c.model,
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
		"system":      systemPrompt,
		"messages": []map[string]string{
			{
				"role":    "user",
				"content": buildPrompt(rawName, items),
			},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var response messagesResponse
	err = common.WithRetry(ctx, func() error {
		var reqErr error
		response, reqErr = c.doRequest(ctx, jsonBody)
		return reqErr
	}, service.RetryOptions{MaxAttempts: 3})
	if err != nil {
		return nil, err
	}

	if len(response.Content) == 0 {
		return nil, fmt.Errorf("no content in response")
	}

	return parseVerdict(response.Content[0].Text, items)
}

func (c *Client) doRequest(ctx context.Context, jsonBody []byte) (messagesResponse, error) {
	var response messagesResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://api.anthropic.com/v1/messages", strings.NewReader(string(jsonBody)))
	if err != nil {
		return response, &common.RetryableError{Err: fmt.Errorf("failed to create request: %w", err), Retryable: false}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return response, fmt.Errorf("%w: %s", common.ErrRateLimit, string(body))
	case resp.StatusCode >= 500:
		return response, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	case resp.StatusCode != http.StatusOK:
		return response, &common.RetryableError{
			Err:       fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body)),
			Retryable: false,
		}
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return response, &common.RetryableError{Err: fmt.Errorf("failed to parse response: %w", err), Retryable: false}
	}

	return response, nil
}

// messagesResponse represents the Anthropic messages API response structure.
type messagesResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}
