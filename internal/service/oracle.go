package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"realtorai/internal/config"
	"realtorai/internal/utils"
)

// OracleClient talks to a DeepSeek-compatible chat completion API and
// returns the first JSON object found in the model's reply
type OracleClient struct {
	config     *config.OracleConfig
	httpClient *http.Client
}

// NewOracleClient creates a client from config; a missing API key leaves
// the client disabled
func NewOracleClient(cfg *config.OracleConfig) *OracleClient {
	return &OracleClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Enabled returns whether the client is configured and ready
func (c *OracleClient) Enabled() bool {
	return c.config.Enabled
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	WebSearch   bool          `json:"web_search,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Complete sends prompt as a single user message and parses the reply
// into a JSON object. Transport failures and non-2xx statuses map to
// ErrOracleUnavailable; replies with no salvageable JSON object map to
// ErrMalformedResponse.
func (c *OracleClient) Complete(ctx context.Context, prompt string, webSearch bool) (map[string]interface{}, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("%w: missing API key", ErrOracleUnavailable)
	}

	reqBody, err := json.Marshal(chatCompletionRequest{
		Model:       c.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.config.Temperature,
		WebSearch:   webSearch,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.config.APIURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrOracleUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrOracleUnavailable, resp.StatusCode, truncate(string(body), 200))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ErrMalformedResponse)
	}

	content := result.Choices[0].Message.Content
	parsed, err := utils.TryParseJSONObject(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return parsed, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
