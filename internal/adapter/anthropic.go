package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"tradejournal/internal/domain"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// AnthropicClient implements domain.Assistant against the Anthropic Messages
// API. The API key travels per call so a key changed through the settings
// endpoint takes effect immediately.
type AnthropicClient struct {
	http      *resty.Client
	model     string
	maxTokens int
}

// NewAnthropicClient creates an Anthropic Messages API client. An empty
// baseURL selects the production endpoint.
func NewAnthropicClient(baseURL, model string, maxTokens int) domain.Assistant {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	return &AnthropicClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(120 * time.Second), // LLM reformatting can take a while
		model:     model,
		maxTokens: maxTokens,
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the system instruction and user message and returns the
// model's single text response verbatim.
func (c *AnthropicClient) Complete(ctx context.Context, apiKey, system, message string) (string, error) {
	var (
		out    anthropicResponse
		apiErr anthropicError
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("Content-Type", "application/json").
		SetBody(anthropicRequest{
			Model:     c.model,
			MaxTokens: c.maxTokens,
			System:    system,
			Messages:  []anthropicMessage{{Role: "user", Content: message}},
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v1/messages")

	if err != nil {
		return "", fmt.Errorf("failed to call Anthropic API: %w", err)
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.String()
		}
		return "", fmt.Errorf("Anthropic API error: status=%d, message=%s", resp.StatusCode(), msg)
	}

	for _, block := range out.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Anthropic response")
}
