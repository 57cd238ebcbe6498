// Package llm implements the narrative-generation client against an
// OpenAI-compatible chat-completions API. The service is treated as
// unreliable: callers bound every call with a context deadline and
// abandon the result when it expires.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lp452254117/alpha-predator/internal/contracts"
	"github.com/lp452254117/alpha-predator/pkg/config"
	"github.com/lp452254117/alpha-predator/pkg/httputil"
	"github.com/lp452254117/alpha-predator/pkg/logger"
)

// Client calls the chat-completions endpoint
// ⭐ SSOT: narrative generation calls go through this client only
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
}

// New creates a chat client. An empty API key is allowed at construction;
// calls will fail until one is configured.
func New(cfg config.LLMConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		maxTokens:  cfg.MaxTokens,
	}
}

type chatRequest struct {
	Model       string              `json:"model"`
	Messages    []contracts.Message `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message contracts.Message `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends a system prompt plus conversation messages and returns the
// assistant's reply text. The caller's context bounds the wait.
func (c *Client) Chat(ctx context.Context, system string, messages []contracts.Message) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("llm api key not configured")
	}

	all := make([]contracts.Message, 0, len(messages)+1)
	if system != "" {
		all = append(all, contracts.Message{Role: "system", Content: system})
	}
	all = append(all, messages...)

	body := chatRequest{
		Model:       c.model,
		Messages:    all,
		MaxTokens:   c.maxTokens,
		Temperature: 0.2,
	}

	url := c.baseURL + "/chat/completions"
	req, err := newJSONRequest(ctx, url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr chatErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("chat api error: %s", apiErr.Error.Message)
		}
		return "", fmt.Errorf("chat api returned status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode chat response failed: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("chat api returned no choices")
	}

	content := decoded.Choices[0].Message.Content
	c.logger.WithFields(map[string]interface{}{
		"model": c.model,
		"chars": len(content),
	}).Debug("Chat completion received")
	return content, nil
}

func newJSONRequest(ctx context.Context, url string, data interface{}) (*http.Request, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
