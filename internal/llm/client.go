// Package llm provides the JSON-mode chat-completions client every oracle
// and analysis stage talks through. The model is an opaque, replaceable
// collaborator: callers send structured data plus instructions and receive
// JSON back.
package llm

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"swiftflow/internal/llm/cache"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1/chat/completions"
	defaultModel       = "gpt-4o"
	defaultTemperature = 0.1 // low temperature for consistent analysis
	defaultCacheTTL    = time.Hour
)

// Client calls the chat-completions API with response_format json_object.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
	cache       cache.Cache
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint (tests point this at httptest).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithModel overrides the model name.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithCache enables response caching.
func WithCache(store cache.Cache) ClientOption {
	return func(c *Client) {
		c.cache = store
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient constructs an API client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		model:       defaultModel,
		temperature: defaultTemperature,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		cacheTTL:    defaultCacheTTL,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// ChatJSON sends a system/user prompt pair and returns the model's JSON
// object response. Identical prompts hit the cache when one is configured.
func (c *Client) ChatJSON(ctx context.Context, system, user string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("llm: API key not set")
	}

	key := promptKey(c.model, system, user)
	if c.cache != nil {
		if value, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			return json.RawMessage(value), nil
		} else if err != nil {
			c.logger.Warn().Err(err).Msg("llm cache read failed")
		}
	}

	raw, err := c.complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, raw, c.cacheTTL); err != nil {
			c.logger.Warn().Err(err).Msg("llm cache write failed")
		}
	}
	return raw, nil
}

func (c *Client) complete(ctx context.Context, system, user string) (json.RawMessage, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    c.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("llm: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llm: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("llm: API error (%s): %s", apiErr.Error.Type, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("llm: unexpected status %d: %s", resp.StatusCode, body)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("llm: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("llm: response contained no choices")
	}

	content := parsed.Choices[0].Message.Content
	if content == "" {
		content = "{}"
	}
	if !json.Valid([]byte(content)) {
		return nil, fmt.Errorf("llm: model returned invalid JSON")
	}
	return json.RawMessage(content), nil
}

func promptKey(model, system, user string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(system))
	h.Write([]byte{0})
	h.Write([]byte(user))
	return hex.EncodeToString(h.Sum(nil))
}
