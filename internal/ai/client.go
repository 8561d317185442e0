package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultModel       = "gpt-4.1-mini"
	defaultImageModel  = "gpt-image-1"
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultTemperature = 0.4
	defaultTimeout     = 3 * time.Minute
	maxErrorBody       = 512
)

var (
	// ErrMissingAPIKey is returned by NewClient when no credential is configured.
	ErrMissingAPIKey = errors.New("ai: api key must not be empty")
	// ErrUpstreamStatus wraps non-2xx responses from the service.
	ErrUpstreamStatus = errors.New("ai: upstream returned an error status")
	// ErrMalformedResponse marks payloads that do not decode into the expected shape.
	ErrMalformedResponse = errors.New("ai: malformed response")
	// ErrIntegrity marks payloads that decode but violate the result invariants.
	ErrIntegrity = errors.New("ai: response violates result invariants")
)

// Config describes how the OpenAI client should be initialised.
type Config struct {
	APIKey      string
	Model       string
	ImageModel  string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client offers a thin wrapper around the OpenAI chat completions and image
// edit endpoints used by the decoration wizard.
type Client struct {
	apiKey      string
	model       string
	imageModel  string
	baseURL     string
	temperature float64
	httpClient  *http.Client
}

// NewClient builds a Client for room analysis and visualisation.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	imageModel := strings.TrimSpace(cfg.ImageModel)
	if imageModel == "" {
		imageModel = defaultImageModel
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	temp := cfg.Temperature
	if temp <= 0 {
		temp = defaultTemperature
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}

	return &Client{
		apiKey:      apiKey,
		model:       model,
		imageModel:  imageModel,
		baseURL:     strings.TrimRight(baseURL, "/"),
		temperature: temp,
		httpClient:  httpClient,
	}, nil
}

// Model reports the text model used for analysis.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) performChatCompletion(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("ai: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var responseData struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
				Refusal string `json:"refusal"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := c.do(req, &responseData); err != nil {
		return "", err
	}

	if len(responseData.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}
	message := responseData.Choices[0].Message
	if strings.TrimSpace(message.Refusal) != "" {
		return "", fmt.Errorf("%w: model refused: %s", ErrMalformedResponse, message.Refusal)
	}

	content := stripCodeFence(message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty content", ErrMalformedResponse)
	}
	return content, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ai: call openai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s: %s", ErrUpstreamStatus, resp.Status, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode envelope: %v", ErrMalformedResponse, err)
	}
	return nil
}

// stripCodeFence removes a surrounding Markdown code fence, with or without a
// language tag.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if newline := strings.IndexByte(content, '\n'); newline >= 0 {
		tag := strings.TrimSpace(content[:newline])
		if tag == "" || !strings.ContainsAny(tag, "{[") {
			content = content[newline+1:]
		}
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}
