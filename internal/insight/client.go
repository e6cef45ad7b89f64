// Package insight calls a Gemini-compatible generateContent endpoint for short
// sales texts. Calls pass through a circuit breaker.
package insight

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/spec-kit/ops-console/internal/config"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("insight api key not configured")

// Prompt is one text-completion request.
type Prompt struct {
	Text            string
	Temperature     float64
	MaxOutputTokens int
}

// Generator produces completion text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Client calls the completion API.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	HTTP    *http.Client
	breaker *gobreaker.CircuitBreaker[string]
}

// New creates a client from configuration.
func New(cfg config.InsightConfig) *Client {
	failures := cfg.FailureThreshold
	if failures == 0 {
		failures = 3
	}
	open := time.Duration(cfg.OpenSeconds) * time.Second
	if open <= 0 {
		open = 30 * time.Second
	}

	return &Client{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		HTTP:    &http.Client{Timeout: cfg.Timeout()},
		breaker: gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:        "insight",
			MaxRequests: 1,
			Timeout:     open,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
		}),
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt and returns the first candidate's text.
// While the breaker is open it fails fast with gobreaker.ErrOpenState.
func (c *Client) Generate(ctx context.Context, prompt Prompt) (string, error) {
	if c.APIKey == "" {
		return "", ErrNotConfigured
	}
	return c.breaker.Execute(func() (string, error) {
		return c.generate(ctx, prompt)
	})
}

func (c *Client) generate(ctx context.Context, prompt Prompt) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt.Text}}}},
		GenerationConfig: generationConfig{
			Temperature:     prompt.Temperature,
			MaxOutputTokens: prompt.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.BaseURL, c.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("insight request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("insight service error %s: %s", resp.Status, string(bodyBytes))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("insight response has no candidates")
	}
	text := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", errors.New("insight response is empty")
	}
	return text, nil
}
