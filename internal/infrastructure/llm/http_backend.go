// Package llm provides model backends for the chat endpoint. The backends
// sit behind ports.ModelBackend; response quality is out of scope for the
// gatekeeping pipeline.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chojuninengu/amega-ai/internal/core/domain"
)

const defaultRequestTimeout = 60 * time.Second

// Config captures the settings for an OpenAI-compatible chat completion
// endpoint (OpenAI, Ollama, vLLM and friends all speak this shape).
type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// HTTPBackend calls an OpenAI-compatible /chat/completions endpoint.
type HTTPBackend struct {
	cfg    Config
	client *http.Client
}

func NewHTTPBackend(cfg Config) *HTTPBackend {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &HTTPBackend{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type completionRequest struct {
	Model    string              `json:"model"`
	Messages []completionMessage `json:"messages"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
}

func (b *HTTPBackend) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:    b.cfg.Model,
		Messages: []completionMessage{{Role: domain.ChatRoleUser, Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if b.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("model backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("model backend: status %d: %s", resp.StatusCode, body)
	}

	var cr completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("model backend: decode: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("model backend: empty response")
	}
	return cr.Choices[0].Message.Content, nil
}
