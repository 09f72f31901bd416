// Package ollama provides an Ollama backed embedder.
package ollama

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

const (
	defaultBaseURL = "http://localhost:11434"
	embedEndpoint  = "/api/embed"
	defaultTimeout = 30 * time.Second
)

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the Ollama server base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client embeds texts via a local or remote Ollama server and implements the
// embeddings.Embedder contract.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// New creates a client for the given embedding model.
func New(model string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		model:      model,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Error      string      `json:"error"`
}

// EmbedDocuments embeds the texts as a single batch, one vector per text in
// input order.
func (c *Client) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if c.model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("no input texts provided")
	}
	body, err := json.Marshal(embedRequest{Model: c.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+embedEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(response.Body)
		return nil, fmt.Errorf("ollama API error: %s", strings.TrimSpace(string(payload)))
	}
	var out embedResponse
	if err := json.NewDecoder(response.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("ollama API error: %s", out.Error)
	}
	return out.Embeddings, nil
}

// EmbedQuery embeds a single text.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("ollama returned %d vectors for 1 query", len(vectors))
	}
	return vectors[0], nil
}
