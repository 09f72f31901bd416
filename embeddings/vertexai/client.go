// Package vertexai provides a Google Vertex AI backed embedder.
package vertexai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	defaultLocation = "us-central1"
	defaultModel    = "text-embedding-004"
	defaultTimeout  = 30 * time.Second
	cloudScope      = "https://www.googleapis.com/auth/cloud-platform"
)

// Option configures the client.
type Option func(*Client)

// WithLocation overrides the Vertex AI location.
func WithLocation(location string) Option {
	return func(c *Client) {
		if location != "" {
			c.location = location
		}
	}
}

// WithScopes appends OAuth scopes used for the token source.
func WithScopes(scopes ...string) Option {
	return func(c *Client) { c.scopes = append(c.scopes, scopes...) }
}

// WithTokenSource overrides the OAuth token source.
func WithTokenSource(source oauth2.TokenSource) Option {
	return func(c *Client) { c.tokenSource = source }
}

// Client embeds texts via the Vertex AI prediction endpoint and implements
// the embeddings.Embedder contract.
type Client struct {
	projectID   string
	location    string
	model       string
	scopes      []string
	httpClient  *http.Client
	tokenSource oauth2.TokenSource
}

// New creates a client authorized by the application default credentials
// unless WithTokenSource is supplied.
func New(ctx context.Context, projectID, model string, opts ...Option) (*Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("vertexai project id is required")
	}
	c := &Client{
		projectID:  projectID,
		location:   defaultLocation,
		model:      model,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if len(c.scopes) == 0 {
		c.scopes = []string{cloudScope}
	}
	if c.tokenSource == nil {
		source, err := google.DefaultTokenSource(ctx, c.scopes...)
		if err != nil {
			return nil, fmt.Errorf("vertexai token source: %w", err)
		}
		c.tokenSource = source
	}
	return c, nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/google/models/%s:predict",
		c.location, c.projectID, c.location, c.model)
}

type predictRequest struct {
	Instances []predictInstance `json:"instances"`
}

type predictInstance struct {
	Content string `json:"content"`
}

type predictResponse struct {
	Predictions []struct {
		Embeddings struct {
			Values []float32 `json:"values"`
		} `json:"embeddings"`
	} `json:"predictions"`
}

// EmbedDocuments embeds the texts as a single batch, one vector per text in
// input order.
func (c *Client) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no input texts provided")
	}
	instances := make([]predictInstance, len(texts))
	for i, text := range texts {
		instances[i] = predictInstance{Content: text}
	}
	body, err := json.Marshal(predictRequest{Instances: instances})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	token, err := c.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("vertexai token: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+token.AccessToken)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(response.Body)
		return nil, fmt.Errorf("vertexai API error: %s", strings.TrimSpace(string(payload)))
	}
	var out predictResponse
	if err := json.NewDecoder(response.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	vectors := make([][]float32, len(out.Predictions))
	for i := range out.Predictions {
		vectors[i] = out.Predictions[i].Embeddings.Values
	}
	return vectors, nil
}

// EmbedQuery embeds a single text.
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("vertexai returned %d vectors for 1 query", len(vectors))
	}
	return vectors[0], nil
}
