package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	lcollama "github.com/tmc/langchaingo/llms/ollama"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"github.com/viant/hyde/embeddings"
	"github.com/viant/hyde/embeddings/ollama"
	"github.com/viant/hyde/embeddings/openai"
	"github.com/viant/hyde/embeddings/vertexai"
)

// NewLLM builds the generative model for the given configuration.
func NewLLM(cfg LLMConfig) (llms.Model, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "openai":
		opts := []lcopenai.Option{}
		if cfg.Model != "" {
			opts = append(opts, lcopenai.WithModel(cfg.Model))
		}
		if cfg.APIKey != "" {
			opts = append(opts, lcopenai.WithToken(cfg.APIKey))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, lcopenai.WithBaseURL(cfg.BaseURL))
		}
		return lcopenai.New(opts...)
	case "ollama":
		opts := []lcollama.Option{}
		if cfg.Model != "" {
			opts = append(opts, lcollama.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, lcollama.WithServerURL(cfg.BaseURL))
		}
		return lcollama.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// NewEmbedder builds the base embedder for the given configuration.
func NewEmbedder(ctx context.Context, cfg EmbedderConfig) (embeddings.Embedder, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "openai":
		opts := []openai.Option{}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		return openai.New(cfg.APIKey, cfg.Model, opts...), nil
	case "ollama":
		opts := []ollama.Option{}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithBaseURL(cfg.BaseURL))
		}
		return ollama.New(cfg.Model, opts...), nil
	case "vertexai":
		opts := []vertexai.Option{}
		if cfg.Location != "" {
			opts = append(opts, vertexai.WithLocation(cfg.Location))
		}
		return vertexai.New(ctx, cfg.Project, cfg.Model, opts...)
	case "simple":
		return embeddings.NewSimple(cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedder provider %q", cfg.Provider)
	}
}
