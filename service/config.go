// Package service wires configuration to concrete model providers for the
// hyde CLI.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/scy/cred/secret"
	"gopkg.in/yaml.v3"
)

// Config defines the CLI configuration.
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Embedder EmbedderConfig `yaml:"embedder"`
	Prompt   PromptConfig   `yaml:"prompt"`
	Store    StoreConfig    `yaml:"store"`
	Cache    CacheConfig    `yaml:"cache"`
}

// LLMConfig selects the generative model provider.
type LLMConfig struct {
	Provider   string `yaml:"provider"` // openai|ollama
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"baseURL"`
	APIKey     string `yaml:"apiKey"`
	Secret     string `yaml:"secret,omitempty"`
	Candidates int    `yaml:"candidates"`
}

// EmbedderConfig selects the base embedding provider.
type EmbedderConfig struct {
	Provider  string `yaml:"provider"` // openai|ollama|vertexai|simple
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"baseURL"`
	APIKey    string `yaml:"apiKey"`
	Secret    string `yaml:"secret,omitempty"`
	Project   string `yaml:"project"`
	Location  string `yaml:"location"`
	Dimension int    `yaml:"dimension"`
}

// PromptConfig selects the generation prompt.
type PromptConfig struct {
	Key      string `yaml:"key"`
	URL      string `yaml:"url"`
	Variable string `yaml:"variable"`
}

// StoreConfig defines the demo vector store settings.
type StoreConfig struct {
	DSN string `yaml:"dsn"`
}

// CacheConfig defines embedding cache settings.
type CacheConfig struct {
	Enabled     bool   `yaml:"enabled"`
	SnapshotURL string `yaml:"snapshotURL"`
}

// LoadConfig reads a Config from path, expanding ~ and secret references.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	path, err := expandUserPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.LLM.Secret != "" {
		if cfg.LLM.APIKey, err = ExpandWithSecret(ctx, cfg.LLM.APIKey, cfg.LLM.Secret); err != nil {
			return nil, err
		}
	}
	if cfg.Embedder.Secret != "" {
		if cfg.Embedder.APIKey, err = ExpandWithSecret(ctx, cfg.Embedder.APIKey, cfg.Embedder.Secret); err != nil {
			return nil, err
		}
	}
	if cfg.Store.DSN != "" {
		if cfg.Store.DSN, err = expandUserPath(cfg.Store.DSN); err != nil {
			return nil, err
		}
	}
	if cfg.Cache.SnapshotURL != "" {
		if cfg.Cache.SnapshotURL, err = expandUserPath(cfg.Cache.SnapshotURL); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// ExpandWithSecret resolves secretRef with scy and expands the secret
// placeholder inside value.
func ExpandWithSecret(ctx context.Context, value, secretRef string) (string, error) {
	secretRef = strings.TrimSpace(secretRef)
	if secretRef == "" {
		return value, nil
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("secret %q provided but value is empty", secretRef)
	}
	svc := secret.New()
	sec, err := svc.Lookup(ctx, secret.Resource(secretRef))
	if err != nil {
		return "", err
	}
	return sec.Expand(value), nil
}

func expandUserPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return path, nil
	}
	if strings.HasPrefix(trimmed, "~/") || trimmed == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(trimmed, "~")), nil
	}
	return trimmed, nil
}
