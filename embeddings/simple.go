package embeddings

import (
	"context"
	"hash/fnv"
)

const defaultSimpleDimension = 64

// Simple returns deterministic pseudo-random vectors derived from the input
// text, for local testing and offline runs without a provider.
type Simple struct {
	Dimension int
}

// NewSimple constructs a deterministic embedder with the given dimension.
func NewSimple(dimension int) *Simple {
	if dimension <= 0 {
		dimension = defaultSimpleDimension
	}
	return &Simple{Dimension: dimension}
}

// EmbedDocuments embeds each text deterministically.
func (e *Simple) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = e.embed(text)
	}
	return vectors, nil
}

// EmbedQuery embeds a single text deterministically.
func (e *Simple) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(text), nil
}

func (e *Simple) embed(text string) []float32 {
	dimension := e.Dimension
	if dimension <= 0 {
		dimension = defaultSimpleDimension
	}
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(text))
	seed := hasher.Sum32()
	vector := make([]float32, dimension)
	for i := range vector {
		seed = seed*1664525 + 1013904223
		vector[i] = float32(seed%10000) / 10000.0
	}
	return vector
}
