// Package hyde implements Hypothetical Document Embeddings: instead of
// embedding a query directly, a language model writes one or more
// hypothetical answer documents for it, each document is embedded with a
// base embedder, and the vectors are averaged into a single query embedding.
//
// Based on https://arxiv.org/abs/2212.10496
package hyde

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/viant/hyde/embeddings"
	"github.com/viant/hyde/generator"
	"github.com/viant/hyde/prompts"
)

// ErrNoCandidates is returned when the generative model produces zero
// candidate documents, leaving the combined embedding undefined.
var ErrNoCandidates = errors.New("no hypothetical documents generated")

// Service embeds queries through hypothetical document generation and
// forwards plain document embedding to the base embedder, so it can stand in
// anywhere an embeddings.Embedder is expected. It is stateless across calls
// and safe for concurrent use given thread-safe collaborators.
type Service struct {
	generator *generator.Service
	base      embeddings.Embedder
}

// New creates a Service from a generative model and a base embedder. The
// generation prompt comes from WithPrompt when supplied, otherwise from the
// registry key given via WithPromptKey; with neither, construction fails
// with an error listing the valid keys.
func New(llm llms.Model, base embeddings.Embedder, opts ...Option) (*Service, error) {
	if base == nil {
		return nil, fmt.Errorf("hyde: base embedder is required")
	}
	options := newOptions(opts...)
	prompt := options.prompt
	if prompt == nil {
		template, err := prompts.Lookup(options.promptKey)
		if err != nil {
			return nil, fmt.Errorf("hyde: %w", err)
		}
		prompt = template
	}
	gen, err := generator.New(llm, prompt, options.callOpts...)
	if err != nil {
		return nil, fmt.Errorf("hyde: %w", err)
	}
	return &Service{generator: gen, base: base}, nil
}

// Generator exposes the underlying hypothetical document generator.
func (s *Service) Generator() *generator.Service {
	return s.generator
}

// EmbedQuery generates hypothetical documents for the query, embeds them
// with the base embedder and returns their combined embedding.
func (s *Service) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	documents, err := s.generator.Generate(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(documents) == 0 {
		return nil, ErrNoCandidates
	}
	vectors, err := s.EmbedDocuments(ctx, documents)
	if err != nil {
		return nil, err
	}
	return CombineEmbeddings(vectors)
}

// EmbedDocuments forwards to the base embedder, one vector per input text in
// input order, with no combination applied.
func (s *Service) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return s.base.EmbedDocuments(ctx, texts)
}

// CombineEmbeddings reduces a set of equal-length vectors to their
// elementwise arithmetic mean. Sums are accumulated in float64. The result
// is not normalized; an empty set yields ErrNoCandidates and vectors of
// differing length are rejected.
func CombineEmbeddings(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, ErrNoCandidates
	}
	dimension := len(vectors[0])
	sums := make([]float64, dimension)
	for i, vector := range vectors {
		if len(vector) != dimension {
			return nil, fmt.Errorf("embedding dimension mismatch: vector %d has %d components, want %d", i, len(vector), dimension)
		}
		for j, value := range vector {
			sums[j] += float64(value)
		}
	}
	count := float64(len(vectors))
	combined := make([]float32, dimension)
	for j, sum := range sums {
		combined[j] = float32(sum / count)
	}
	return combined, nil
}
