// Package cache wraps a base embedder with a keyed vector cache so repeated
// texts (e.g. recurring hypothetical documents) are not re-embedded, with
// optional snapshot persistence.
package cache

import (
	"context"
	"fmt"

	"github.com/viant/hyde/embeddings"
)

// Option applies configuration to the Service.
type Option func(*Service)

// WithSnapshotURL sets the afs URL used by Save and Load.
func WithSnapshotURL(URL string) Option {
	return func(s *Service) { s.snapshotURL = URL }
}

// Service is a caching embeddings.Embedder decorator. Lookups are keyed by a
// highwayhash of the text; misses are embedded as a single batch through the
// base embedder, preserving its batch failure semantics.
type Service struct {
	base        embeddings.Embedder
	vectors     *Map[uint64, []float32]
	snapshotURL string
}

// New creates a caching decorator around base.
func New(base embeddings.Embedder, opts ...Option) *Service {
	s := &Service{base: base, vectors: NewMap[uint64, []float32]()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Size returns the number of cached vectors.
func (s *Service) Size() int {
	return s.vectors.Size()
}

// EmbedDocuments returns one vector per text in input order, serving cached
// texts from memory and embedding the misses as one batch.
func (s *Service) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	keys := make([]uint64, len(texts))
	var missing []string
	var missingAt []int
	for i, text := range texts {
		key, err := Key(text)
		if err != nil {
			return nil, fmt.Errorf("cache key: %w", err)
		}
		keys[i] = key
		if vector, ok := s.vectors.Get(key); ok {
			vectors[i] = vector
			continue
		}
		missing = append(missing, text)
		missingAt = append(missingAt, i)
	}
	if len(missing) == 0 {
		return vectors, nil
	}
	embedded, err := s.base.EmbedDocuments(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missing) {
		return nil, fmt.Errorf("base embedder returned %d vectors for %d texts", len(embedded), len(missing))
	}
	for j, i := range missingAt {
		vectors[i] = embedded[j]
		s.vectors.Set(keys[i], embedded[j])
	}
	return vectors, nil
}

// EmbedQuery embeds a single text through the cache.
func (s *Service) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}
